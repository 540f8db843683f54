package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.UserResponse, error)
}

// UpdateUserRequest represents the JSON body for a partial user update.
// Omitted fields are left unchanged.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// User name
	// default: John Doe
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`

	// User email
	// default: john@example.com
	Email *string `json:"email,omitempty" validate:"omitempty,email"`

	// User age
	// default: 26
	Age *int `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
}

// NewUpdateUserHandler returns an HTTP handler for partial user updates.
// @Summary Update user by ID
// @Description Updates only the fields present in the body. Changing the email to one owned by another user is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param updateUserRequest body handlers.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.UserResponse "User updated successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "User with this email already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		var req UpdateUserRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Details: details})
			return
		}

		resp, err := svc.UpdateUser(r.Context(), id, models.UserPatch{
			Name:  req.Name,
			Email: req.Email,
			Age:   req.Age,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
