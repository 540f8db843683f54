package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	CreateUser(ctx context.Context, in models.UserCreate) (*models.UserResponse, error)
}

// CreateUserRequest represents the JSON body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// User name
	// required: true
	// default: John Doe
	Name string `json:"name" validate:"required"`

	// User email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// User age
	// required: true
	// default: 25
	Age *int `json:"age" validate:"required,min=0,max=120"`
}

// NewCreateUserHandler returns an HTTP handler for user creation.
// @Summary Create a new user
// @Description Creates a user. The email must not belong to another user.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User creation request"
// @Success 201 {object} models.UserResponse "User created successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 409 {object} handlers.ErrorResponse "User with this email already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Details: details})
			return
		}

		resp, err := svc.CreateUser(r.Context(), models.UserCreate{
			Name:  req.Name,
			Email: req.Email,
			Age:   *req.Age,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}
