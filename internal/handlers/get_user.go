package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.UserResponse, error)
}

// NewGetUserHandler returns an HTTP handler that fetches a user by id.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse "User found"
// @Failure 400 {object} handlers.ErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		resp, err := svc.GetUserByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
