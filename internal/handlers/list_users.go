package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	GetAllUsers(ctx context.Context) ([]models.UserResponse, error)
}

// NewListUsersHandler returns an HTTP handler that lists all users, newest first.
// @Summary Get all users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserResponse "List of users"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.GetAllUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if users == nil {
			users = []models.UserResponse{}
		}

		writeJSON(w, http.StatusOK, users)
	}
}
