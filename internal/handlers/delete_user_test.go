package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestDeleteUserHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockUserDeleter)
		expectedCode int
	}{
		{
			name:   "deleted",
			target: "/users/1",
			mockSetup: func(m *MockUserDeleter) {
				m.EXPECT().DeleteUser(gomock.Any(), int64(1)).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "not found",
			target: "/users/2",
			mockSetup: func(m *MockUserDeleter) {
				m.EXPECT().DeleteUser(gomock.Any(), int64(2)).Return(services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "internal error",
			target: "/users/3",
			mockSetup: func(m *MockUserDeleter) {
				m.EXPECT().DeleteUser(gomock.Any(), int64(3)).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "invalid id",
			target:       "/users/-1",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUserDeleter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := serve(http.MethodDelete, "/users/{id}", tt.target, "", NewDeleteUserHandler(mockSvc))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}
