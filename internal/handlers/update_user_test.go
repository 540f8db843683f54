package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestUpdateUserHandler(t *testing.T) {
	age := 26
	email := "johnny@example.com"

	tests := []struct {
		name         string
		target       string
		body         string
		mockSetup    func(m *MockUserUpdater)
		expectedCode int
	}{
		{
			name:   "age only",
			target: "/users/1",
			body:   `{"age":26}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().
					UpdateUser(gomock.Any(), int64(1), models.UserPatch{Age: &age}).
					Return(johnResponse(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "email only",
			target: "/users/1",
			body:   `{"email":"johnny@example.com"}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().
					UpdateUser(gomock.Any(), int64(1), models.UserPatch{Email: &email}).
					Return(johnResponse(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "empty object",
			target: "/users/1",
			body:   `{}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().UpdateUser(gomock.Any(), int64(1), models.UserPatch{}).Return(johnResponse(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/users/7",
			body:   `{"age":26}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().UpdateUser(gomock.Any(), int64(7), gomock.Any()).Return(nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "email conflict",
			target: "/users/1",
			body:   `{"email":"jane@example.com"}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().UpdateUser(gomock.Any(), int64(1), gomock.Any()).Return(nil, services.ErrUserConflict)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "empty name",
			target:       "/users/1",
			body:         `{"name":""}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid email",
			target:       "/users/1",
			body:         `{"email":"not-an-email"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "age out of range",
			target:       "/users/1",
			body:         `{"age":130}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown field",
			target:       "/users/1",
			body:         `{"id":5}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid id",
			target:       "/users/abc",
			body:         `{"age":26}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUserUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := serve(http.MethodPut, "/users/{id}", tt.target, tt.body, NewUpdateUserHandler(mockSvc))
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
