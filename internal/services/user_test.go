package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var created = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func john() *models.User {
	return &models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 25, CreatedAt: created, UpdatedAt: created}
}

func TestUserService_CreateUser(t *testing.T) {
	in := models.UserCreate{Name: "John Doe", Email: "john@example.com", Age: 25}

	tests := []struct {
		name      string
		setup     func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher)
		wantResp  *models.UserResponse
		wantErr   error
		errString string
	}{
		{
			name: "successful creation",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher) {
				r.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(nil, nil)
				w.EXPECT().Create(gomock.Any(), in).Return(john(), nil)
				p.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e models.UserEvent) error {
						assert.Equal(t, models.UserCreated, e.Type)
						assert.Equal(t, int64(1), e.UserID)
						assert.NotEmpty(t, e.EventID)
						return nil
					})
			},
			wantResp: &models.UserResponse{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 25, CreatedAt: created},
		},
		{
			name: "email already taken",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher) {
				r.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(john(), nil)
			},
			wantErr: services.ErrUserConflict,
		},
		{
			name: "reader error",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher) {
				r.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(nil, errors.New("db error"))
			},
			errString: "db error",
		},
		{
			name: "writer error",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher) {
				r.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(nil, nil)
				w.EXPECT().Create(gomock.Any(), in).Return(nil, errors.New("save error"))
			},
			errString: "save error",
		},
		{
			name: "publish error does not fail creation",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, p *services.MockUserEventPublisher) {
				r.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(nil, nil)
				w.EXPECT().Create(gomock.Any(), in).Return(john(), nil)
				p.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantResp: &models.UserResponse{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 25, CreatedAt: created},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockUserReader(ctrl)
			writer := services.NewMockUserWriter(ctrl)
			publisher := services.NewMockUserEventPublisher(ctrl)
			tt.setup(reader, writer, publisher)

			svc := services.NewUserService(reader, writer, publisher)
			resp, err := svc.CreateUser(context.Background(), in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			case tt.errString != "":
				assert.EqualError(t, err, tt.errString)
				assert.Nil(t, resp)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantResp, resp)
			}
		})
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), nil)

	reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
	reader.EXPECT().GetByID(gomock.Any(), int64(999)).Return(nil, nil)
	reader.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, errors.New("db error"))

	resp, err := svc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", resp.Email)

	resp, err = svc.GetUserByID(context.Background(), 999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Nil(t, resp)

	_, err = svc.GetUserByID(context.Background(), 2)
	assert.EqualError(t, err, "db error")
}

func TestUserService_GetAllUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), nil)

	t.Run("empty store", func(t *testing.T) {
		reader.EXPECT().List(gomock.Any()).Return([]models.User{}, nil)

		users, err := svc.GetAllUsers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("keeps order", func(t *testing.T) {
		jane := models.User{ID: 2, Name: "Jane", Email: "jane@example.com", Age: 30, CreatedAt: created.Add(time.Hour)}
		reader.EXPECT().List(gomock.Any()).Return([]models.User{jane, *john()}, nil)

		users, err := svc.GetAllUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(2), users[0].ID)
		assert.Equal(t, int64(1), users[1].ID)
	})

	t.Run("reader error", func(t *testing.T) {
		reader.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

		users, err := svc.GetAllUsers(context.Background())
		assert.Error(t, err)
		assert.Nil(t, users)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	updatedAt := created.Add(time.Hour)

	tests := []struct {
		name     string
		patch    models.UserPatch
		setup    func(r *services.MockUserReader, w *services.MockUserWriter)
		wantErr  error
		wantResp *models.UserResponse
	}{
		{
			name:  "age only",
			patch: models.UserPatch{Age: intPtr(26)},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
				w.EXPECT().Update(gomock.Any(), int64(1), models.UserPatch{Age: intPtr(26)}).
					Return(&models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 26, CreatedAt: created, UpdatedAt: updatedAt}, nil)
			},
			wantResp: &models.UserResponse{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 26, CreatedAt: created},
		},
		{
			name:  "same email skips uniqueness lookup",
			patch: models.UserPatch{Email: strPtr("john@example.com")},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
				r.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Times(0)
				w.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(john(), nil)
			},
			wantResp: &models.UserResponse{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 25, CreatedAt: created},
		},
		{
			name:  "new free email",
			patch: models.UserPatch{Email: strPtr("johnny@example.com")},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
				r.EXPECT().GetByEmail(gomock.Any(), "johnny@example.com").Return(nil, nil)
				w.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
					Return(&models.User{ID: 1, Name: "John Doe", Email: "johnny@example.com", Age: 25, CreatedAt: created, UpdatedAt: updatedAt}, nil)
			},
			wantResp: &models.UserResponse{ID: 1, Name: "John Doe", Email: "johnny@example.com", Age: 25, CreatedAt: created},
		},
		{
			name:  "email owned by another user",
			patch: models.UserPatch{Email: strPtr("jane@example.com")},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
				r.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
					Return(&models.User{ID: 2, Email: "jane@example.com"}, nil)
				w.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: services.ErrUserConflict,
		},
		{
			name:  "missing user",
			patch: models.UserPatch{Age: intPtr(26)},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, nil)
			},
			wantErr: services.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockUserReader(ctrl)
			writer := services.NewMockUserWriter(ctrl)
			tt.setup(reader, writer)

			svc := services.NewUserService(reader, writer, nil)
			resp, err := svc.UpdateUser(context.Background(), 1, tt.patch)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp)
		})
	}
}

func TestUserService_UpdateUser_WriterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	storageErr := errors.New("storage integrity violation")

	reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
	reader.EXPECT().GetByEmail(gomock.Any(), "race@example.com").Return(nil, nil)
	writer.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(nil, storageErr)

	svc := services.NewUserService(reader, writer, nil)
	_, err := svc.UpdateUser(context.Background(), 1, models.UserPatch{Email: strPtr("race@example.com")})

	assert.Same(t, storageErr, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	publisher := services.NewMockUserEventPublisher(ctrl)
	svc := services.NewUserService(reader, writer, publisher)

	t.Run("success", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(john(), nil)
		writer.EXPECT().Delete(gomock.Any(), int64(1)).Return(john(), nil)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e models.UserEvent) error {
				assert.Equal(t, models.UserDeleted, e.Type)
				return nil
			})

		assert.NoError(t, svc.DeleteUser(context.Background(), 1))
	})

	t.Run("missing user", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), int64(5)).Return(nil, nil)

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), 5), services.ErrUserNotFound)
	})

	t.Run("writer error", func(t *testing.T) {
		reader.EXPECT().GetByID(gomock.Any(), int64(6)).Return(john(), nil)
		writer.EXPECT().Delete(gomock.Any(), int64(6)).Return(nil, errors.New("delete error"))

		assert.EqualError(t, svc.DeleteUser(context.Background(), 6), "delete error")
	})
}
