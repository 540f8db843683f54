package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

// Error variables
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("user with this email already exists")
)

// UserReader defines read-only operations for users.
// Lookups return a nil user and a nil error when nothing matches.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, in models.UserCreate) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// UserEventPublisher publishes user lifecycle events.
type UserEventPublisher interface {
	Publish(ctx context.Context, event models.UserEvent) error
}

// UserService handles user management rules on top of the user repositories.
type UserService struct {
	reader    UserReader
	writer    UserWriter
	publisher UserEventPublisher
}

// NewUserService creates a new UserService. The publisher may be nil.
func NewUserService(reader UserReader, writer UserWriter, publisher UserEventPublisher) *UserService {
	return &UserService{
		reader:    reader,
		writer:    writer,
		publisher: publisher,
	}
}

// CreateUser creates a user whose email is not taken yet.
func (svc *UserService) CreateUser(ctx context.Context, in models.UserCreate) (*models.UserResponse, error) {
	existing, err := svc.reader.GetByEmail(ctx, in.Email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "email", in.Email, "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", in.Email)
		return nil, ErrUserConflict
	}

	user, err := svc.writer.Create(ctx, in)
	if err != nil {
		logger.Log.Errorw("failed to create user", "email", in.Email, "err", err)
		return nil, err
	}

	resp := models.ToUserResponse(*user)
	svc.publish(ctx, models.UserCreated, resp)
	return &resp, nil
}

// GetUserByID returns the user with the given id.
func (svc *UserService) GetUserByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := models.ToUserResponse(*user)
	return &resp, nil
}

// GetAllUsers returns every user, newest first. An empty store yields an empty slice.
func (svc *UserService) GetAllUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return models.ToUserResponses(users), nil
}

// UpdateUser applies the fields present in patch to an existing user.
// The email uniqueness lookup runs only when the email actually changes.
func (svc *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.UserResponse, error) {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if patch.Email != nil && models.EmailChanged(*existing, *patch.Email) {
		owner, err := svc.reader.GetByEmail(ctx, *patch.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email", "email", *patch.Email, "err", err)
			return nil, err
		}
		if owner != nil && owner.ID != id {
			logger.Log.Errorw("email taken by another user", "id", id, "email", *patch.Email, "owner", owner.ID)
			return nil, ErrUserConflict
		}
	}

	user, err := svc.writer.Update(ctx, id, patch)
	if err != nil {
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return nil, err
	}

	resp := models.ToUserResponse(*user)
	svc.publish(ctx, models.UserUpdated, resp)
	return &resp, nil
}

// DeleteUser removes an existing user.
func (svc *UserService) DeleteUser(ctx context.Context, id int64) error {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}

	user, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		return err
	}

	svc.publish(ctx, models.UserDeleted, models.ToUserResponse(*user))
	return nil
}

// publish sends a user event. Failures are logged and never fail the caller.
func (svc *UserService) publish(ctx context.Context, eventType string, user models.UserResponse) {
	if svc.publisher == nil {
		logger.Log.Debugw("user event publisher not configured, skipping", "type", eventType, "user_id", user.ID)
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    user.ID,
		Timestamp: time.Now().Unix(),
		User:      user,
	}
	if err := svc.publisher.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish user event", "event_id", event.EventID, "type", eventType, "user_id", user.ID, "error", err)
	}
}
