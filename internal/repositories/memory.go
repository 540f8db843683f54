package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// UserMemoryRepository is an in-memory user store implementing the same
// read and write contract as the PostgreSQL repositories, including the
// email uniqueness and age constraints. It is safe for concurrent use.
type UserMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	nextID int64
	now    func() time.Time
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{
		users: make(map[int64]models.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserMemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byEmail(email); ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserMemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (r *UserMemoryRepository) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail(in.Email); ok {
		return nil, fmt.Errorf("%w: duplicate email %q", ErrIntegrity, in.Email)
	}
	if err := checkAge(in.Age); err != nil {
		return nil, err
	}

	r.nextID++
	now := r.now()
	u := models.NewUser(models.UserDB{
		ID:        r.nextID,
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		CreatedAt: now,
		UpdatedAt: now,
	})
	r.users[u.ID] = u
	return &u, nil
}

func (r *UserMemoryRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", ErrIntegrity)
	}
	if patch.Email != nil {
		if owner, ok := r.byEmail(*patch.Email); ok && owner.ID != id {
			return nil, fmt.Errorf("%w: duplicate email %q", ErrIntegrity, *patch.Email)
		}
	}
	if patch.Age != nil {
		if err := checkAge(*patch.Age); err != nil {
			return nil, err
		}
	}

	now := r.now()
	if now.Before(existing.CreatedAt) {
		now = existing.CreatedAt
	}
	updated := models.ApplyUpdate(existing, patch, now)
	r.users[id] = updated
	return &updated, nil
}

func (r *UserMemoryRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", ErrIntegrity)
	}
	delete(r.users, id)
	return &u, nil
}

// byEmail must be called with r.mu held.
func (r *UserMemoryRepository) byEmail(email string) (models.User, bool) {
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func checkAge(age int) error {
	if age < 0 || age > 120 {
		return fmt.Errorf("%w: age %d out of range", ErrIntegrity, age)
	}
	return nil
}
