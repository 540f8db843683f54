package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// ErrIntegrity is returned by write operations when the target row is absent
// or a storage constraint rejects the change.
var ErrIntegrity = errors.New("storage integrity violation")

// PostgreSQL error codes mapped to ErrIntegrity.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil if there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail returns the user owning the given email, or nil if there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// List returns all users, newest first.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`

	var recs []models.UserDB
	err := r.db.SelectContext(ctx, &recs, query)

	logQuery(query, nil, len(recs), err)

	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, models.NewUser(rec))
	}
	return users, nil
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var rec models.UserDB
	err := r.db.GetContext(ctx, &rec, query, args...)

	logQuery(query, args, rec, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user := models.NewUser(rec)
	return &user, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and returns it with the generated id and timestamps.
func (r *UserWriteRepository) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email, age, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, email, age, created_at, updated_at
	`
	return r.writeOne(ctx, query, in.Name, in.Email, in.Age)
}

// Update changes only the fields present in patch and refreshes updated_at.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	const query = `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    age = COALESCE($4, age),
		    updated_at = GREATEST(NOW(), created_at)
		WHERE id = $1
		RETURNING id, name, email, age, created_at, updated_at
	`
	return r.writeOne(ctx, query, id, patch.Name, patch.Email, patch.Age)
}

// Delete removes the user and returns its last state.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, age, created_at, updated_at
	`
	return r.writeOne(ctx, query, id)
}

func (r *UserWriteRepository) writeOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var rec models.UserDB
	err := r.db.GetContext(ctx, &rec, query, args...)

	logQuery(query, args, rec, err)

	if err != nil {
		return nil, integrityError(err)
	}

	user := models.NewUser(rec)
	return &user, nil
}

// integrityError wraps missing rows and constraint violations with ErrIntegrity.
func integrityError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: user not found", ErrIntegrity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgCheckViolation:
			return fmt.Errorf("%w: %w", ErrIntegrity, err)
		}
	}
	return err
}

// logQuery logs the query in a single line together with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
