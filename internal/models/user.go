package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID        int64     `db:"id"`         // Primary key
	Name      string    `db:"name"`       // Display name
	Email     string    `db:"email"`      // Unique email
	Age       int       `db:"age"`        // Age in years
	CreatedAt time.Time `db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `db:"updated_at"` // Last update timestamp
}

// User is the immutable domain value of a stored user.
type User struct {
	ID        int64
	Name      string
	Email     string
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCreate holds the fields required to create a user.
type UserCreate struct {
	Name  string
	Email string
	Age   int
}

// UserPatch holds the fields of a partial update.
// A nil field is omitted from the update; a non-nil field is applied even if
// it points to a zero value.
type UserPatch struct {
	Name  *string
	Email *string
	Age   *int
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil
}

// NewUser projects a database record onto the domain value.
func NewUser(rec UserDB) User {
	return User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Age:       rec.Age,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// ApplyUpdate returns a copy of u with the present patch fields applied and
// UpdatedAt set to now.
func ApplyUpdate(u User, patch UserPatch, now time.Time) User {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Age != nil {
		u.Age = *patch.Age
	}
	u.UpdatedAt = now
	return u
}

// EmailChanged reports whether email differs from the user's current email.
func EmailChanged(u User, email string) bool {
	return u.Email != email
}
