package models

import "time"

// UserResponse represents a user as returned by the API
// swagger:model UserResponse
type UserResponse struct {
	// User ID
	// default: 1
	ID int64 `json:"id"`

	// User name
	// default: John Doe
	Name string `json:"name"`

	// User email
	// default: john@example.com
	Email string `json:"email"`

	// User age
	// default: 25
	Age int `json:"age"`

	// Creation timestamp
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses maps users element-wise, preserving order.
func ToUserResponses(users []User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, ToUserResponse(u))
	}
	return resp
}
