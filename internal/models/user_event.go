package models

// User event types published after successful mutations.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UserEvent represents a user lifecycle change, including the affected user and event type.
type UserEvent struct {
	EventID   string       `json:"event_id"`  // EventID is a unique identifier for the event.
	Type      string       `json:"type"`      // Type is one of user.created, user.updated or user.deleted.
	UserID    int64        `json:"user_id"`   // UserID is the identifier of the affected user.
	Timestamp int64        `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) when the change happened.
	User      UserResponse `json:"user"`      // User is the state of the user after the change, or before deletion.
}
