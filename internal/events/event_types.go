package events

import "time"

// EventType identifies user lifecycle events.
type EventType string

const (
	EventUserCreated EventType = "user.created"
	EventUserUpdated EventType = "user.updated"
	EventUserDeleted EventType = "user.deleted"
)

// Event carries the payload published after a successful mutation.
type Event struct {
	Type       EventType
	UserID     int64
	Email      string
	OccurredAt time.Time
	Payload    map[string]any
}

// NewEvent builds an event stamped with the current time.
func NewEvent(eventType EventType, userID int64, email string, payload map[string]any) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}
