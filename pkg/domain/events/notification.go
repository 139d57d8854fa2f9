package events

import "time"

// Notification is a user-facing message published to the bus.
type Notification struct {
	Level      string
	Message    string
	OccurredAt time.Time
}

func (e Notification) Type() string { return EventTypeNotification }
