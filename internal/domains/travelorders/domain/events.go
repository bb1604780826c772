package domain

import "time"

// Event is the base interface for travel order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// StatusChanged is raised when an order moves between statuses.
type StatusChanged struct {
	BaseEvent
	OrderID    string
	OwnerID    string
	FromStatus Status
	ToStatus   Status
}

// EventName returns the event type identifier.
func (e StatusChanged) EventName() string {
	return "travel_orders.order.status_changed"
}

var _ Event = StatusChanged{}
