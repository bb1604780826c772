package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxDestinationLength = 255

var (
	ErrEmptyOwner              = errors.New("owner id is required")
	ErrEmptyDestination        = errors.New("destination is required")
	ErrDestinationTooLong      = errors.New("destination must be at most 255 characters")
	ErrMissingDates            = errors.New("departure and return dates are required")
	ErrInvalidDates            = errors.New("return date cannot be before departure date")
	ErrInvalidStatusTransition = errors.New("travel order status transition is not allowed")
)

// Owner carries the requester's display and contact data.
type Owner struct {
	ID    string
	Name  string
	Email string
}

// TravelOrder is the travel request aggregate.
type TravelOrder struct {
	ID            string
	OwnerID       string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CanceledAt    *time.Time

	Owner Owner
}

// NewTravelOrder validates the request and builds an order in the Requested state.
// The id is assigned by the caller (normally the repository).
func NewTravelOrder(id, ownerID, destination string, departure, returnDate, now time.Time) (*TravelOrder, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, ErrEmptyDestination
	}
	if utf8.RuneCountInString(destination) > maxDestinationLength {
		return nil, ErrDestinationTooLong
	}
	if departure.IsZero() || returnDate.IsZero() {
		return nil, ErrMissingDates
	}
	departure = Date(departure)
	returnDate = Date(returnDate)
	if departure.After(returnDate) {
		return nil, ErrInvalidDates
	}
	now = now.UTC()
	return &TravelOrder{
		ID:            id,
		OwnerID:       ownerID,
		Destination:   destination,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Status:        StatusRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyStatus moves the order to target when the transition table allows it.
// Entering Canceled stamps CanceledAt.
func (o *TravelOrder) ApplyStatus(target Status, now time.Time) (StatusChanged, error) {
	if !target.Valid() {
		return StatusChanged{}, ErrInvalidStatus
	}
	if !CanTransition(o.Status, target) {
		return StatusChanged{}, ErrInvalidStatusTransition
	}
	now = now.UTC()
	event := StatusChanged{
		BaseEvent:  BaseEvent{Timestamp: now},
		OrderID:    o.ID,
		OwnerID:    o.OwnerID,
		FromStatus: o.Status,
		ToStatus:   target,
	}
	o.Status = target
	o.UpdatedAt = now
	if target == StatusCanceled {
		canceledAt := now
		o.CanceledAt = &canceledAt
	}
	return event, nil
}

// Clone returns a deep copy safe to hand across layers.
func (o *TravelOrder) Clone() *TravelOrder {
	if o == nil {
		return nil
	}
	clone := *o
	if o.CanceledAt != nil {
		ts := *o.CanceledAt
		clone.CanceledAt = &ts
	}
	return &clone
}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
