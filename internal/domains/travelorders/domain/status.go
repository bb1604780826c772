package domain

import (
	"errors"
	"strings"
)

// Status enumerates the travel order lifecycle. Values are the wire strings.
type Status string

const (
	StatusRequested Status = "solicitado"
	StatusApproved  Status = "aprovado"
	StatusCanceled  Status = "cancelado"
)

var ErrInvalidStatus = errors.New("travel order status is invalid")

// transitions lists the legal edges. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusCanceled},
}

// Statuses returns every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusRequested, StatusApproved, StatusCanceled}
}

// ParseStatus converts a raw wire value into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) String() string { return string(s) }

// CanTransition reports whether an order in current may move to target.
func CanTransition(current, target Status) bool {
	if current == target {
		return false
	}
	for _, allowed := range transitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}
