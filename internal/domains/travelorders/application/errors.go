package application

import (
	"errors"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	apierrors "github.com/Apurer/go-gin-travel-orders/internal/shared/errors"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

var (
	// ErrInvalidInput signals the request violated an input rule. It wraps a *FieldError.
	ErrInvalidInput = errors.New("invalid travel order input")
	// ErrInvalidDates signals departure after return.
	ErrInvalidDates = domain.ErrInvalidDates
	// ErrNotFound covers both missing orders and orders owned by someone else.
	ErrNotFound = ports.ErrNotFound
	// ErrForbidden signals a non-admin calling an admin operation.
	ErrForbidden = principal.ErrForbidden
	// ErrInvalidStatusTransition signals an illegal state machine edge.
	ErrInvalidStatusTransition = domain.ErrInvalidStatusTransition
	// ErrPageOutOfRange signals a page number whose row offset cannot be represented.
	ErrPageOutOfRange = errors.New("page is out of range")
	// ErrNotificationEnqueue is logged when the notifier rejects a status change.
	ErrNotificationEnqueue = errors.New("travel order notification could not be enqueued")
)

// FieldError pins an input violation to a request field.
type FieldError = apierrors.FieldError

func invalidField(field string, err error) error {
	return apierrors.InvalidField(ErrInvalidInput, field, err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyDestination), errors.Is(err, domain.ErrDestinationTooLong):
		return invalidField("destination", err)
	case errors.Is(err, domain.ErrMissingDates):
		return invalidField("departure_date", err)
	case errors.Is(err, domain.ErrInvalidStatus):
		return invalidField("status", err)
	case errors.Is(err, domain.ErrEmptyOwner):
		return principal.ErrUnauthenticated
	}
	return err
}
