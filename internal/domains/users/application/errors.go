package application

import (
	"errors"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-travel-orders/internal/shared/errors"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

var (
	// ErrInvalidInput signals the request violated an input rule. It wraps a *FieldError.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = principal.ErrUnauthenticated
	ErrForbidden          = principal.ErrForbidden
	ErrNotFound           = ports.ErrNotFound
	ErrDuplicateEmail     = ports.ErrDuplicateEmail
	ErrInvalidUserID      = errors.New("user_id must be a valid uuid")
)

func invalidField(field string, err error) error {
	return apierrors.InvalidField(ErrInvalidInput, field, err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrNameTooLong):
		return invalidField("name", err)
	case errors.Is(err, domain.ErrEmptyEmail), errors.Is(err, domain.ErrInvalidEmail):
		return invalidField("email", err)
	case errors.Is(err, domain.ErrEmptyPassword), errors.Is(err, domain.ErrWeakPassword):
		return invalidField("password", err)
	}
	return err
}
