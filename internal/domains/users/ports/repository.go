package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// SetAdmin marks the user as admin. It returns ErrNotFound for unknown ids.
	SetAdmin(ctx context.Context, id string, updatedAt time.Time) error
}
