package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
)

var (
	ErrNotFound = errors.New("travel order not found")
	// ErrStatusConflict is returned by UpdateStatus when the stored status no
	// longer matches the expected one.
	ErrStatusConflict = errors.New("travel order status changed concurrently")
)

// StatusUpdate is a compare-and-set patch on an order's status.
type StatusUpdate struct {
	Expected   domain.Status
	Status     domain.Status
	UpdatedAt  time.Time
	CanceledAt *time.Time
}

// Repository persists travel orders.
type Repository interface {
	Create(ctx context.Context, order *domain.TravelOrder) (*domain.TravelOrder, error)
	FindByID(ctx context.Context, id string) (*domain.TravelOrder, error)
	FindByOwner(ctx context.Context, ownerID string, filter ListFilter, page PageRequest) (Page, error)
	ExistsForOwner(ctx context.Context, id, ownerID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*domain.TravelOrder, error)
}
