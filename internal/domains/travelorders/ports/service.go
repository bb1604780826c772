package ports

import (
	"context"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

//go:generate mockgen -destination=mocks/service_mock.go -package=mocks . Service

// Service exposes the travel order workflow to adapters.
type Service interface {
	Create(ctx context.Context, caller principal.Principal, input CreateInput) (*domain.TravelOrder, error)
	FindByID(ctx context.Context, caller principal.Principal, id string) (*domain.TravelOrder, error)
	ListByOwner(ctx context.Context, caller principal.Principal, query ListQuery) (Page, error)
	UpdateStatus(ctx context.Context, caller principal.Principal, id string, status domain.Status) (*domain.TravelOrder, error)
}
