package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps travel orders in process memory.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.TravelOrder
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.TravelOrder{}}
}

func (r *Repository) Create(_ context.Context, order *domain.TravelOrder) (*domain.TravelOrder, error) {
	if order == nil {
		return nil, errors.New("travel order is nil")
	}
	if order.ID == "" {
		return nil, errors.New("travel order id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return nil, errors.New("travel order already exists")
	}
	r.orders[order.ID] = order.Clone()
	return order.Clone(), nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*domain.TravelOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) ExistsForOwner(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	return ok && order.OwnerID == ownerID, nil
}

func (r *Repository) FindByOwner(_ context.Context, ownerID string, filter ports.ListFilter, page ports.PageRequest) (ports.Page, error) {
	r.mu.RLock()
	matched := make([]*domain.TravelOrder, 0)
	for _, order := range r.orders {
		if order.OwnerID == ownerID && matches(order, filter) {
			matched = append(matched, order.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	result := ports.Page{Page: page.Page, PerPage: page.PerPage, Total: int64(len(matched))}
	start := page.Offset()
	if start >= len(matched) {
		result.Items = []*domain.TravelOrder{}
		return result, nil
	}
	end := len(matched)
	if page.PerPage > 0 && start+page.PerPage < end {
		end = start + page.PerPage
	}
	result.Items = matched[start:end]
	return result, nil
}

// UpdateStatus applies the patch only while the stored status equals update.Expected.
func (r *Repository) UpdateStatus(_ context.Context, id string, update ports.StatusUpdate) (*domain.TravelOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if order.Status != update.Expected {
		return nil, ports.ErrStatusConflict
	}
	order.Status = update.Status
	order.UpdatedAt = update.UpdatedAt
	if update.CanceledAt != nil {
		ts := *update.CanceledAt
		order.CanceledAt = &ts
	}
	return order.Clone(), nil
}

func matches(order *domain.TravelOrder, f ports.ListFilter) bool {
	if f.Status != nil && order.Status != *f.Status {
		return false
	}
	if f.Destination != "" && !strings.Contains(strings.ToLower(order.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	created := domain.Date(order.CreatedAt)
	if f.CreatedFrom != nil && created.Before(domain.Date(*f.CreatedFrom)) {
		return false
	}
	if f.CreatedTo != nil && created.After(domain.Date(*f.CreatedTo)) {
		return false
	}
	if f.TravelFrom != nil && order.DepartureDate.Before(domain.Date(*f.TravelFrom)) {
		return false
	}
	if f.TravelTo != nil && order.ReturnDate.After(domain.Date(*f.TravelTo)) {
		return false
	}
	return true
}
