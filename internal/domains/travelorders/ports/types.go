package ports

import (
	"math"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
)

// CreateInput carries the client-supplied part of a new order.
type CreateInput struct {
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
}

// ListFilter narrows an owner's orders. Nil or empty fields are ignored.
type ListFilter struct {
	Status      *domain.Status
	Destination string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	TravelFrom  *time.Time
	TravelTo    *time.Time
}

// PageRequest selects a 1-based page.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// ListQuery is the input of ListByOwner.
type ListQuery struct {
	Filter ListFilter
	PageRequest
}

// Page is one slice of a filtered listing.
type Page struct {
	Items   []*domain.TravelOrder
	Page    int
	PerPage int
	Total   int64
}

// LastPage returns the number of the final page, at least 1.
func (p Page) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
