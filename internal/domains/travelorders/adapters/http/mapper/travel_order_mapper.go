package mapper

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

// CreateTravelOrderRequest is the transport payload for a new order.
type CreateTravelOrderRequest struct {
	Destination   string              `json:"destination"`
	DepartureDate *openapi_types.Date `json:"departure_date"`
	ReturnDate    *openapi_types.Date `json:"return_date"`
}

// UpdateStatusRequest is the transport payload for an admin decision.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TravelOrder is the public order representation.
type TravelOrder struct {
	ID            string             `json:"id"`
	RequesterName string             `json:"requester_name"`
	Destination   string             `json:"destination"`
	DepartureDate openapi_types.Date `json:"departure_date"`
	ReturnDate    openapi_types.Date `json:"return_date"`
	Status        string             `json:"status"`
	CancelledAt   *time.Time         `json:"cancelled_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// PageMeta describes the position of a listing page.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// TravelOrderList is the paginated listing envelope.
type TravelOrderList struct {
	Data []TravelOrder `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// ToCreateInput converts the payload. Missing dates become zero values and fail domain validation.
func ToCreateInput(req CreateTravelOrderRequest) ports.CreateInput {
	input := ports.CreateInput{Destination: req.Destination}
	if req.DepartureDate != nil {
		input.DepartureDate = req.DepartureDate.Time
	}
	if req.ReturnDate != nil {
		input.ReturnDate = req.ReturnDate.Time
	}
	return input
}

func FromDomain(order *domain.TravelOrder) TravelOrder {
	if order == nil {
		return TravelOrder{}
	}
	out := TravelOrder{
		ID:            order.ID,
		RequesterName: order.Owner.Name,
		Destination:   order.Destination,
		DepartureDate: openapi_types.Date{Time: order.DepartureDate},
		ReturnDate:    openapi_types.Date{Time: order.ReturnDate},
		Status:        order.Status.String(),
		CreatedAt:     order.CreatedAt.UTC(),
		UpdatedAt:     order.UpdatedAt.UTC(),
	}
	if order.CanceledAt != nil {
		at := order.CanceledAt.UTC()
		out.CancelledAt = &at
	}
	return out
}

func FromPage(page ports.Page) TravelOrderList {
	data := make([]TravelOrder, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, FromDomain(item))
	}
	return TravelOrderList{
		Data: data,
		Meta: PageMeta{
			CurrentPage: page.Page,
			PerPage:     page.PerPage,
			Total:       page.Total,
			LastPage:    page.LastPage(),
		},
	}
}
