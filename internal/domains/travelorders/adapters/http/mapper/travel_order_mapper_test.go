package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

func TestToCreateInput_ParsesDates(t *testing.T) {
	var req CreateTravelOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"destination":"Recife","departure_date":"2025-07-01","return_date":"2025-07-10"}`), &req))

	got := ToCreateInput(req)
	want := ports.CreateInput{
		Destination:   "Recife",
		DepartureDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToCreateInput() mismatch (-want +got):\n%s", diff)
	}
}

func TestToCreateInput_MissingDatesStayZero(t *testing.T) {
	got := ToCreateInput(CreateTravelOrderRequest{Destination: "Recife"})
	assert.True(t, got.DepartureDate.IsZero())
	assert.True(t, got.ReturnDate.IsZero())
}

func TestFromDomain(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	canceled := created.Add(time.Hour)
	order := &domain.TravelOrder{
		ID:            "order-1",
		OwnerID:       "user-1",
		Destination:   "Recife",
		DepartureDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusCanceled,
		CreatedAt:     created,
		UpdatedAt:     canceled,
		CanceledAt:    &canceled,
		Owner:         domain.Owner{ID: "user-1", Name: "Alice"},
	}

	want := TravelOrder{
		ID:            "order-1",
		RequesterName: "Alice",
		Destination:   "Recife",
		DepartureDate: openapi_types.Date{Time: order.DepartureDate},
		ReturnDate:    openapi_types.Date{Time: order.ReturnDate},
		Status:        "cancelado",
		CancelledAt:   &canceled,
		CreatedAt:     created,
		UpdatedAt:     canceled,
	}
	if diff := cmp.Diff(want, FromDomain(order)); diff != "" {
		t.Errorf("FromDomain() mismatch (-want +got):\n%s", diff)
	}

	body, err := json.Marshal(FromDomain(order))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"departure_date":"2025-07-01"`)
	assert.Contains(t, string(body), `"status":"cancelado"`)
}

func TestFromPage(t *testing.T) {
	page := ports.Page{
		Items:   []*domain.TravelOrder{{ID: "a", Status: domain.StatusRequested}},
		Page:    2,
		PerPage: 1,
		Total:   3,
	}
	got := FromPage(page)
	require.Len(t, got.Data, 1)
	if diff := cmp.Diff(PageMeta{CurrentPage: 2, PerPage: 1, Total: 3, LastPage: 3}, got.Meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}

	empty := FromPage(ports.Page{Page: 1, PerPage: 15})
	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"data":[]`)
}
