package travelordersserver

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	travelhttpmapper "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/http/mapper"
	travelapp "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/application"
	traveldomain "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	travelports "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	apierrors "github.com/Apurer/go-gin-travel-orders/internal/shared/errors"
)

// TravelOrderAPI wires HTTP transport with the travel orders service.
type TravelOrderAPI struct {
	service travelports.Service
}

func NewTravelOrderAPI(service travelports.Service) TravelOrderAPI {
	return TravelOrderAPI{service: service}
}

// ListTravelOrdersParams are the query parameters accepted by the listing.
type ListTravelOrdersParams struct {
	Status          *string             `form:"status"`
	Destination     *string             `form:"destination"`
	StartDate       *openapi_types.Date `form:"start_date"`
	EndDate         *openapi_types.Date `form:"end_date"`
	TravelStartDate *openapi_types.Date `form:"travel_start_date"`
	TravelEndDate   *openapi_types.Date `form:"travel_end_date"`
	Page            *int                `form:"page"`
	PerPage         *int                `form:"per_page"`
}

// Post /api/travel-orders
// Request a trip
func (api *TravelOrderAPI) CreateTravelOrder(c *gin.Context) {
	var payload travelhttpmapper.CreateTravelOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformed(c, err)
		return
	}
	order, err := api.service.Create(c.Request.Context(), principalFrom(c), travelhttpmapper.ToCreateInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, travelhttpmapper.FromDomain(order))
}

// Get /api/travel-orders
// List the caller's travel orders
func (api *TravelOrderAPI) ListTravelOrders(c *gin.Context) {
	params, err := bindListParams(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	query, err := toListQuery(params)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := api.service.ListByOwner(c.Request.Context(), principalFrom(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, travelhttpmapper.FromPage(page))
}

// Get /api/travel-orders/:id
// Show one of the caller's travel orders
func (api *TravelOrderAPI) GetTravelOrder(c *gin.Context) {
	order, err := api.service.FindByID(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, travelhttpmapper.FromDomain(order))
}

// Patch /api/travel-orders/:id/status
// Approve or cancel a travel order (admin)
func (api *TravelOrderAPI) UpdateTravelOrderStatus(c *gin.Context) {
	var payload travelhttpmapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformed(c, err)
		return
	}
	status, err := traveldomain.ParseStatus(payload.Status)
	if err != nil {
		respondError(c, apierrors.InvalidField(travelapp.ErrInvalidInput, "status", err))
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), principalFrom(c), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, travelhttpmapper.FromDomain(order))
}

func bindListParams(query url.Values) (ListTravelOrdersParams, error) {
	var params ListTravelOrdersParams
	bindings := []struct {
		name string
		dest interface{}
	}{
		{"status", &params.Status},
		{"destination", &params.Destination},
		{"start_date", &params.StartDate},
		{"end_date", &params.EndDate},
		{"travel_start_date", &params.TravelStartDate},
		{"travel_end_date", &params.TravelEndDate},
		{"page", &params.Page},
		{"per_page", &params.PerPage},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return ListTravelOrdersParams{}, apierrors.InvalidField(travelapp.ErrInvalidInput, b.name, err)
		}
	}
	return params, nil
}

func toListQuery(params ListTravelOrdersParams) (travelports.ListQuery, error) {
	var query travelports.ListQuery
	if params.Status != nil && *params.Status != "" {
		status, err := traveldomain.ParseStatus(*params.Status)
		if err != nil {
			return query, apierrors.InvalidField(travelapp.ErrInvalidInput, "status", err)
		}
		query.Filter.Status = &status
	}
	if params.Destination != nil {
		query.Filter.Destination = *params.Destination
	}
	query.Filter.CreatedFrom = dateOrNil(params.StartDate)
	query.Filter.CreatedTo = dateOrNil(params.EndDate)
	query.Filter.TravelFrom = dateOrNil(params.TravelStartDate)
	query.Filter.TravelTo = dateOrNil(params.TravelEndDate)
	if params.Page != nil {
		query.Page = *params.Page
	}
	if params.PerPage != nil {
		query.PerPage = *params.PerPage
	}
	return query, nil
}

func dateOrNil(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
