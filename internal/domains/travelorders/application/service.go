package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	defaultUpdateAttempts = 3
)

// Pagination bounds page sizes for ListByOwner.
type Pagination struct {
	DefaultPerPage int
	MaxPerPage     int
}

// Service orchestrates the travel order workflow.
type Service struct {
	repo           ports.Repository
	notifier       ports.Notifier
	owners         ports.OwnerDirectory
	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
	pagination     Pagination
	updateAttempts int
}

type Option func(*Service)

// WithNotifier sets the dispatcher invoked after status transitions.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithOwnerDirectory enables owner display data on returned orders.
func WithOwnerDirectory(d ports.OwnerDirectory) Option {
	return func(s *Service) { s.owners = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithPagination(p Pagination) Option {
	return func(s *Service) {
		if p.MaxPerPage > 0 {
			s.pagination.MaxPerPage = p.MaxPerPage
		}
		if p.DefaultPerPage > 0 {
			s.pagination.DefaultPerPage = p.DefaultPerPage
		}
		if s.pagination.DefaultPerPage > s.pagination.MaxPerPage {
			s.pagination.DefaultPerPage = s.pagination.MaxPerPage
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		notifier:       ports.NoopNotifier,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
		newID:          uuid.NewString,
		pagination:     Pagination{DefaultPerPage: DefaultPerPage, MaxPerPage: MaxPerPage},
		updateAttempts: defaultUpdateAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create registers a new order owned by the caller.
func (s *Service) Create(ctx context.Context, caller principal.Principal, input ports.CreateInput) (*domain.TravelOrder, error) {
	if err := principal.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	order, err := domain.NewTravelOrder(s.newID(), caller.UserID, input.Destination, input.DepartureDate, input.ReturnDate, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.attachOwner(ctx, created)
	return created, nil
}

// BelongsToUser reports whether the order exists and is owned by userID.
func (s *Service) BelongsToUser(ctx context.Context, orderID, userID string) (bool, error) {
	if !validOrderID(orderID) || userID == "" {
		return false, nil
	}
	return s.repo.ExistsForOwner(ctx, orderID, userID)
}

// Order ids are UUIDs; anything else cannot name a stored order.
func validOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// FindByID returns the caller's order. Orders of other users are reported as not found.
func (s *Service) FindByID(ctx context.Context, caller principal.Principal, id string) (*domain.TravelOrder, error) {
	if err := principal.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	owned, err := s.BelongsToUser(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachOwner(ctx, order)
	return order, nil
}

// ListByOwner pages through the caller's orders, newest first.
func (s *Service) ListByOwner(ctx context.Context, caller principal.Principal, query ports.ListQuery) (ports.Page, error) {
	if err := principal.RequireAuthenticated(caller); err != nil {
		return ports.Page{}, err
	}
	if err := validateFilter(query.Filter); err != nil {
		return ports.Page{}, err
	}
	pageReq, err := s.normalizePage(query.PageRequest)
	if err != nil {
		return ports.Page{}, err
	}
	page, err := s.repo.FindByOwner(ctx, caller.UserID, query.Filter, pageReq)
	if err != nil {
		return ports.Page{}, err
	}
	page.Page, page.PerPage = pageReq.Page, pageReq.PerPage
	if len(page.Items) > 0 {
		owner := s.lookupOwner(ctx, caller.UserID)
		for _, order := range page.Items {
			order.Owner = owner
		}
	}
	return page, nil
}

// UpdateStatus moves an order through the state machine on behalf of an admin
// and notifies the owner once the change is stored.
func (s *Service) UpdateStatus(ctx context.Context, caller principal.Principal, id string, status domain.Status) (*domain.TravelOrder, error) {
	if err := principal.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	if !validOrderID(id) {
		return nil, ErrNotFound
	}
	for attempt := 1; ; attempt++ {
		order, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		previous := order.Status
		change, err := order.ApplyStatus(status, s.now())
		if err != nil {
			return nil, mapError(err)
		}
		updated, err := s.repo.UpdateStatus(ctx, id, ports.StatusUpdate{
			Expected:   previous,
			Status:     order.Status,
			UpdatedAt:  order.UpdatedAt,
			CanceledAt: order.CanceledAt,
		})
		if errors.Is(err, ports.ErrStatusConflict) {
			if attempt < s.updateAttempts {
				continue
			}
			return nil, fmt.Errorf("%w: %w", ErrInvalidStatusTransition, err)
		}
		if err != nil {
			return nil, err
		}
		s.attachOwner(ctx, updated)
		s.notify(ctx, change, updated)
		return updated, nil
	}
}

func (s *Service) notify(ctx context.Context, change domain.StatusChanged, order *domain.TravelOrder) {
	// The transition is committed; enqueueing must not depend on the caller staying connected.
	ctx = context.WithoutCancel(ctx)
	if err := s.notifier.Notify(ctx, change, order.Clone(), order.Owner); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, ErrNotificationEnqueue.Error(),
			slog.String("order.id", order.ID),
			slog.String("status", change.ToStatus.String()),
			slog.String("error", err.Error()))
	}
}

func (s *Service) attachOwner(ctx context.Context, order *domain.TravelOrder) {
	if order == nil {
		return
	}
	order.Owner = s.lookupOwner(ctx, order.OwnerID)
}

func (s *Service) lookupOwner(ctx context.Context, ownerID string) domain.Owner {
	fallback := domain.Owner{ID: ownerID}
	if s.owners == nil {
		return fallback
	}
	owner, err := s.owners.Lookup(ctx, ownerID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "owner lookup failed",
			slog.String("owner.id", ownerID), slog.String("error", err.Error()))
		return fallback
	}
	return owner
}

func (s *Service) normalizePage(req ports.PageRequest) (ports.PageRequest, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = s.pagination.DefaultPerPage
	}
	if req.PerPage > s.pagination.MaxPerPage {
		req.PerPage = s.pagination.MaxPerPage
	}
	if req.Page-1 > math.MaxInt/req.PerPage {
		return req, invalidField("page", ErrPageOutOfRange)
	}
	return req, nil
}

func validateFilter(f ports.ListFilter) error {
	if f.Status != nil && !f.Status.Valid() {
		return invalidField("status", domain.ErrInvalidStatus)
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		return invalidField("end_date", errors.New("end date must be on or after start date"))
	}
	if f.TravelFrom != nil && f.TravelTo != nil && f.TravelTo.Before(*f.TravelFrom) {
		return invalidField("travel_end_date", errors.New("travel end date must be on or after travel start date"))
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
