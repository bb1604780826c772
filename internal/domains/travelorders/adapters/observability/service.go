package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/shared/principal"
)

const tracerName = "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/observability"

// Service decorates the travel order workflow with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*decoratorConfig)

type decoratorConfig struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *decoratorConfig) { c.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *decoratorConfig) { c.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(c *decoratorConfig) { c.meter = m }
}

func buildConfig(opts []Option) decoratorConfig {
	cfg := decoratorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.tracer == nil {
		cfg.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// New wraps the core travel order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	cfg := buildConfig(opts)
	return &Service{
		inner:   inner,
		tracer:  cfg.tracer,
		logger:  cfg.logger,
		metrics: newServiceMetrics(cfg.meter),
	}
}

func (s *Service) Create(ctx context.Context, caller principal.Principal, input ports.CreateInput) (*domain.TravelOrder, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.Create",
		trace.WithAttributes(attribute.String("user.id", caller.UserID)))
	defer span.End()

	result, err := s.inner.Create(ctx, caller, input)
	if err != nil {
		return nil, handleError(ctx, s.logger, span, err, "failed to create travel order", slog.String("user.id", caller.UserID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordCreated(ctx)
	logInfo(ctx, s.logger, "travel order created", slog.String("order.id", result.ID), slog.String("user.id", caller.UserID))
	return result, nil
}

func (s *Service) FindByID(ctx context.Context, caller principal.Principal, id string) (*domain.TravelOrder, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.FindByID",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("user.id", caller.UserID)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, caller, id)
	if err != nil {
		return nil, handleError(ctx, s.logger, span, err, "failed to load travel order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListByOwner(ctx context.Context, caller principal.Principal, query ports.ListQuery) (ports.Page, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.ListByOwner",
		trace.WithAttributes(attribute.String("user.id", caller.UserID), attribute.Int("page", query.Page)))
	defer span.End()

	page, err := s.inner.ListByOwner(ctx, caller, query)
	if err != nil {
		return ports.Page{}, handleError(ctx, s.logger, span, err, "failed to list travel orders", slog.String("user.id", caller.UserID))
	}
	span.SetAttributes(attribute.Int("orders.returned", len(page.Items)), attribute.Int64("orders.total", page.Total))
	return page, nil
}

func (s *Service) UpdateStatus(ctx context.Context, caller principal.Principal, id string, status domain.Status) (*domain.TravelOrder, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.target_status", string(status))))
	defer span.End()

	logInfo(ctx, s.logger, "updating travel order status", slog.String("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, caller, id, status)
	if err != nil {
		return nil, handleError(ctx, s.logger, span, err, "failed to update travel order status",
			slog.String("order.id", id), slog.String("status", string(status)))
	}
	s.metrics.recordTransition(ctx, result.Status)
	logInfo(ctx, s.logger, "travel order status updated", slog.String("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func logInfo(ctx context.Context, logger *slog.Logger, msg string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func handleError(ctx context.Context, logger *slog.Logger, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersCreated     metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("travel_orders.service.orders_created", metric.WithDescription("Number of travel orders created"))
	transitions, _ := m.Int64Counter("travel_orders.service.status_transitions", metric.WithDescription("Number of committed status transitions"))
	return serviceMetrics{ordersCreated: created, statusTransitions: transitions}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Service = (*Service)(nil)
