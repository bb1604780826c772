package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

// Notifier traces notification enqueueing and counts failures.
type Notifier struct {
	inner   ports.Notifier
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics notifierMetrics
}

// NewNotifier wraps a notification dispatcher.
func NewNotifier(inner ports.Notifier, opts ...Option) ports.Notifier {
	cfg := buildConfig(opts)
	return &Notifier{inner: inner, tracer: cfg.tracer, logger: cfg.logger, metrics: newNotifierMetrics(cfg.meter)}
}

func (n *Notifier) Notify(ctx context.Context, change domain.StatusChanged, order *domain.TravelOrder, recipient domain.Owner) error {
	status := change.ToStatus
	ctx, span := n.tracer.Start(ctx, "TravelOrderNotifier.Notify",
		trace.WithAttributes(
			attribute.String("event.name", change.EventName()),
			attribute.String("order.id", change.OrderID),
			attribute.String("order.previous_status", string(change.FromStatus)),
			attribute.String("order.status", string(status)),
		))
	defer span.End()

	if err := n.inner.Notify(ctx, change, order, recipient); err != nil {
		n.metrics.recordFailure(ctx, status)
		return handleError(ctx, n.logger, span, err, "failed to enqueue travel order notification",
			slog.String("order.id", change.OrderID), slog.String("status", string(status)))
	}
	logInfo(ctx, n.logger, "travel order notification enqueued", slog.String("order.id", change.OrderID), slog.String("status", string(status)))
	return nil
}

type notifierMetrics struct {
	enqueueFailures metric.Int64Counter
}

func newNotifierMetrics(m metric.Meter) notifierMetrics {
	if m == nil {
		return notifierMetrics{}
	}
	failures, _ := m.Int64Counter("travel_orders.notifications.enqueue_failures", metric.WithDescription("Notifications that could not be enqueued"))
	return notifierMetrics{enqueueFailures: failures}
}

func (m notifierMetrics) recordFailure(ctx context.Context, status domain.Status) {
	if m.enqueueFailures != nil {
		m.enqueueFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Notifier = (*Notifier)(nil)
