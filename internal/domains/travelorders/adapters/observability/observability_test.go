package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
)

// namingMeter remembers which counters were registered.
type namingMeter struct {
	noop.Meter
	counters []string
}

func (m *namingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	m.counters = append(m.counters, name)
	return m.Meter.Int64Counter(name, opts...)
}

type stubNotifier struct {
	got domain.StatusChanged
	err error
}

func (s *stubNotifier) Notify(_ context.Context, change domain.StatusChanged, _ *domain.TravelOrder, _ domain.Owner) error {
	s.got = change
	return s.err
}

func approval() domain.StatusChanged {
	return domain.StatusChanged{
		BaseEvent:  domain.BaseEvent{Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		OrderID:    "order-1",
		OwnerID:    "user-1",
		FromStatus: domain.StatusRequested,
		ToStatus:   domain.StatusApproved,
	}
}

func TestInstrumentsAreRegisteredWhereTheyAreRecorded(t *testing.T) {
	serviceMeter := &namingMeter{}
	New(nil, WithMeter(serviceMeter))
	assert.ElementsMatch(t, []string{
		"travel_orders.service.orders_created",
		"travel_orders.service.status_transitions",
	}, serviceMeter.counters)

	notifierMeter := &namingMeter{}
	NewNotifier(&stubNotifier{}, WithMeter(notifierMeter))
	assert.Equal(t, []string{"travel_orders.notifications.enqueue_failures"}, notifierMeter.counters)
}

func TestNotifier_PassesChangeThrough(t *testing.T) {
	inner := &stubNotifier{}
	n := NewNotifier(inner)

	require.NoError(t, n.Notify(context.Background(), approval(), &domain.TravelOrder{ID: "order-1"}, domain.Owner{ID: "user-1"}))
	assert.Equal(t, approval(), inner.got)
}

func TestNotifier_CountsEnqueueFailures(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	inner := &stubNotifier{err: errors.New("queue full")}
	n := NewNotifier(inner, WithMeter(provider.Meter(tracerName)))

	err := n.Notify(context.Background(), approval(), &domain.TravelOrder{ID: "order-1"}, domain.Owner{ID: "user-1"})
	require.EqualError(t, err, "queue full")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "travel_orders.notifications.enqueue_failures" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.EqualValues(t, 1, total)
}
