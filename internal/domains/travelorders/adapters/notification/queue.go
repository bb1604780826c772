package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

const (
	// MaxAttempts bounds delivery tries per notification.
	MaxAttempts = 3

	defaultQueueSize = 256
	defaultWorkers   = 2
	defaultBackoff   = time.Second
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

// QueueDispatcher delivers notifications from an in-process bounded queue.
type QueueDispatcher struct {
	sink        ports.NotificationSink
	logger      *slog.Logger
	jobs        chan ports.Notification
	workers     int
	maxAttempts int
	backoff     time.Duration

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	stopCtx context.Context
	stop    context.CancelFunc
}

type QueueOption func(*QueueDispatcher)

func WithQueueSize(n int) QueueOption {
	return func(d *QueueDispatcher) {
		if n > 0 {
			d.jobs = make(chan ports.Notification, n)
		}
	}
}

func WithWorkers(n int) QueueOption {
	return func(d *QueueDispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func WithBackoff(b time.Duration) QueueOption {
	return func(d *QueueDispatcher) {
		if b >= 0 {
			d.backoff = b
		}
	}
}

func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(d *QueueDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewQueueDispatcher builds a dispatcher. Call Start before Notify.
func NewQueueDispatcher(sink ports.NotificationSink, opts ...QueueOption) *QueueDispatcher {
	d := &QueueDispatcher{
		sink:        sink,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		jobs:        make(chan ports.Notification, defaultQueueSize),
		workers:     defaultWorkers,
		maxAttempts: MaxAttempts,
		backoff:     defaultBackoff,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Start launches the delivery workers. They run until Close.
func (d *QueueDispatcher) Start(ctx context.Context) {
	d.stopCtx, d.stop = context.WithCancel(context.WithoutCancel(ctx))
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Notify enqueues without blocking. A full queue is reported as ErrQueueFull.
func (d *QueueDispatcher) Notify(_ context.Context, change domain.StatusChanged, order *domain.TravelOrder, recipient domain.Owner) error {
	if order == nil {
		return errors.New("travel order is nil")
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- Compose(change, order, recipient):
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting work, drains queued notifications, and waits for workers.
func (d *QueueDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
	if d.stop != nil {
		d.stop()
	}
}

func (d *QueueDispatcher) run() {
	defer d.wg.Done()
	for n := range d.jobs {
		d.deliver(n)
	}
}

func (d *QueueDispatcher) deliver(n ports.Notification) {
	ctx := d.stopCtx
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err = d.sink.Deliver(ctx, n); err == nil {
			return
		}
		d.logger.LogAttrs(ctx, slog.LevelWarn, "notification delivery attempt failed",
			slog.String("order.id", n.OrderID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if attempt == d.maxAttempts {
			break
		}
		select {
		case <-time.After(d.backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return
		}
	}
	d.logger.LogAttrs(ctx, slog.LevelError, "notification dropped after retries",
		slog.String("order.id", n.OrderID),
		slog.String("recipient", n.RecipientEmail),
		slog.String("error", err.Error()))
}

var _ ports.Notifier = (*QueueDispatcher)(nil)
