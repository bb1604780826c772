package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

// LogSink writes notifications to the structured log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, n ports.Notification) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "travel order notification",
		slog.String("order.id", n.OrderID),
		slog.String("to", n.RecipientEmail),
		slog.String("subject", n.Subject),
		slog.String("headline", n.Headline))
	return nil
}

// Publisher is a message transport keyed by order id.
type Publisher interface {
	Publish(ctx context.Context, key string, body []byte) error
}

// BrokerSink hands notifications to a mail service through a message broker.
type BrokerSink struct {
	publisher Publisher
}

func NewBrokerSink(p Publisher) *BrokerSink {
	return &BrokerSink{publisher: p}
}

func (s *BrokerSink) Deliver(ctx context.Context, n ports.Notification) error {
	if s == nil || s.publisher == nil {
		return errors.New("notification broker not configured")
	}
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, n.OrderID, body)
}

var (
	_ ports.NotificationSink = (*LogSink)(nil)
	_ ports.NotificationSink = (*BrokerSink)(nil)
)
