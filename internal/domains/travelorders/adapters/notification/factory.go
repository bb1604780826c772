package notification

import (
	"fmt"
	"log/slog"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/kafka"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/rabbitmq"
)

// SinkConfig selects where rendered notifications are delivered.
type SinkConfig struct {
	// Kind is log, rabbitmq or kafka.
	Kind        string
	RabbitMQURL string
	Queue       string
	Brokers     string
	Topic       string
}

// NewSink builds the configured sink. The cleanup releases broker connections.
func NewSink(cfg SinkConfig, logger *slog.Logger) (ports.NotificationSink, func(), error) {
	switch cfg.Kind {
	case "", "log":
		return NewLogSink(logger), func() {}, nil
	case "rabbitmq":
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.Queue)
		if err != nil {
			return nil, nil, fmt.Errorf("rabbitmq sink: %w", err)
		}
		return NewBrokerSink(publisher), closer(publisher.Close, logger), nil
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Brokers, cfg.Topic)
		if err != nil {
			return nil, nil, fmt.Errorf("kafka sink: %w", err)
		}
		return NewBrokerSink(producer), closer(producer.Close, logger), nil
	default:
		return nil, nil, fmt.Errorf("unknown notification sink %q", cfg.Kind)
	}
}

func closer(close func() error, logger *slog.Logger) func() {
	return func() {
		if err := close(); err != nil && logger != nil {
			logger.Warn("failed to close notification sink", slog.String("error", err.Error()))
		}
	}
}
