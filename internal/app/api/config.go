package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-travel-orders/internal/platform/auth"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/scheduler"
)

// Notification sinks selectable through NOTIFICATION_SINK.
const (
	SinkLog      = "log"
	SinkRabbitMQ = "rabbitmq"
	SinkKafka    = "kafka"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Env         string
	Port        string
	LogLevel    string
	PostgresDSN string

	JWTSecret string
	JWTTTL    time.Duration

	DefaultPerPage int
	MaxPerPage     int

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	NotificationSink  string
	RabbitMQURL       string
	NotificationQueue string
	KafkaBrokers      string
	NotificationTopic string

	TokenPurgeSchedule string
}

// LoadConfig reads an optional .env file, then the environment, applies
// defaults and validates.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFromEnv()
}

func configFromEnv() (Config, error) {
	cfg := Config{
		Env:                envDefault("APP_ENV", "local"),
		Port:               envDefault("PORT", "8080"),
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		NotificationSink:   strings.ToLower(envDefault("NOTIFICATION_SINK", SinkLog)),
		RabbitMQURL:        strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		NotificationQueue:  envDefault("NOTIFICATION_QUEUE", "travel_order_notifications"),
		KafkaBrokers:       strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		NotificationTopic:  envDefault("NOTIFICATION_TOPIC", "travel-order-notifications"),
		TokenPurgeSchedule: envDefault("TOKEN_PURGE_SCHEDULE", scheduler.DefaultPurgeSchedule),
	}

	var errs []error
	ttl, err := positiveInt("JWT_TTL_MINUTES", int(auth.DefaultTokenTTL/time.Minute))
	errs = append(errs, err)
	cfg.JWTTTL = time.Duration(ttl) * time.Minute

	cfg.DefaultPerPage, err = positiveInt("PAGINATION_DEFAULT_PER_PAGE", 15)
	errs = append(errs, err)
	cfg.MaxPerPage, err = positiveInt("PAGINATION_MAX_PER_PAGE", 100)
	errs = append(errs, err)
	errs = append(errs, cfg.validate())

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "local-development-secret"
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.JWTSecret == "" && c.Env != "local" {
		errs = append(errs, errors.New("JWT_SECRET is required outside APP_ENV=local"))
	}
	if c.DefaultPerPage > c.MaxPerPage {
		errs = append(errs, errors.New("PAGINATION_DEFAULT_PER_PAGE must not exceed PAGINATION_MAX_PER_PAGE"))
	}
	switch c.NotificationSink {
	case SinkLog:
	case SinkRabbitMQ:
		if c.RabbitMQURL == "" {
			errs = append(errs, errors.New("RABBITMQ_URL is required for NOTIFICATION_SINK=rabbitmq"))
		}
	case SinkKafka:
		if c.KafkaBrokers == "" {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for NOTIFICATION_SINK=kafka"))
		}
	default:
		errs = append(errs, fmt.Errorf("NOTIFICATION_SINK must be one of log, rabbitmq, kafka; got %q", c.NotificationSink))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
