package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	travelnotification "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/notification"
	platformobservability "github.com/Apurer/go-gin-travel-orders/internal/platform/observability"
	notificationactivities "github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/activities/notifications"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/temporalclient"
	notificationworkflows "github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/workflows/notifications"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "travel-orders-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName: serviceName,
		Environment: envOrDefault("APP_ENV", "local"),
		LogLevel:    platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	sink, closeSink, err := travelnotification.NewSink(travelnotification.SinkConfig{
		Kind:        strings.ToLower(envOrDefault("NOTIFICATION_SINK", "log")),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		Queue:       envOrDefault("NOTIFICATION_QUEUE", "travel_order_notifications"),
		Brokers:     os.Getenv("KAFKA_BROKERS"),
		Topic:       envOrDefault("NOTIFICATION_TOPIC", "travel-order-notifications"),
	}, logger)
	if err != nil {
		logger.Error("failed to configure notification sink", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSink()
	activities := notificationactivities.NewActivities(sink)

	namespace := envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	temporalClient, err := temporalclient.Dial(temporalclient.Options{
		Address:   envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: namespace,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, notificationworkflows.StatusNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(notificationworkflows.StatusNotificationWorkflow, workflow.RegisterOptions{Name: notificationworkflows.StatusNotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.Deliver, activity.RegisterOptions{Name: notificationactivities.DeliverNotificationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", notificationworkflows.StatusNotificationTaskQueue), slog.String("namespace", namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
