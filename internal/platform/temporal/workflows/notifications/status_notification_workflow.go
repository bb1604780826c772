package notifications

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	notificationactivities "github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/activities/notifications"
)

const (
	// StatusNotificationWorkflowName is the public identifier for registering the workflow.
	StatusNotificationWorkflowName = "travelorders.workflows.StatusNotification"
	// StatusNotificationTaskQueue is the queue consumed by the notification worker.
	StatusNotificationTaskQueue = "TRAVEL_ORDER_NOTIFICATIONS"
	// MaxDeliveryAttempts bounds delivery retries.
	MaxDeliveryAttempts = 3
)

// StatusNotificationInput carries the rendered notification.
type StatusNotificationInput struct {
	Notification ports.Notification
	TraceID      string
}

// StatusNotificationWorkflow delivers one status-change notification with bounded retries.
func StatusNotificationWorkflow(ctx workflow.Context, input StatusNotificationInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Notification.OrderID
	logger.Info("StatusNotificationWorkflow started", withTraceID(input.TraceID, "orderId", orderID, "status", string(input.Notification.Status))...)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    MaxDeliveryAttempts,
		},
	})
	err := workflow.ExecuteActivity(ctx, notificationactivities.DeliverNotificationActivityName, input.Notification).Get(ctx, nil)
	if err != nil {
		logger.Error("StatusNotificationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("StatusNotificationWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
