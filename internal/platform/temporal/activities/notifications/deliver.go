package notifications

import (
	"context"
	"errors"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

const (
	// DeliverNotificationActivityName hands a rendered notification to the configured sink.
	DeliverNotificationActivityName = "travelorders.activities.DeliverNotification"

	errTypeMissingRecipient = "MissingRecipient"
)

// Activities groups the notification delivery activities.
type Activities struct {
	sink ports.NotificationSink
}

func NewActivities(sink ports.NotificationSink) *Activities {
	return &Activities{sink: sink}
}

// Deliver sends one notification. Missing recipients are not retried.
func (a *Activities) Deliver(ctx context.Context, n ports.Notification) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.sink == nil {
		logger.Error("notification activity not initialized", "orderId", n.OrderID)
		return errors.New("notification activity not initialized")
	}
	if strings.TrimSpace(n.RecipientEmail) == "" {
		logger.Warn("notification has no recipient; giving up", "orderId", n.OrderID)
		return temporal.NewNonRetryableApplicationError("notification recipient email is empty", errTypeMissingRecipient, nil)
	}
	info := activity.GetInfo(ctx)
	logger.Info("DeliverNotification started", "orderId", n.OrderID, "status", string(n.Status), "attempt", info.Attempt)
	if err := a.sink.Deliver(ctx, n); err != nil {
		logger.Error("DeliverNotification failed", "orderId", n.OrderID, "attempt", info.Attempt, "error", err)
		return err
	}
	logger.Info("DeliverNotification completed", "orderId", n.OrderID)
	return nil
}
