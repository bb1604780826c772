package notification

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	notificationworkflows "github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/workflows/notifications"
)

var _ ports.Notifier = (*TemporalDispatcher)(nil)

// workflowStarter is the part of client.Client the dispatcher needs.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalDispatcher starts a durable notification workflow per status change.
// It does not wait for delivery.
type TemporalDispatcher struct {
	client    workflowStarter
	taskQueue string
}

func NewTemporalDispatcher(c client.Client) *TemporalDispatcher {
	return newTemporalDispatcher(c)
}

func newTemporalDispatcher(c workflowStarter) *TemporalDispatcher {
	return &TemporalDispatcher{client: c, taskQueue: notificationworkflows.StatusNotificationTaskQueue}
}

func (d *TemporalDispatcher) Notify(ctx context.Context, change domain.StatusChanged, order *domain.TravelOrder, recipient domain.Owner) error {
	if d == nil || d.client == nil {
		return errors.New("temporal notification dispatcher not configured")
	}
	if order == nil {
		return errors.New("travel order is nil")
	}
	options := client.StartWorkflowOptions{
		ID:        notificationWorkflowID(order.ID, change.ToStatus),
		TaskQueue: d.taskQueue,
	}
	input := notificationworkflows.StatusNotificationInput{
		Notification: Compose(change, order, recipient),
		TraceID:      traceID(ctx),
	}
	_, err := d.client.ExecuteWorkflow(ctx, options, notificationworkflows.StatusNotificationWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// Terminal transitions happen once per order, so order and status identify the notification.
func notificationWorkflowID(orderID string, status domain.Status) string {
	return fmt.Sprintf("travel-order-notification-%s-%s", orderID, status)
}

func traceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
