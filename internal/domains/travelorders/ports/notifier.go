package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
)

// Notification is the rendered status-change message handed to a sink.
type Notification struct {
	OrderID        string        `json:"order_id"`
	Destination    string        `json:"destination"`
	DepartureDate  time.Time     `json:"departure_date"`
	ReturnDate     time.Time     `json:"return_date"`
	Status         domain.Status `json:"status"`
	PreviousStatus domain.Status `json:"previous_status"`
	RecipientName  string        `json:"recipient_name"`
	RecipientEmail string        `json:"recipient_email"`
	Subject        string        `json:"subject"`
	Headline       string        `json:"headline"`
	AccentColor    string        `json:"accent_color"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// Notifier hands a committed status change to an asynchronous delivery mechanism.
// A returned error means the notification could not be enqueued at all.
type Notifier interface {
	Notify(ctx context.Context, change domain.StatusChanged, order *domain.TravelOrder, recipient domain.Owner) error
}

// NotificationSink delivers a rendered notification. Dispatchers retry it.
type NotificationSink interface {
	Deliver(ctx context.Context, notification Notification) error
}

// OwnerDirectory resolves owner display and contact data.
type OwnerDirectory interface {
	Lookup(ctx context.Context, userID string) (domain.Owner, error)
}

// NoopNotifier drops every notification.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, domain.StatusChanged, *domain.TravelOrder, domain.Owner) error {
	return nil
}
