package notification

import (
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

const subjectPrefix = "Status do Pedido de Viagem Atualizado - "

type statusCopy struct {
	headline string
	accent   string
}

var copyByStatus = map[domain.Status]statusCopy{
	domain.StatusApproved: {headline: "Seu pedido de viagem foi aprovado!", accent: "#10b981"},
	domain.StatusCanceled: {headline: "Seu pedido de viagem foi cancelado.", accent: "#ef4444"},
}

var fallbackCopy = statusCopy{headline: "O status do seu pedido de viagem foi atualizado.", accent: "#6b7280"}

// Compose renders the message delivered to the order owner.
// OccurredAt is the moment the transition was applied, not the enqueue time.
func Compose(change domain.StatusChanged, order *domain.TravelOrder, recipient domain.Owner) ports.Notification {
	status := change.ToStatus
	text, ok := copyByStatus[status]
	if !ok {
		text = fallbackCopy
	}
	return ports.Notification{
		OrderID:        order.ID,
		Destination:    order.Destination,
		DepartureDate:  order.DepartureDate,
		ReturnDate:     order.ReturnDate,
		Status:         status,
		PreviousStatus: change.FromStatus,
		RecipientName:  recipient.Name,
		RecipientEmail: recipient.Email,
		Subject:        subjectPrefix + order.Destination,
		Headline:       text.headline,
		AccentColor:    text.accent,
		OccurredAt:     change.OccurredAt().UTC(),
	}
}
