package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

// EventType — тип события в топике заказов.
type EventType string

// EventTypeOrderPaid публикуется после успешной оплаты заказа.
const EventTypeOrderPaid EventType = "order.paid"

// TopicOrderEvents — топик событий заказов.
const TopicOrderEvents = "orderpay.order.events"

// OrderPaidMessage — JSON-представление события оплаты.
// Сумма передаётся строкой, чтобы не терять точность.
type OrderPaidMessage struct {
	EventID    string    `json:"event_id"`
	EventType  EventType `json:"event_type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	PaidAt     time.Time `json:"paid_at"`
}

// NewOrderPaidMessage переводит доменное событие в сообщение с новым event_id.
func NewOrderPaidMessage(event domain.OrderPaidEvent) OrderPaidMessage {
	return OrderPaidMessage{
		EventID:    uuid.NewString(),
		EventType:  EventTypeOrderPaid,
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		Amount:     event.Amount.Amount().String(),
		Currency:   event.Amount.Currency(),
		PaidAt:     event.PaidAt.UTC(),
	}
}
