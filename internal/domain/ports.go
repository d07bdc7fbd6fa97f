package domain

import (
	"context"
	"time"
)

// PaymentGateway описывает взаимодействие с платёжным провайдером.
type PaymentGateway interface {
	// Charge списывает amount по заказу. true — списание прошло.
	// Ошибка означает сбой связи с провайдером.
	Charge(ctx context.Context, orderID string, amount Money) (bool, error)
}

// EventPublisher публикует доменные события наружу.
type EventPublisher interface {
	PublishOrderPaid(ctx context.Context, event OrderPaidEvent) error
}

// OrderPaidEvent фиксирует успешную оплату заказа.
type OrderPaidEvent struct {
	OrderID    string
	CustomerID string
	Amount     Money
	PaidAt     time.Time
}

// NewOrderPaidEvent собирает событие из оплаченного заказа.
func NewOrderPaidEvent(order *Order, amount Money) OrderPaidEvent {
	event := OrderPaidEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Amount:     amount,
	}
	if order.PaidAt != nil {
		event.PaidAt = *order.PaidAt
	}
	return event
}
