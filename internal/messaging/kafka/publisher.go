package kafka

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

// eventSender — часть Producer, нужная публикатору.
type eventSender interface {
	PublishEvent(topic, key string, event any) error
}

// OrderEventPublisher публикует доменные события заказов в Kafka.
// Ключ сообщения — идентификатор заказа, поэтому события одного заказа
// попадают в одну партицию.
type OrderEventPublisher struct {
	sender eventSender
	topic  string
}

// NewOrderEventPublisher создаёт публикатор поверх producer.
// Пустой topic заменяется на TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string) *OrderEventPublisher {
	return newOrderEventPublisher(producer, topic)
}

func newOrderEventPublisher(sender eventSender, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{sender: sender, topic: topic}
}

// PublishOrderPaid отправляет событие order.paid.
func (p *OrderEventPublisher) PublishOrderPaid(ctx context.Context, event domain.OrderPaidEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.sender.PublishEvent(p.topic, event.OrderID, NewOrderPaidMessage(event)); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", EventTypeOrderPaid, event.OrderID, err)
	}
	return nil
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
