package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
// Хранит указатели: GetByID возвращает тот же экземпляр, что был сохранён.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]*domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]*domain.Order),
	}
}

// GetByID возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// Save сохраняет заказ по ID, перезаписывая предыдущую запись.
func (r *orderRepositoryInMemory) Save(_ context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" {
		return domain.ErrOrderIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[order.ID] = order
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
