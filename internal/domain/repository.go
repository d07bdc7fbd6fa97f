package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// GetByID возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	GetByID(ctx context.Context, id string) (*Order, error)
	// Save безусловно сохраняет заказ по его ID (upsert).
	Save(ctx context.Context, order *Order) error
}
