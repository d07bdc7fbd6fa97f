package domain

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusCreated — заказ создан, строки ещё можно добавлять.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusPaid — оплата подтверждена, статус финальный.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusCancelled — заказ отменён. Ни один переход сюда не ведёт,
	// статус выставляется только извне.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string { return string(s) }
