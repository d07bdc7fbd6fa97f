package domain

import "errors"

var (
	// ErrInvalidAmount — денежная сумма отрицательная.
	ErrInvalidAmount = errors.New("amount must be non-negative")
	// ErrCurrencyMismatch — попытка сложить суммы в разных валютах.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidQuantity — количество в строке заказа <= 0.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrOrderAlreadyPaid — изменение состава уже оплаченного заказа.
	ErrOrderAlreadyPaid = errors.New("cannot modify a paid order")
	// ErrAlreadyPaid — повторная оплата заказа.
	ErrAlreadyPaid = errors.New("order is already paid")
	// ErrEmptyOrder — оплата заказа без строк.
	ErrEmptyOrder = errors.New("cannot pay an empty order")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderIDRequired — пустой идентификатор заказа.
	ErrOrderIDRequired = errors.New("order_id is required")
	// ErrPaymentDeclined — платёжный шлюз не подтвердил списание.
	ErrPaymentDeclined = errors.New("payment declined")
)

// IsNotPayable сообщает, что заказ нельзя оплатить из-за его состояния.
func IsNotPayable(err error) bool {
	return errors.Is(err, ErrAlreadyPaid) || errors.Is(err, ErrEmptyOrder)
}
