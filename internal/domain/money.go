package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency — валюта, которая подставляется, если код не указан.
const DefaultCurrency = "USD"

// Money — неизменяемая денежная сумма с кодом валюты.
// Нулевое значение Money не валидно, используйте NewMoney или Zero.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney создаёт сумму. Пустая валюта заменяется на DefaultCurrency,
// отрицательная сумма даёт ErrInvalidAmount.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney — вариант NewMoney для фикстур и констант; паникует на ошибке.
func MustMoney(amount string, currency string) Money {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		panic(fmt.Sprintf("invalid money amount %q: %v", amount, err))
	}
	m, err := NewMoney(value, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero возвращает нулевую сумму в указанной валюте.
func Zero(currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount возвращает сумму.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency возвращает код валюты.
func (m Money) Currency() string { return m.currency }

// Add складывает суммы одной валюты.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Multiply умножает сумму на количество. Знак quantity не проверяется:
// при quantity < 0 результат отрицательный, и NewMoney такую сумму отверг бы.
// Строки заказа защищены проверкой quantity > 0 в NewOrderLine.
func (m Money) Multiply(quantity int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		currency: m.currency,
	}
}

// Equal сравнивает суммы по значению: 10 и 10.00 в одной валюте равны.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String возвращает "<amount> <currency>".
func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}
