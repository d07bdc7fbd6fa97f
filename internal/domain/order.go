package domain

import (
	"fmt"
	"time"
)

// nowFunc — источник времени для отметок CreatedAt/PaidAt; подменяется в тестах.
var nowFunc = func() time.Time { return time.Now().UTC() }

// OrderLine — строка заказа. Живёт только внутри Order.
type OrderLine struct {
	ProductID   string
	ProductName string
	Price       Money
	Quantity    int
}

// NewOrderLine создаёт строку заказа, проверяя количество.
func NewOrderLine(productID, productName string, price Money, quantity int) (OrderLine, error) {
	if quantity <= 0 {
		return OrderLine{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return OrderLine{
		ProductID:   productID,
		ProductName: productName,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

// Total возвращает стоимость строки: цена × количество.
func (l OrderLine) Total() Money {
	return l.Price.Multiply(l.Quantity)
}

// Order — агрегат заказа вместе с его строками.
type Order struct {
	ID         string
	CustomerID string
	// Lines хранит строки в порядке добавления.
	Lines     []OrderLine
	Status    OrderStatus
	CreatedAt time.Time
	// PaidAt равен nil, пока заказ не оплачен.
	PaidAt *time.Time
}

// NewOrder создаёт пустой заказ в статусе Created.
func NewOrder(id, customerID string) *Order {
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Lines:      make([]OrderLine, 0),
		Status:     OrderStatusCreated,
		CreatedAt:  nowFunc(),
	}
}

// AddLine добавляет строку в заказ. Оплаченный заказ не меняется.
func (o *Order) AddLine(productID, productName string, price Money, quantity int) error {
	if o.Status == OrderStatusPaid {
		return ErrOrderAlreadyPaid
	}
	line, err := NewOrderLine(productID, productName, price, quantity)
	if err != nil {
		return err
	}
	o.Lines = append(o.Lines, line)
	return nil
}

// TotalAmount складывает стоимости строк слева направо.
// Для пустого заказа возвращает ноль в DefaultCurrency.
func (o *Order) TotalAmount() (Money, error) {
	if len(o.Lines) == 0 {
		return Zero(DefaultCurrency), nil
	}

	total := o.Lines[0].Total()
	for _, line := range o.Lines[1:] {
		var err error
		total, err = total.Add(line.Total())
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// Pay переводит заказ в Paid и фиксирует время оплаты.
// Единственный переход состояния заказа.
func (o *Order) Pay() error {
	if o.Status == OrderStatusPaid {
		return ErrAlreadyPaid
	}
	if len(o.Lines) == 0 {
		return ErrEmptyOrder
	}

	paidAt := nowFunc()
	o.Status = OrderStatusPaid
	o.PaidAt = &paidAt
	return nil
}

// CanBePaid проверяет предусловия оплаты без изменения заказа.
func (o *Order) CanBePaid() bool {
	return o.Status == OrderStatusCreated && len(o.Lines) > 0
}

// String возвращает "Order <id> (<status>) - <total>".
func (o *Order) String() string {
	total, err := o.TotalAmount()
	if err != nil {
		return fmt.Sprintf("Order %s (%s) - %v", o.ID, o.Status, err)
	}
	return fmt.Sprintf("Order %s (%s) - %s", o.ID, o.Status, total)
}
