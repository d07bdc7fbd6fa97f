package grpcsvc

import (
	"time"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

// LineInput — строка заказа во входящем запросе.
// Цена передаётся строкой, чтобы не терять точность.
type LineInput struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Currency    string `json:"currency,omitempty"`
	Quantity    int    `json:"quantity"`
}

type CreateOrderRequest struct {
	// OrderID необязателен, по умолчанию генерируется UUID.
	OrderID    string      `json:"order_id,omitempty"`
	CustomerID string      `json:"customer_id"`
	Lines      []LineInput `json:"lines,omitempty"`
}

type AddLineRequest struct {
	OrderID string    `json:"order_id"`
	Line    LineInput `json:"line"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

type PayOrderRequest struct {
	OrderID string `json:"order_id"`
}

// PayOrderResponse повторяет payment.Result.
type PayOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

type LineView struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

type OrderView struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Status     string     `json:"status"`
	Lines      []LineView `json:"lines"`
	// Total и Currency пусты, если строки заказа в разных валютах.
	Total     string     `json:"total,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

type OrderResponse struct {
	Order *OrderView `json:"order"`
}

func toOrderView(order *domain.Order) *OrderView {
	view := &OrderView{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status.String(),
		Lines:      make([]LineView, 0, len(order.Lines)),
		CreatedAt:  order.CreatedAt,
		PaidAt:     order.PaidAt,
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, LineView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.Price.Amount().String(),
			Currency:    line.Price.Currency(),
			Quantity:    line.Quantity,
			Total:       line.Total().Amount().String(),
		})
	}
	if total, err := order.TotalAmount(); err == nil {
		view.Total = total.Amount().String()
		view.Currency = total.Currency()
	}
	return view
}
