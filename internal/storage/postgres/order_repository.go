package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

const opTimeout = 5 * time.Second

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// В отличие от in-memory варианта, GetByID всегда собирает новый экземпляр.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		order  domain.Order
		status string
		paidAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, created_at, paid_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &status, &order.CreatedAt, &paidAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	order.Status = domain.OrderStatus(status)
	order.CreatedAt = order.CreatedAt.UTC()
	if paidAt.Valid {
		t := paidAt.Time.UTC()
		order.PaidAt = &t
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return &order, nil
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) (err error) {
	if order == nil || order.ID == "" {
		return domain.ErrOrderIDRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var paidAt sql.NullTime
	if order.PaidAt != nil {
		paidAt = sql.NullTime{Time: *order.PaidAt, Valid: true}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, created_at, paid_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE
		SET customer_id = EXCLUDED.customer_id,
		    status      = EXCLUDED.status,
		    paid_at     = EXCLUDED.paid_at,
		    updated_at  = NOW()
	`, order.ID, order.CustomerID, string(order.Status), order.CreatedAt, paidAt); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	// Строки принадлежат заказу целиком, поэтому переписываем их набором.
	if _, err = tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}

	for pos, line := range order.Lines {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (
				order_id, position, product_id, product_name, unit_price, currency, quantity
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			order.ID, pos, line.ProductID, line.ProductName,
			line.Price.Amount(), line.Price.Currency(), line.Quantity,
		); err != nil {
			return fmt.Errorf("insert order line %d: %w", pos, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save order: %w", err)
	}
	return nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, unit_price, currency, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var (
			line     domain.OrderLine
			price    decimal.Decimal
			currency string
		)
		if err := rows.Scan(&line.ProductID, &line.ProductName, &price, &currency, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		line.Price, err = domain.NewMoney(price, currency)
		if err != nil {
			return nil, fmt.Errorf("decode line price for order %s: %w", orderID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
