package payment

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

// MockGateway — конфигурируемая заглушка PaymentGateway.
// Реальной интеграции с провайдером нет: шлюз только логирует списание.
type MockGateway struct {
	mu sync.Mutex

	Approve bool
	Err     error

	Calls      int
	LastOrder  string
	LastAmount domain.Money

	logger *log.Entry
}

// NewMockGateway возвращает шлюз, который подтверждает любое списание.
func NewMockGateway(logger *log.Entry) *MockGateway {
	if logger == nil {
		logger = log.WithField("component", "mock-gateway")
	}
	return &MockGateway{Approve: true, logger: logger}
}

// Charge возвращает заранее настроенный результат и считает вызовы.
func (g *MockGateway) Charge(_ context.Context, orderID string, amount domain.Money) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Calls++
	g.LastOrder = orderID
	g.LastAmount = amount

	if g.logger != nil {
		g.logger.WithFields(log.Fields{
			"order_id": orderID,
			"amount":   amount.String(),
			"approved": g.Approve && g.Err == nil,
		}).Info("mock charge")
	}

	return g.Approve, g.Err
}

// CallCount возвращает число вызовов Charge.
func (g *MockGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Calls
}

var _ domain.PaymentGateway = (*MockGateway)(nil)
