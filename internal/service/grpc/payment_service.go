package grpcsvc

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/service/payment"
)

// OrderPayer — сценарий оплаты, которым пользуется транспорт.
type OrderPayer interface {
	Execute(ctx context.Context, orderID string) payment.Result
}

// PaymentService реализует PaymentServiceServer поверх репозитория и сценария оплаты.
type PaymentService struct {
	repo   domain.OrderRepository
	payer  OrderPayer
	logger *log.Entry

	// mu упорядочивает изменения заказов: in-memory репозиторий отдаёт общий экземпляр.
	mu sync.Mutex
}

// NewPaymentService конструирует сервис с зависимостями.
func NewPaymentService(repo domain.OrderRepository, payer OrderPayer, logger *log.Entry) *PaymentService {
	if logger == nil {
		logger = log.New().WithField("component", "payment-service")
	}
	return &PaymentService{repo: repo, payer: payer, logger: logger}
}

// CreateOrder создаёт заказ со строками из запроса.
func (s *PaymentService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	orderID := normalizeOrderID(req.OrderID)
	if orderID == "" {
		orderID = uuid.NewString()
	}

	order := domain.NewOrder(orderID, customerID)
	for idx, line := range req.Lines {
		if err := addLine(order, line); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "lines[%d]: %v", idx, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetByID(ctx, orderID); err == nil {
		return nil, status.Errorf(codes.AlreadyExists, "order %s already exists", orderID)
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to check order existence")
		return nil, status.Error(codes.Internal, "failed to load order")
	}

	if err := s.repo.Save(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to create order")
		return nil, status.Error(codes.Internal, "failed to persist order")
	}

	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"customer_id": customerID,
		"lines":       len(order.Lines),
	}).Info("order created")

	return &OrderResponse{Order: toOrderView(order)}, nil
}

// AddLine добавляет строку в существующий заказ.
func (s *PaymentService) AddLine(ctx context.Context, req *AddLineRequest) (*OrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	orderID, err := requireOrderID(req.OrderID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := addLine(order, req.Line); err != nil {
		if errors.Is(err, domain.ErrOrderAlreadyPaid) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.repo.Save(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to save order line")
		return nil, status.Error(codes.Internal, "failed to persist order")
	}

	return &OrderResponse{Order: toOrderView(order)}, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *PaymentService) GetOrder(ctx context.Context, req *GetOrderRequest) (*OrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	orderID, err := requireOrderID(req.OrderID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResponse{Order: toOrderView(order)}, nil
}

// PayOrder запускает сценарий оплаты. Бизнес-отказы возвращаются в теле ответа,
// gRPC-ошибка бывает только при некорректном запросе.
func (s *PaymentService) PayOrder(ctx context.Context, req *PayOrderRequest) (*PayOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	orderID, err := requireOrderID(req.OrderID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	res := s.payer.Execute(ctx, orderID)
	s.mu.Unlock()

	return &PayOrderResponse{
		Success: res.Success,
		Message: res.Message,
		Reason:  string(res.Reason),
	}, nil
}

func (s *PaymentService) loadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err == nil {
		return order, nil
	}
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, status.Errorf(codes.NotFound, "order %s not found", orderID)
	}
	s.logger.WithError(err).WithField("order_id", orderID).Error("failed to load order")
	return nil, status.Error(codes.Internal, "failed to load order")
}

// requireOrderID возвращает обрезанный идентификатор или InvalidArgument.
func requireOrderID(raw string) (string, error) {
	orderID := normalizeOrderID(raw)
	if orderID == "" {
		return "", status.Error(codes.InvalidArgument, "order_id is required")
	}
	return orderID, nil
}

// normalizeOrderID обрезает пробелы одинаково при создании и поиске заказа.
func normalizeOrderID(raw string) string {
	return strings.TrimSpace(raw)
}

// addLine разбирает цену и добавляет строку через доменную модель.
func addLine(order *domain.Order, in LineInput) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return errors.New("price must be a decimal number")
	}
	price, err := domain.NewMoney(amount, strings.ToUpper(strings.TrimSpace(in.Currency)))
	if err != nil {
		return err
	}
	return order.AddLine(in.ProductID, in.ProductName, price, in.Quantity)
}

var _ PaymentServiceServer = (*PaymentService)(nil)
