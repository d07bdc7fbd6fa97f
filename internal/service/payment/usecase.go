package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/metrics"
)

const tracerName = "github.com/vladislavdragonenkov/orderpay/internal/service/payment"

// Reason — машиночитаемая причина результата оплаты.
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonNotFound        Reason = "not_found"
	ReasonNotPayable      Reason = "not_payable"
	ReasonPaymentDeclined Reason = "payment_declined"
	ReasonInvalidOrder    Reason = "invalid_order"
	ReasonStorageError    Reason = "storage_error"
)

// Result — итог оплаты: флаг успеха и сообщение для пользователя.
type Result struct {
	Success bool
	Message string
	Reason  Reason
}

// Err возвращает доменную ошибку, соответствующую причине неудачи.
// Для успешного результата и сбоев хранилища возвращает nil.
func (r Result) Err() error {
	switch r.Reason {
	case ReasonNotFound:
		return domain.ErrOrderNotFound
	case ReasonPaymentDeclined:
		return domain.ErrPaymentDeclined
	default:
		return nil
	}
}

// PayOrderUseCase оплачивает один заказ: загрузка, проверка, переход в Paid,
// списание через шлюз и сохранение.
type PayOrderUseCase struct {
	orders    domain.OrderRepository
	gateway   domain.PaymentGateway
	publisher domain.EventPublisher
	metrics   *metrics.PaymentMetrics
	tracer    trace.Tracer
	logger    *log.Entry
}

// Option настраивает PayOrderUseCase.
type Option func(*PayOrderUseCase)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(uc *PayOrderUseCase) {
		if logger != nil {
			uc.logger = logger
		}
	}
}

// WithPublisher включает публикацию OrderPaidEvent после сохранения.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(uc *PayOrderUseCase) { uc.publisher = publisher }
}

// WithMetrics включает запись prometheus-метрик.
func WithMetrics(m *metrics.PaymentMetrics) Option {
	return func(uc *PayOrderUseCase) { uc.metrics = m }
}

// WithTracer задаёт tracer вместо глобального.
func WithTracer(tracer trace.Tracer) Option {
	return func(uc *PayOrderUseCase) {
		if tracer != nil {
			uc.tracer = tracer
		}
	}
}

// NewPayOrderUseCase конструирует сценарий с обязательными зависимостями.
func NewPayOrderUseCase(orders domain.OrderRepository, gateway domain.PaymentGateway, opts ...Option) *PayOrderUseCase {
	uc := &PayOrderUseCase{
		orders:  orders,
		gateway: gateway,
		tracer:  otel.Tracer(tracerName),
		logger:  log.WithField("component", "pay-order"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute оплачивает заказ orderID. Ошибки не выходят наружу:
// любой сбой превращается в Result с Success=false.
//
// Заказ переводится в Paid до обращения к шлюзу. Если шлюз отказал,
// объект в памяти остаётся Paid, но не сохраняется.
func (uc *PayOrderUseCase) Execute(ctx context.Context, orderID string) (res Result) {
	ctx, span := uc.tracer.Start(ctx, "PayOrder", trace.WithAttributes(
		attribute.String("order.id", orderID),
	))
	start := time.Now()
	logger := uc.logger.WithField("order_id", orderID)

	defer func() {
		uc.metrics.RecordAttempt(outcomeLabel(res.Reason), time.Since(start))

		span.SetAttributes(
			attribute.Bool("payment.success", res.Success),
			attribute.String("payment.reason", string(res.Reason)),
		)
		if res.Success {
			span.SetStatus(codes.Ok, res.Message)
		} else {
			span.SetStatus(codes.Error, res.Message)
		}
		span.End()

		entry := logger.WithFields(log.Fields{
			"success":         res.Success,
			"reason":          res.Reason,
			"latency_seconds": time.Since(start).Seconds(),
		})
		if res.Success {
			entry.Info(res.Message)
		} else {
			entry.WithError(res.Err()).Warn(res.Message)
		}
	}()

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return fail(ReasonNotFound, "order %s not found", orderID)
		}
		span.RecordError(err)
		logger.WithError(err).Error("failed to load order")
		return fail(ReasonStorageError, "failed to load order %s", orderID)
	}
	if order == nil {
		return fail(ReasonNotFound, "order %s not found", orderID)
	}

	if !order.CanBePaid() {
		return fail(ReasonNotPayable, "order %s cannot be paid", orderID)
	}

	// Pay повторяет проверки CanBePaid; в норме этот путь недостижим.
	if err := order.Pay(); err != nil {
		reason := ReasonInvalidOrder
		if domain.IsNotPayable(err) {
			reason = ReasonNotPayable
		}
		return Result{Success: false, Message: err.Error(), Reason: reason}
	}

	amount, err := order.TotalAmount()
	if err != nil {
		span.RecordError(err)
		return Result{Success: false, Message: err.Error(), Reason: ReasonInvalidOrder}
	}
	span.SetAttributes(
		attribute.String("payment.amount", amount.Amount().String()),
		attribute.String("payment.currency", amount.Currency()),
	)

	approved, err := uc.gateway.Charge(ctx, orderID, amount)
	switch {
	case err != nil:
		uc.metrics.RecordGatewayCall("error")
		span.RecordError(err)
		logger.WithError(err).Warn("payment gateway call failed")
		return fail(ReasonPaymentDeclined, "payment failed for order %s", orderID)
	case !approved:
		uc.metrics.RecordGatewayCall("declined")
		span.RecordError(domain.ErrPaymentDeclined)
		return fail(ReasonPaymentDeclined, "payment failed for order %s", orderID)
	}
	uc.metrics.RecordGatewayCall("approved")

	if err := uc.orders.Save(ctx, order); err != nil {
		span.RecordError(err)
		logger.WithError(err).Error("failed to save paid order")
		return fail(ReasonStorageError, "failed to save order %s", orderID)
	}

	uc.metrics.RecordCharged(amount.Amount().InexactFloat64())
	uc.publishPaid(ctx, logger, order, amount)

	return Result{
		Success: true,
		Message: fmt.Sprintf("order %s paid successfully: %s", orderID, amount),
		Reason:  ReasonOK,
	}
}

func (uc *PayOrderUseCase) publishPaid(ctx context.Context, logger *log.Entry, order *domain.Order, amount domain.Money) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishOrderPaid(ctx, domain.NewOrderPaidEvent(order, amount)); err != nil {
		logger.WithError(err).Warn("failed to publish order paid event")
	}
}

func fail(reason Reason, format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...), Reason: reason}
}

func outcomeLabel(reason Reason) string {
	switch reason {
	case ReasonOK:
		return metrics.OutcomeSuccess
	case ReasonNotFound:
		return metrics.OutcomeNotFound
	case ReasonNotPayable:
		return metrics.OutcomeNotPayable
	case ReasonPaymentDeclined:
		return metrics.OutcomePaymentDeclined
	case ReasonInvalidOrder:
		return metrics.OutcomeInvalidOrder
	default:
		return metrics.OutcomeStorageError
	}
}
