package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Значения label outcome для попыток оплаты.
const (
	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeNotPayable      = "not_payable"
	OutcomePaymentDeclined = "payment_declined"
	OutcomeInvalidOrder    = "invalid_order"
	OutcomeStorageError    = "storage_error"
)

// PaymentMetrics содержит метрики сценария оплаты заказа.
type PaymentMetrics struct {
	attempts     *prometheus.CounterVec
	duration     prometheus.Histogram
	charged      prometheus.Histogram
	gatewayCalls *prometheus.CounterVec
}

// NewPaymentMetricsWithRegisterer регистрирует метрики в указанном registerer.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewPaymentMetricsWithRegisterer(registerer prometheus.Registerer) *PaymentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PaymentMetrics{
		attempts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderpay_payment_attempts_total",
			Help: "Total number of order payment attempts by outcome",
		}, []string{"outcome"}),
		duration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orderpay_payment_duration_seconds",
			Help:    "Duration of order payment use case in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		charged: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orderpay_payment_charged_amount",
			Help:    "Amounts successfully charged per order, in major currency units",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		gatewayCalls: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderpay_gateway_calls_total",
			Help: "Total number of payment gateway calls by result",
		}, []string{"result"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordAttempt учитывает завершённую попытку оплаты и её длительность.
func (m *PaymentMetrics) RecordAttempt(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.duration.Observe(duration.Seconds())
}

// RecordCharged записывает списанную сумму.
func (m *PaymentMetrics) RecordCharged(amount float64) {
	if m == nil {
		return
	}
	m.charged.Observe(amount)
}

// RecordGatewayCall учитывает обращение к платёжному шлюзу.
// result: approved, declined или error.
func (m *PaymentMetrics) RecordGatewayCall(result string) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(result).Inc()
}
