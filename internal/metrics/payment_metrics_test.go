package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestNewPaymentMetricsWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetricsWithRegisterer(reg)

	if m.attempts == nil || m.duration == nil || m.charged == nil || m.gatewayCalls == nil {
		t.Fatalf("expected all collectors to be initialized: %+v", m)
	}
}

func TestNewPaymentMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPaymentMetricsWithRegisterer(reg)
	second := NewPaymentMetricsWithRegisterer(reg)

	first.RecordAttempt(OutcomeSuccess, time.Millisecond)
	second.RecordAttempt(OutcomeSuccess, time.Millisecond)

	if got := testutil.ToFloat64(first.attempts.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestRecordAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetricsWithRegisterer(reg)

	m.RecordAttempt(OutcomeSuccess, 10*time.Millisecond)
	m.RecordAttempt(OutcomeNotFound, time.Millisecond)
	m.RecordAttempt(OutcomeNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.attempts.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues(OutcomeNotFound)); got != 2 {
		t.Errorf("expected 2 not_found, got %v", got)
	}

	metric := &dto.Metric{}
	if err := m.duration.Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 duration samples, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestRecordChargedAndGatewayCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetricsWithRegisterer(reg)

	m.RecordCharged(1550)
	m.RecordGatewayCall("approved")
	m.RecordGatewayCall("declined")

	metric := &dto.Metric{}
	if err := m.charged.Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleSum() != 1550 {
		t.Errorf("expected sample sum 1550, got %v", metric.Histogram.GetSampleSum())
	}
	if got := testutil.ToFloat64(m.gatewayCalls.WithLabelValues("declined")); got != 1 {
		t.Errorf("expected 1 declined call, got %v", got)
	}
}

func TestNilPaymentMetricsIsNoop(t *testing.T) {
	var m *PaymentMetrics
	m.RecordAttempt(OutcomeSuccess, time.Second)
	m.RecordCharged(1)
	m.RecordGatewayCall("approved")
}
