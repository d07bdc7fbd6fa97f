package app

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/service/payment"
)

func testLogger(name string) *log.Entry {
	return log.WithField("test", name)
}

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := initRuntimeDependencies(context.Background(), cfg, prometheus.NewRegistry(), testLogger("memory"))
	require.NoError(t, err)
	defer deps.close(testLogger("memory"))

	require.NotNil(t, deps.repo)
	require.NotNil(t, deps.payOrder)
	require.Nil(t, deps.producer)
	require.NoError(t, deps.storageCheck(context.Background()))
	require.True(t, deps.gateway.Approve)
}

func TestInitRuntimeDependencies_PaysThroughWiredUseCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GatewayApprove = false

	deps, err := initRuntimeDependencies(context.Background(), cfg, prometheus.NewRegistry(), testLogger("wired"))
	require.NoError(t, err)

	order := domain.NewOrder("order-1", "customer-1")
	require.NoError(t, order.AddLine("p1", "Book", domain.MustMoney("500", "USD"), 2))
	require.NoError(t, deps.repo.Save(context.Background(), order))

	res := deps.payOrder.Execute(context.Background(), "order-1")
	require.False(t, res.Success)
	require.Equal(t, payment.ReasonPaymentDeclined, res.Reason)
	require.Equal(t, 1, deps.gateway.CallCount())
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres

	_, err := initRuntimeDependencies(context.Background(), cfg, prometheus.NewRegistry(), testLogger("postgres-missing-dsn"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "postgres dsn")
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	_, err := initRuntimeDependencies(context.Background(), cfg, prometheus.NewRegistry(), testLogger("unsupported"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported storage driver")
}

func TestInitRuntimeDependencies_Postgres(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("ORDERPAY_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("ORDERPAY_POSTGRES_TEST_DSN is not set")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn

	deps, err := initRuntimeDependencies(context.Background(), cfg, prometheus.NewRegistry(), testLogger("postgres"))
	if err != nil {
		t.Skipf("postgres is not available for app integration test: %v", err)
	}
	defer deps.close(testLogger("postgres"))

	require.NotNil(t, deps.closeStorage)
	require.NoError(t, deps.storageCheck(context.Background()))
}

func TestKafkaHelpers_NoBrokers(t *testing.T) {
	producer, publisher := initKafkaPublisher(nil, "", testLogger("kafka"))
	require.Nil(t, producer)
	require.Nil(t, publisher)

	closeKafka(nil, testLogger("kafka"))
}
