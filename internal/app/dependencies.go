package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/health"
	"github.com/vladislavdragonenkov/orderpay/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orderpay/internal/metrics"
	"github.com/vladislavdragonenkov/orderpay/internal/service/payment"
	"github.com/vladislavdragonenkov/orderpay/internal/storage/memory"
	"github.com/vladislavdragonenkov/orderpay/internal/storage/postgres"
)

// runtimeDependencies — всё, что нужно транспорту, плюс функции закрытия.
type runtimeDependencies struct {
	repo         domain.OrderRepository
	gateway      *payment.MockGateway
	producer     *kafka.Producer
	payOrder     *payment.PayOrderUseCase
	storageCheck health.CheckFunc
	closeStorage func() error
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	closeKafka(d.producer, logger)
	if d.closeStorage != nil {
		if err := d.closeStorage(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}
}

// initRuntimeDependencies собирает хранилище, шлюз, публикатор и сценарий оплаты.
func initRuntimeDependencies(
	ctx context.Context,
	cfg Config,
	registerer prometheus.Registerer,
	logger *log.Entry,
) (*runtimeDependencies, error) {
	deps := &runtimeDependencies{}

	if err := initStorage(ctx, cfg, deps, logger.WithField("layer", "storage")); err != nil {
		return nil, err
	}

	deps.gateway = payment.NewMockGateway(logger.WithField("layer", "gateway"))
	deps.gateway.Approve = cfg.GatewayApprove

	opts := []payment.Option{
		payment.WithLogger(logger.WithField("layer", "payment")),
		payment.WithMetrics(metrics.NewPaymentMetricsWithRegisterer(registerer)),
	}

	producer, publisher := initKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger.WithField("layer", "kafka"))
	if publisher != nil {
		deps.producer = producer
		opts = append(opts, payment.WithPublisher(publisher))
	}

	deps.payOrder = payment.NewPayOrderUseCase(deps.repo, deps.gateway, opts...)
	return deps, nil
}

func initStorage(ctx context.Context, cfg Config, deps *runtimeDependencies, logger *log.Entry) error {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		deps.repo = memory.NewOrderRepository()
		deps.storageCheck = func(context.Context) error { return nil }
		logger.Info("using in-memory storage")
		return nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("postgres dsn is required for postgres storage")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("postgres migrations applied")
		}
		deps.repo = postgres.NewOrderRepository(store)
		deps.storageCheck = store.Ping
		deps.closeStorage = store.Close
		logger.Info("using postgres storage")
		return nil

	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
