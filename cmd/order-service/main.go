package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderpay/internal/app"
)

const (
	envGRPCAddr            = "ORDERPAY_GRPC_ADDR"
	envMetricsAddr         = "ORDERPAY_METRICS_ADDR"
	envStorageDriver       = "ORDERPAY_STORAGE_DRIVER"
	envPostgresDSN         = "ORDERPAY_POSTGRES_DSN"
	envPostgresAutoMigrate = "ORDERPAY_POSTGRES_AUTO_MIGRATE"
	envKafkaBrokers        = "ORDERPAY_KAFKA_BROKERS"
	envKafkaTopic          = "ORDERPAY_KAFKA_TOPIC"
	envGatewayApprove      = "ORDERPAY_GATEWAY_APPROVE"
	envShutdownTimeout     = "ORDERPAY_SHUTDOWN_TIMEOUT"
	envLogLevel            = "ORDERPAY_LOG_LEVEL"
)

type envLookup func(string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(lookup envLookup) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if raw, ok := lookup(envLogLevel); ok && strings.TrimSpace(raw) != "" {
		level, err := log.ParseLevel(strings.TrimSpace(raw))
		if err != nil {
			log.WithError(err).Warnf("invalid %s, using info", envLogLevel)
			return
		}
		log.SetLevel(level)
	}
}

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения игнорируются и возвращаются как предупреждения.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	warn := func(key, raw string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s=%q ignored: %v", key, raw, err))
	}
	str := func(key string) (string, bool) {
		raw, ok := lookup(key)
		raw = strings.TrimSpace(raw)
		return raw, ok && raw != ""
	}

	if v, ok := str(envGRPCAddr); ok {
		cfg.GRPCAddr = v
	}
	if v, ok := str(envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := str(envStorageDriver); ok {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(v))
	}
	if v, ok := str(envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := str(envPostgresAutoMigrate); ok {
		if parsed, err := parseBool(v); err != nil {
			warn(envPostgresAutoMigrate, v, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v, ok := str(envKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := str(envKafkaTopic); ok {
		cfg.KafkaTopic = v
	}
	if v, ok := str(envGatewayApprove); ok {
		if parsed, err := parseBool(v); err != nil {
			warn(envGatewayApprove, v, err)
		} else {
			cfg.GatewayApprove = parsed
		}
	}
	if v, ok := str(envShutdownTimeout); ok {
		if parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0"); err != nil {
			warn(envShutdownTimeout, v, err)
		} else {
			cfg.ShutdownTimeout = parsed
		}
	}

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, errors.New(rule)
	}
	return value, nil
}

// splitList разбирает список через запятую, пропуская пустые элементы.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	setupLogger(os.LookupEnv)
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"grpc_addr":      cfg.GRPCAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_brokers":  cfg.KafkaBrokers,
	}).Info("запускаем orderpay")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("orderpay остановлен")
}
