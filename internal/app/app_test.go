package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/health"
	grpcsvc "github.com/vladislavdragonenkov/orderpay/internal/service/grpc"
)

func TestRun_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := Run(ctx, cfg)
	require.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "invalid-driver"

	err := Run(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported storage driver")
}

func TestRun_ListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := DefaultConfig()
	cfg.GRPCAddr = busy.Addr().String()
	cfg.MetricsAddr = "127.0.0.1:0"

	err = Run(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen grpc")
}

func TestHTTPHandler_Endpoints(t *testing.T) {
	healthHandler := health.NewHandler("test")
	healthHandler.Register("storage", func(context.Context) error { return nil })
	handler := newHTTPHandler(healthHandler)

	for path, want := range map[string]int{
		"/metrics": http.StatusOK,
		"/healthz": http.StatusOK,
		"/livez":   http.StatusOK,
		"/readyz":  http.StatusOK,
	} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, w.Code, path)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestGRPCServer_HealthAndPayment(t *testing.T) {
	logger := testLogger("grpc")
	reg := prometheus.NewRegistry()
	deps, err := initRuntimeDependencies(context.Background(), DefaultConfig(), reg, logger)
	require.NoError(t, err)

	server, _ := newGRPCServer(deps, reg, logger)
	listener := bufconn.Listen(1024 * 1024)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hc, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: grpcsvc.ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, hc.Status)

	order := domain.NewOrder("order-1", "customer-1")
	require.NoError(t, order.AddLine("p1", "Book", domain.MustMoney("500", "USD"), 2))
	require.NoError(t, deps.repo.Save(ctx, order))

	resp, err := grpcsvc.NewPaymentServiceClient(conn).PayOrder(ctx, &grpcsvc.PayOrderRequest{OrderID: "order-1"})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["grpc_server_handled_total"])
	require.True(t, names["orderpay_payment_attempts_total"])
}
