package grpcsvc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	require.Equal(t, CodecName, codec.Name())
}

func TestJSONCodec_PlainStruct(t *testing.T) {
	codec := jsonCodec{}

	data, err := codec.Marshal(&PayOrderRequest{OrderID: "order-1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"order_id":"order-1"}`, string(data))

	var decoded PayOrderRequest
	require.NoError(t, codec.Unmarshal(data, &decoded))
	require.Equal(t, "order-1", decoded.OrderID)
}

func TestJSONCodec_ProtoMessage(t *testing.T) {
	codec := jsonCodec{}

	data, err := codec.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	require.Contains(t, string(data), "SERVING")

	var decoded healthpb.HealthCheckResponse
	require.NoError(t, codec.Unmarshal([]byte(`{"status":"NOT_SERVING","extra":1}`), &decoded))
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, decoded.Status)
}
