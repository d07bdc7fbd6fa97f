package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName — полное имя gRPC-сервиса.
const ServiceName = "orderpay.v1.PaymentService"

const (
	methodCreateOrder = "/" + ServiceName + "/CreateOrder"
	methodAddLine     = "/" + ServiceName + "/AddLine"
	methodGetOrder    = "/" + ServiceName + "/GetOrder"
	methodPayOrder    = "/" + ServiceName + "/PayOrder"
)

// PaymentServiceServer — серверная сторона orderpay.v1.PaymentService.
type PaymentServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error)
	AddLine(context.Context, *AddLineRequest) (*OrderResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error)
	PayOrder(context.Context, *PayOrderRequest) (*PayOrderResponse, error)
}

// RegisterPaymentServiceServer регистрирует реализацию на сервере.
func RegisterPaymentServiceServer(s grpc.ServiceRegistrar, srv PaymentServiceServer) {
	s.RegisterService(&PaymentServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для метода с запросом типа Req.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(PaymentServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PaymentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PaymentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PaymentServiceDesc описывает сервис без кодогенерации protoc.
var PaymentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler:    unaryHandler(methodCreateOrder, PaymentServiceServer.CreateOrder),
		},
		{
			MethodName: "AddLine",
			Handler:    unaryHandler(methodAddLine, PaymentServiceServer.AddLine),
		},
		{
			MethodName: "GetOrder",
			Handler:    unaryHandler(methodGetOrder, PaymentServiceServer.GetOrder),
		},
		{
			MethodName: "PayOrder",
			Handler:    unaryHandler(methodPayOrder, PaymentServiceServer.PayOrder),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orderpay/v1/payment.proto",
}

// PaymentServiceClient — клиент PaymentService поверх JSON-кодека.
type PaymentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPaymentServiceClient создаёт клиента для соединения cc.
func NewPaymentServiceClient(cc grpc.ClientConnInterface) *PaymentServiceClient {
	return &PaymentServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PaymentServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, methodCreateOrder, in, opts)
}

func (c *PaymentServiceClient) AddLine(ctx context.Context, in *AddLineRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, methodAddLine, in, opts)
}

func (c *PaymentServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, methodGetOrder, in, opts)
}

func (c *PaymentServiceClient) PayOrder(ctx context.Context, in *PayOrderRequest, opts ...grpc.CallOption) (*PayOrderResponse, error) {
	return invoke[PayOrderResponse](ctx, c.cc, methodPayOrder, in, opts)
}
