// Package orderv1 defines the storefront.order.v1.OrderService messages,
// server interface, service descriptor and client.
package orderv1

import (
	"context"
	"encoding/json"

	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.order.v1.OrderService"

type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Total         string          `json:"total"`
	Status        string          `json:"status"`
	ShippingInfo  json.RawMessage `json:"shippingInfo"`
	PaymentInfo   json.RawMessage `json:"paymentInfo"`
	Items         []OrderItem     `json:"items"`
	CreatedAtUnix int64           `json:"createdAt"`
	UpdatedAtUnix int64           `json:"updatedAt"`
}

type OrderResponse struct {
	Order Order `json:"order"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

type ListAllOrdersRequest struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type StatsResponse struct {
	TotalOrders  int            `json:"totalOrders"`
	Revenue      string         `json:"revenue"`
	ByStatus     map[string]int `json:"byStatus"`
	ProductCount int            `json:"productCount"`
}

type OrderServiceServer interface {
	GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error)
	ListMyOrders(context.Context, *rpc.Empty) (*ListOrdersResponse, error)
	ListAllOrders(context.Context, *ListAllOrdersRequest) (*ListOrdersResponse, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*OrderResponse, error)
	Stats(context.Context, *rpc.Empty) (*StatsResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "GetOrder", OrderServiceServer.GetOrder),
		rpc.Method(ServiceName, "ListMyOrders", OrderServiceServer.ListMyOrders),
		rpc.Method(ServiceName, "ListAllOrders", OrderServiceServer.ListAllOrders),
		rpc.Method(ServiceName, "UpdateStatus", OrderServiceServer.UpdateStatus),
		rpc.Method(ServiceName, "Stats", OrderServiceServer.Stats),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type OrderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) *OrderServiceClient {
	return &OrderServiceClient{cc: cc}
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return rpc.Invoke[OrderResponse](ctx, c.cc, ServiceName, "GetOrder", in, opts...)
}

func (c *OrderServiceClient) ListMyOrders(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return rpc.Invoke[ListOrdersResponse](ctx, c.cc, ServiceName, "ListMyOrders", in, opts...)
}

func (c *OrderServiceClient) ListAllOrders(ctx context.Context, in *ListAllOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return rpc.Invoke[ListOrdersResponse](ctx, c.cc, ServiceName, "ListAllOrders", in, opts...)
}

func (c *OrderServiceClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return rpc.Invoke[OrderResponse](ctx, c.cc, ServiceName, "UpdateStatus", in, opts...)
}

func (c *OrderServiceClient) Stats(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*StatsResponse, error) {
	return rpc.Invoke[StatsResponse](ctx, c.cc, ServiceName, "Stats", in, opts...)
}
