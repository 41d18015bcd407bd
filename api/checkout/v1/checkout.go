// Package checkoutv1 defines the storefront.checkout.v1.CheckoutService
// messages, server interface, service descriptor and client.
package checkoutv1

import (
	"context"
	"encoding/json"

	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.checkout.v1.CheckoutService"

// FailedPrecondition status messages returned by PlaceOrder and Quote.
const (
	ReasonEmptyCart             = "cart is empty"
	ReasonInsufficientInventory = "insufficient inventory"
)

type QuoteLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type QuoteResponse struct {
	Lines []QuoteLine `json:"lines"`
	Total string      `json:"total"`
}

type PlaceOrderRequest struct {
	ShippingInfo json.RawMessage `json:"shippingInfo"`
	PaymentInfo  json.RawMessage `json:"paymentInfo"`
}

// CheckoutServiceServer acts on the cart of the principal found in ctx.
type CheckoutServiceServer interface {
	Quote(context.Context, *rpc.Empty) (*QuoteResponse, error)
	PlaceOrder(context.Context, *PlaceOrderRequest) (*orderv1.OrderResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "Quote", CheckoutServiceServer.Quote),
		rpc.Method(ServiceName, "PlaceOrder", CheckoutServiceServer.PlaceOrder),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type CheckoutServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCheckoutServiceClient(cc grpc.ClientConnInterface) *CheckoutServiceClient {
	return &CheckoutServiceClient{cc: cc}
}

func (c *CheckoutServiceClient) Quote(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return rpc.Invoke[QuoteResponse](ctx, c.cc, ServiceName, "Quote", in, opts...)
}

func (c *CheckoutServiceClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*orderv1.OrderResponse, error) {
	return rpc.Invoke[orderv1.OrderResponse](ctx, c.cc, ServiceName, "PlaceOrder", in, opts...)
}
