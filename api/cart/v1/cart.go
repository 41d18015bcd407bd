// Package cartv1 defines the storefront.cart.v1.CartService messages,
// server interface, service descriptor and client.
package cartv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.cart.v1.CartService"

type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Images    []string `json:"images"`
	Inventory int      `json:"inventory"`
	Quantity  int      `json:"quantity"`
	LineTotal string   `json:"lineTotal"`
}

type Cart struct {
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"itemCount"`
	TotalPrice string     `json:"totalPrice"`
}

type CartResponse struct {
	Cart Cart `json:"cart"`
}

type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type UpdateItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type RemoveItemRequest struct {
	ItemID string `json:"itemId"`
}

// CartServiceServer operates on the cart of the principal found in ctx.
type CartServiceServer interface {
	GetCart(context.Context, *rpc.Empty) (*CartResponse, error)
	AddItem(context.Context, *AddItemRequest) (*CartResponse, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*CartResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.Method(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.Method(ServiceName, "UpdateItem", CartServiceServer.UpdateItem),
		rpc.Method(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*CartResponse, error) {
	return rpc.Invoke[CartResponse](ctx, c.cc, ServiceName, "GetCart", in, opts...)
}

func (c *CartServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return rpc.Invoke[CartResponse](ctx, c.cc, ServiceName, "AddItem", in, opts...)
}

func (c *CartServiceClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return rpc.Invoke[CartResponse](ctx, c.cc, ServiceName, "UpdateItem", in, opts...)
}

func (c *CartServiceClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return rpc.Invoke[CartResponse](ctx, c.cc, ServiceName, "RemoveItem", in, opts...)
}
