package gateway

import (
	"context"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

type CatalogClient interface {
	CreateProduct(ctx context.Context, in *catalogv1.CreateProductRequest, opts ...grpc.CallOption) (*catalogv1.ProductResponse, error)
	UpdateProduct(ctx context.Context, in *catalogv1.UpdateProductRequest, opts ...grpc.CallOption) (*catalogv1.ProductResponse, error)
	DeleteProduct(ctx context.Context, in *catalogv1.DeleteProductRequest, opts ...grpc.CallOption) (*rpc.Empty, error)
	GetProduct(ctx context.Context, in *catalogv1.GetProductRequest, opts ...grpc.CallOption) (*catalogv1.ProductResponse, error)
	GetProducts(ctx context.Context, in *catalogv1.GetProductsRequest, opts ...grpc.CallOption) (*catalogv1.ListProductsResponse, error)
	ListProducts(ctx context.Context, in *catalogv1.ListProductsRequest, opts ...grpc.CallOption) (*catalogv1.ListProductsResponse, error)
}

type CartClient interface {
	GetCart(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*cartv1.CartResponse, error)
	AddItem(ctx context.Context, in *cartv1.AddItemRequest, opts ...grpc.CallOption) (*cartv1.CartResponse, error)
	UpdateItem(ctx context.Context, in *cartv1.UpdateItemRequest, opts ...grpc.CallOption) (*cartv1.CartResponse, error)
	RemoveItem(ctx context.Context, in *cartv1.RemoveItemRequest, opts ...grpc.CallOption) (*cartv1.CartResponse, error)
}

type CheckoutClient interface {
	Quote(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*checkoutv1.QuoteResponse, error)
	PlaceOrder(ctx context.Context, in *checkoutv1.PlaceOrderRequest, opts ...grpc.CallOption) (*orderv1.OrderResponse, error)
}

type OrderClient interface {
	GetOrder(ctx context.Context, in *orderv1.GetOrderRequest, opts ...grpc.CallOption) (*orderv1.OrderResponse, error)
	ListMyOrders(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*orderv1.ListOrdersResponse, error)
	ListAllOrders(ctx context.Context, in *orderv1.ListAllOrdersRequest, opts ...grpc.CallOption) (*orderv1.ListOrdersResponse, error)
	UpdateStatus(ctx context.Context, in *orderv1.UpdateStatusRequest, opts ...grpc.CallOption) (*orderv1.OrderResponse, error)
	Stats(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*orderv1.StatsResponse, error)
}

type AccountClient interface {
	Register(ctx context.Context, in *accountv1.RegisterRequest, opts ...grpc.CallOption) (*accountv1.UserResponse, error)
	Authenticate(ctx context.Context, in *accountv1.AuthenticateRequest, opts ...grpc.CallOption) (*accountv1.UserResponse, error)
	GetUser(ctx context.Context, in *accountv1.GetUserRequest, opts ...grpc.CallOption) (*accountv1.UserResponse, error)
}

type Clients struct {
	Catalog  CatalogClient
	Cart     CartClient
	Checkout CheckoutClient
	Order    OrderClient
	Account  AccountClient
}

// NewClients wires every service client onto one connection to the API.
func NewClients(cc grpc.ClientConnInterface) Clients {
	return Clients{
		Catalog:  catalogv1.NewCatalogServiceClient(cc),
		Cart:     cartv1.NewCartServiceClient(cc),
		Checkout: checkoutv1.NewCheckoutServiceClient(cc),
		Order:    orderv1.NewOrderServiceClient(cc),
		Account:  accountv1.NewAccountServiceClient(cc),
	}
}
