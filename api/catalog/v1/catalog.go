// Package catalogv1 defines the storefront.catalog.v1.CatalogService messages,
// server interface, service descriptor and client.
package catalogv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.catalog.v1.CatalogService"

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Inventory     int      `json:"inventory"`
	Featured      bool     `json:"featured"`
	CreatedAtUnix int64    `json:"createdAt"`
	UpdatedAtUnix int64    `json:"updatedAt"`
}

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Inventory   int      `json:"inventory"`
	Featured    bool     `json:"featured"`
}

type CreateProductRequest struct {
	Input ProductInput `json:"input"`
}

type UpdateProductRequest struct {
	ID    string       `json:"id"`
	Input ProductInput `json:"input"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type GetProductsRequest struct {
	IDs []string `json:"ids"`
}

type ListProductsRequest struct {
	Category string `json:"category,omitempty"`
	Featured bool   `json:"featured,omitempty"`
	Search   string `json:"search,omitempty"`
	MinPrice string `json:"minPrice,omitempty"`
	MaxPrice string `json:"maxPrice,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
}

type ListProductsResponse struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

type CatalogServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*rpc.Empty, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	GetProducts(context.Context, *GetProductsRequest) (*ListProductsResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "CreateProduct", CatalogServiceServer.CreateProduct),
		rpc.Method(ServiceName, "UpdateProduct", CatalogServiceServer.UpdateProduct),
		rpc.Method(ServiceName, "DeleteProduct", CatalogServiceServer.DeleteProduct),
		rpc.Method(ServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		rpc.Method(ServiceName, "GetProducts", CatalogServiceServer.GetProducts),
		rpc.Method(ServiceName, "ListProducts", CatalogServiceServer.ListProducts),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, ServiceName, "CreateProduct", in, opts...)
}

func (c *CatalogServiceClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, ServiceName, "UpdateProduct", in, opts...)
}

func (c *CatalogServiceClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, ServiceName, "DeleteProduct", in, opts...)
}

func (c *CatalogServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return rpc.Invoke[ProductResponse](ctx, c.cc, ServiceName, "GetProduct", in, opts...)
}

func (c *CatalogServiceClient) GetProducts(ctx context.Context, in *GetProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return rpc.Invoke[ListProductsResponse](ctx, c.cc, ServiceName, "GetProducts", in, opts...)
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return rpc.Invoke[ListProductsResponse](ctx, c.cc, ServiceName, "ListProducts", in, opts...)
}
