package grpc

import (
	"context"
	"errors"
	"strings"

	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.ProductResponse, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	in, err := fromInput(req.Input)
	if err != nil {
		return nil, err
	}
	product, err := s.svc.CreateProduct(ctx, in)
	if err != nil {
		return nil, mapErr(err)
	}
	return &catalogv1.ProductResponse{Product: ToProto(product)}, nil
}

func (s *Server) UpdateProduct(ctx context.Context, req *catalogv1.UpdateProductRequest) (*catalogv1.ProductResponse, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	in, err := fromInput(req.Input)
	if err != nil {
		return nil, err
	}
	product, err := s.svc.UpdateProduct(ctx, req.ID, in)
	if err != nil {
		return nil, mapErr(err)
	}
	return &catalogv1.ProductResponse{Product: ToProto(product)}, nil
}

func (s *Server) DeleteProduct(ctx context.Context, req *catalogv1.DeleteProductRequest) (*rpc.Empty, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.svc.DeleteProduct(ctx, req.ID); err != nil {
		return nil, mapErr(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.ProductResponse, error) {
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &catalogv1.ProductResponse{Product: ToProto(p)}, nil
}

func (s *Server) GetProducts(ctx context.Context, req *catalogv1.GetProductsRequest) (*catalogv1.ListProductsResponse, error) {
	byID, err := s.svc.GetProducts(ctx, req.IDs)
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]catalogv1.Product, 0, len(byID))
	for _, id := range req.IDs {
		if p, ok := byID[id]; ok {
			out = append(out, ToProto(p))
		}
	}
	return &catalogv1.ListProductsResponse{Products: out}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	filter := domain.Filter{
		Category: req.Category,
		Featured: req.Featured,
		Search:   req.Search,
	}
	var err error
	if filter.MinPrice, err = optionalPrice(req.MinPrice); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = optionalPrice(req.MaxPrice); err != nil {
		return nil, err
	}

	products, next, err := s.svc.ListProducts(ctx, filter, req.Limit, req.Cursor)
	if err != nil {
		return nil, mapErr(err)
	}

	out := make([]catalogv1.Product, 0, len(products))
	for _, p := range products {
		out = append(out, ToProto(p))
	}

	return &catalogv1.ListProductsResponse{Products: out, NextCursor: next}, nil
}

func ToProto(p domain.Product) catalogv1.Product {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return catalogv1.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		Images:        images,
		Category:      p.Category,
		Inventory:     p.Inventory,
		Featured:      p.Featured,
		CreatedAtUnix: p.CreatedAt.Unix(),
		UpdatedAtUnix: p.UpdatedAt.Unix(),
	}
}

func fromInput(in catalogv1.ProductInput) (app.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return app.ProductInput{}, status.Error(codes.InvalidArgument, "price must be a decimal number")
	}
	return app.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Images:      in.Images,
		Category:    in.Category,
		Inventory:   in.Inventory,
		Featured:    in.Featured,
	}, nil
}

func optionalPrice(v string) (*decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "price filter must be a decimal number")
	}
	return &d, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
