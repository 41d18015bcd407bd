package grpc

import (
	"context"
	"errors"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetCart(ctx context.Context, _ *rpc.Empty) (*cartv1.CartResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.View(ctx, p.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cartv1.CartResponse{Cart: ToProto(v)}, nil
}

func (s *Server) AddItem(ctx context.Context, req *cartv1.AddItemRequest) (*cartv1.CartResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.AddItem(ctx, p.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cartv1.CartResponse{Cart: ToProto(v)}, nil
}

func (s *Server) UpdateItem(ctx context.Context, req *cartv1.UpdateItemRequest) (*cartv1.CartResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.UpdateQuantity(ctx, p.UserID, req.ItemID, req.Quantity)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cartv1.CartResponse{Cart: ToProto(v)}, nil
}

func (s *Server) RemoveItem(ctx context.Context, req *cartv1.RemoveItemRequest) (*cartv1.CartResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.RemoveItem(ctx, p.UserID, req.ItemID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cartv1.CartResponse{Cart: ToProto(v)}, nil
}

// ToProto renders a priced view. It is shared with the device-local cart so
// both modes present the same shape.
func ToProto(v domain.View) cartv1.Cart {
	items := make([]cartv1.CartItem, 0, len(v.Items))
	for _, it := range v.Items {
		images := it.Product.Images
		if images == nil {
			images = []string{}
		}
		items = append(items, cartv1.CartItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Price:     it.Product.Price.StringFixed(2),
			Images:    images,
			Inventory: it.Product.Inventory,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal.StringFixed(2),
		})
	}

	return cartv1.Cart{
		Items:      items,
		ItemCount:  v.ItemCount,
		TotalPrice: v.TotalPrice.StringFixed(2),
	}
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
