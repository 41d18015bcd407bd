package grpc

import (
	"context"
	"errors"

	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
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

func (s *Server) GetOrder(ctx context.Context, req *orderv1.GetOrderRequest) (*orderv1.OrderResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.svc.Get(ctx, p, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.OrderResponse{Order: ToProto(o)}, nil
}

func (s *Server) ListMyOrders(ctx context.Context, _ *rpc.Empty) (*orderv1.ListOrdersResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.svc.ListForUser(ctx, p.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.ListOrdersResponse{Orders: toProtoList(orders), Total: len(orders)}, nil
}

func (s *Server) ListAllOrders(ctx context.Context, req *orderv1.ListAllOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	orders, total, err := s.svc.ListAll(ctx, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.ListOrdersResponse{Orders: toProtoList(orders), Total: total}, nil
}

func (s *Server) UpdateStatus(ctx context.Context, req *orderv1.UpdateStatusRequest) (*orderv1.OrderResponse, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	o, err := s.svc.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.OrderResponse{Order: ToProto(o)}, nil
}

func (s *Server) Stats(ctx context.Context, _ *rpc.Empty) (*orderv1.StatsResponse, error) {
	if _, err := rpc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	byStatus := make(map[string]int, len(st.ByStatus))
	for k, v := range st.ByStatus {
		byStatus[string(k)] = v
	}
	return &orderv1.StatsResponse{
		TotalOrders:  st.TotalOrders,
		Revenue:      st.Revenue.StringFixed(2),
		ByStatus:     byStatus,
		ProductCount: st.ProductCount,
	}, nil
}

func ToProto(o domain.Order) orderv1.Order {
	items := make([]orderv1.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderv1.OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
		})
	}
	return orderv1.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Total:         o.Total.StringFixed(2),
		Status:        string(o.Status),
		ShippingInfo:  o.ShippingInfo,
		PaymentInfo:   o.PaymentInfo,
		Items:         items,
		CreatedAtUnix: o.CreatedAt.Unix(),
		UpdatedAtUnix: o.UpdatedAt.Unix(),
	}
}

func toProtoList(orders []domain.Order) []orderv1.Order {
	out := make([]orderv1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToProto(o))
	}
	return out
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, app.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
