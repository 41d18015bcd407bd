package grpc

import (
	"context"
	"errors"

	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	ordergrpc "github.com/dwikikusuma/storefront/internal/order/grpc"
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

func (s *Server) Quote(ctx context.Context, _ *rpc.Empty) (*checkoutv1.QuoteResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	q, err := s.svc.Quote(ctx, p.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(q), nil
}

func (s *Server) PlaceOrder(ctx context.Context, req *checkoutv1.PlaceOrderRequest) (*orderv1.OrderResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	o, err := s.svc.PlaceOrder(ctx, p.UserID, req.ShippingInfo, req.PaymentInfo)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.OrderResponse{Order: ordergrpc.ToProto(o)}, nil
}

func toProto(q domain.Quote) *checkoutv1.QuoteResponse {
	lines := make([]checkoutv1.QuoteLine, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, checkoutv1.QuoteLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice.StringFixed(2),
			LineTotal: ln.LineTotal.StringFixed(2),
		})
	}

	return &checkoutv1.QuoteResponse{
		Lines: lines,
		Total: q.Total.StringFixed(2),
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, checkoutv1.ReasonEmptyCart)
	case errors.Is(err, app.ErrInsufficientInventory):
		return status.Error(codes.FailedPrecondition, checkoutv1.ReasonInsufficientInventory)
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, catalogapp.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
