package grpc

import (
	"context"
	"errors"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	"github.com/dwikikusuma/storefront/internal/account/app"
	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server trusts its caller to be the gateway; Authenticate and GetUser
// back the gateway's session handling.
type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(ctx context.Context, req *accountv1.RegisterRequest) (*accountv1.UserResponse, error) {
	u, err := s.svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, mapErr(err)
	}
	return &accountv1.UserResponse{User: toProto(u)}, nil
}

func (s *Server) Authenticate(ctx context.Context, req *accountv1.AuthenticateRequest) (*accountv1.UserResponse, error) {
	u, err := s.svc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, mapErr(err)
	}
	return &accountv1.UserResponse{User: toProto(u)}, nil
}

// GetUser is limited to the caller's own record unless the caller is an admin.
func (s *Server) GetUser(ctx context.Context, req *accountv1.GetUserRequest) (*accountv1.UserResponse, error) {
	p, err := rpc.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if p.UserID != req.ID && !p.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "not your account")
	}
	u, err := s.svc.Get(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &accountv1.UserResponse{User: toProto(u)}, nil
}

func toProto(u domain.User) accountv1.User {
	return accountv1.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		CreatedAtUnix: u.CreatedAt.Unix(),
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
