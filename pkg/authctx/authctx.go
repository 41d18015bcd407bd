// Package authctx carries the authenticated principal of a request
// through context.Context and across the gateway → API gRPC hop.
package authctx

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext reports the principal, or false when the caller is anonymous.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}
	return p, true
}

const (
	mdUserID = "x-user-id"
	mdRole   = "x-user-role"
)

// UnaryClientInterceptor forwards the principal in ctx as outgoing metadata.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if p, ok := FromContext(ctx); ok {
			ctx = metadata.AppendToOutgoingContext(ctx, mdUserID, p.UserID, mdRole, string(p.Role))
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// UnaryServerInterceptor restores the principal from incoming metadata.
// The API process trusts the gateway; it must not be exposed publicly.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			ids := md.Get(mdUserID)
			roles := md.Get(mdRole)
			if len(ids) > 0 && ids[0] != "" {
				p := Principal{UserID: ids[0], Role: RoleUser}
				if len(roles) > 0 && Role(roles[0]).Valid() {
					p.Role = Role(roles[0])
				}
				ctx = WithPrincipal(ctx, p)
			}
		}
		return handler(ctx, req)
	}
}
