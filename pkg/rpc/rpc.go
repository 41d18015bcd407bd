// Package rpc carries the storefront's gRPC services with a JSON codec,
// so message types are plain Go structs instead of generated protobufs.
package rpc

import (
	"context"
	"encoding/json"

	"github.com/dwikikusuma/storefront/pkg/authctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Method builds a unary MethodDesc for a handler on server type S.
func Method[S any, Req any, Resp any](service, name string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke performs a unary call using the JSON codec.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, service, name string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	if err := cc.Invoke(ctx, "/"+service+"/"+name, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Empty is the request or response of calls that carry no payload.
type Empty struct{}

// RequirePrincipal returns the caller or an Unauthenticated status.
func RequirePrincipal(ctx context.Context) (authctx.Principal, error) {
	p, ok := authctx.FromContext(ctx)
	if !ok {
		return authctx.Principal{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return p, nil
}

// RequireAdmin is RequirePrincipal plus a PermissionDenied status for non-admins.
func RequireAdmin(ctx context.Context) (authctx.Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return p, err
	}
	if !p.IsAdmin() {
		return authctx.Principal{}, status.Error(codes.PermissionDenied, "admin only")
	}
	return p, nil
}
