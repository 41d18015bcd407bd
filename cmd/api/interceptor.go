package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/pkg/authctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func loggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("duration", time.Since(start)),
		}
		if p, ok := authctx.FromContext(ctx); ok {
			attrs = append(attrs, slog.String("user_id", p.UserID))
		}
		if err != nil && status.Code(err) == codes.Internal {
			log.ErrorContext(ctx, "rpc failed", append(attrs, slog.Any("err", err))...)
		} else {
			log.DebugContext(ctx, "rpc", attrs...)
		}
		return resp, err
	}
}
