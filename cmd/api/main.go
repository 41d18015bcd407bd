package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountgrpc "github.com/dwikikusuma/storefront/internal/account/grpc"
	accountpg "github.com/dwikikusuma/storefront/internal/account/infra/postgres"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/storefront/internal/catalog/grpc"
	cpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/storefront/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	checkoutpg "github.com/dwikikusuma/storefront/internal/checkout/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/rabbitmq"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	ordergrpc "github.com/dwikikusuma/storefront/internal/order/grpc"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"

	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"google.golang.org/grpc"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped", slog.Any("err", err))
		cancel()
		os.Exit(1)
	}
	log.Info("bye")
}

// run serves until ctx is cancelled. Every resource it opens is closed
// before it returns.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := postgres.Open(postgres.Config{
		Host: cfg.Postgres.Host,
		Port: cfg.Postgres.Port,
		User: cfg.Postgres.User,
		Pass: cfg.Postgres.Pass,
		DB:   cfg.Postgres.DB,
	})
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Catalog
	catalogRepo := cpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart
	cartRepo := cartpg.NewCartRepo(db)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc), log)

	// Orders
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db), catalogRepo)

	// Accounts
	accountSvc := accountapp.NewService(accountpg.NewUserRepo(db))

	// Checkout
	opts := []checkoutapp.Option{checkoutapp.WithLogger(log)}
	if cfg.RabbitMQURL != "" {
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, log)
		if err != nil {
			return fmt.Errorf("rabbitmq unavailable: %w", err)
		}
		defer pool.Close()
		opts = append(opts, checkoutapp.WithPublisher(rabbitmq.NewPublisher(pool, cfg.RabbitMQQueue)))
	} else {
		log.Info("RABBITMQ_URL not set, order events disabled")
	}
	checkoutSvc := checkoutapp.NewService(
		checkoutpg.NewStore(db),
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		cfg.CheckoutMaxConcurrent,
		opts...,
	)

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		authctx.UnaryServerInterceptor(),
		loggingInterceptor(log),
	))
	catalogv1.RegisterCatalogServiceServer(grpcServer, cgrpc.NewServer(catalogSvc))
	cartv1.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(cartSvc))
	checkoutv1.RegisterCheckoutServiceServer(grpcServer, checkoutgrpc.NewServer(checkoutSvc))
	orderv1.RegisterOrderServiceServer(grpcServer, ordergrpc.NewServer(orderSvc))
	accountv1.RegisterAccountServiceServer(grpcServer, accountgrpc.NewServer(accountSvc))

	var (
		wg       sync.WaitGroup
		serveErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("grpc starting", slog.String("addr", addr))
		if err := grpcServer.Serve(lis); err != nil {
			serveErr = fmt.Errorf("grpc serve: %w", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopCtx.Done():
		log.Warn("graceful stop timeout, forcing stop")
		grpcServer.Stop()
	case <-stopped:
	}

	wg.Wait()
	return serveErr
}
