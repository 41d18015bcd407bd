package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dwikikusuma/storefront/internal/cartsync"
	"github.com/dwikikusuma/storefront/internal/cartsync/infra/localstore"
	"github.com/dwikikusuma/storefront/internal/cartsync/infra/remote"
	"github.com/dwikikusuma/storefront/pkg/config"
)

type shop struct {
	local  *localstore.Store
	client *remote.Client
	sync   *cartsync.Service
}

// openShop restores the saved session and picks the cart mode from it.
func openShop(ctx context.Context, cfg config.Config, log *slog.Logger) (*shop, error) {
	if err := os.MkdirAll(cfg.StorefrontHome, 0o700); err != nil {
		return nil, err
	}
	local, err := localstore.Open(ctx, filepath.Join(cfg.StorefrontHome, "local.db"), localstore.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	client, err := remote.NewClient(cfg.StorefrontURL)
	if err != nil {
		local.Close()
		return nil, err
	}

	sess, err := local.Session(ctx)
	if err != nil {
		local.Close()
		return nil, err
	}
	client.SetSession(sess)

	svc := cartsync.NewService(client, local, client, log)
	if sess != "" {
		svc.SetMode(cartsync.Authenticated)
	}
	return &shop{local: local, client: client, sync: svc}, nil
}

func (s *shop) Close() error { return s.local.Close() }

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runLogin(ctx context.Context, cfg config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		fs.PrintDefaults()
		return errors.New("email and password are required")
	}

	s, err := openShop(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	u, err := s.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := s.local.SaveSession(ctx, s.client.Session()); err != nil {
		return err
	}
	s.sync.SetMode(cartsync.Authenticated)
	fmt.Printf("Logged in as %s (%s).\n", u.Email, u.Role)
	return nil
}

func runLogout(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	s, err := openShop(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.client.Logout(ctx); err != nil {
		log.Warn("server logout failed, clearing local session anyway", slog.Any("err", err))
	}
	if err := s.local.ClearSession(ctx); err != nil {
		return err
	}
	s.sync.SetMode(cartsync.Anonymous)
	fmt.Println("Logged out.")
	return nil
}

func runCart(ctx context.Context, cfg config.Config, log *slog.Logger, args []string) error {
	if len(args) == 0 {
		return errors.New("expected view, add, update or remove")
	}

	fs := flag.NewFlagSet("cart "+args[0], flag.ExitOnError)
	product := fs.String("product", "", "Product id")
	item := fs.String("item", "", "Cart item id")
	qty := fs.Int("qty", 0, "Quantity")
	fs.Parse(args[1:])

	s, err := openShop(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	switch args[0] {
	case "view":
		c, err := s.sync.View(ctx)
		if err != nil {
			return err
		}
		return printJSON(c)
	case "add":
		if *product == "" {
			return errors.New("product is required")
		}
		c, err := s.sync.AddItem(ctx, *product, *qty)
		if err != nil {
			return err
		}
		return printJSON(c)
	case "update":
		if *item == "" {
			return errors.New("item is required")
		}
		c, err := s.sync.UpdateQuantity(ctx, *item, *qty)
		if err != nil {
			return err
		}
		return printJSON(c)
	case "remove":
		if *item == "" {
			return errors.New("item is required")
		}
		c, err := s.sync.RemoveItem(ctx, *item)
		if err != nil {
			return err
		}
		return printJSON(c)
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func runCheckout(ctx context.Context, cfg config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	shipping := fs.String("shipping", "", `Shipping info as JSON, e.g. {"name":"Ada","address":"..."}`)
	payment := fs.String("payment", "", `Payment info as JSON, e.g. {"method":"card"}`)
	fs.Parse(args)

	for name, v := range map[string]string{"shipping": *shipping, "payment": *payment} {
		if !json.Valid([]byte(v)) {
			return fmt.Errorf("%s must be valid JSON", name)
		}
	}

	s, err := openShop(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	o, err := s.sync.Checkout(ctx, json.RawMessage(*shipping), json.RawMessage(*payment))
	if errors.Is(err, cartsync.ErrUnauthorized) {
		return errors.New("log in before checking out")
	}
	if err != nil {
		return err
	}
	return printJSON(o)
}
