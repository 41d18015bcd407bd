package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

const usage = `usage: storefront <command> [flags]

database commands:
  migrate                          apply schema migrations
  add-user -name -email -password [-role USER|ADMIN]
  seed -file products.yaml         create products from a YAML file

shop commands (via STOREFRONT_URL):
  login -email -password
  logout
  cart view
  cart add -product ID [-qty N]
  cart update -item ID -qty N
  cart remove -item ID
  checkout -shipping JSON -payment JSON
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront-cli",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Text:    true,
		Output:  os.Stderr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "migrate":
		err = runMigrate(ctx, cfg, log)
	case "add-user":
		err = runAddUser(ctx, cfg, log, args)
	case "seed":
		err = runSeed(ctx, cfg, log, args)
	case "login":
		err = runLogin(ctx, cfg, log, args)
	case "logout":
		err = runLogout(ctx, cfg, log)
	case "cart":
		err = runCart(ctx, cfg, log, args)
	case "checkout":
		err = runCheckout(ctx, cfg, log, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", slog.String("command", os.Args[1]), slog.Any("err", err))
		os.Exit(1)
	}
}
