package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountpg "github.com/dwikikusuma/storefront/internal/account/infra/postgres"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func openDB(ctx context.Context, cfg config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := postgres.Open(postgres.Config{
		Host: cfg.Postgres.Host,
		Port: cfg.Postgres.Port,
		User: cfg.Postgres.User,
		Pass: cfg.Postgres.Pass,
		DB:   cfg.Postgres.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Ensure tables exist if running the cli before the api
	if err := postgres.Migrate(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrate(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	fmt.Println("migrations applied")
	return nil
}

func runAddUser(ctx context.Context, cfg config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)
	name := fs.String("name", "", "Display name for the new user")
	email := fs.String("email", "", "Email for the new user")
	password := fs.String("password", "", "Password for the new user")
	role := fs.String("role", string(authctx.RoleUser), "USER or ADMIN")
	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		fs.PrintDefaults()
		return errors.New("name, email and password are required")
	}
	r := authctx.Role(strings.ToUpper(*role))
	if !r.Valid() {
		return fmt.Errorf("unknown role %q", *role)
	}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := accountapp.NewService(accountpg.NewUserRepo(db)).CreateUser(ctx, *name, *email, *password, r)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Printf("User '%s' (%s) created with id %s.\n", u.Email, u.Role, u.ID)
	return nil
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Images      []string `yaml:"images"`
	Category    string   `yaml:"category"`
	Inventory   int      `yaml:"inventory"`
	Featured    bool     `yaml:"featured"`
}

func parseSeed(r io.Reader) ([]catalogapp.ProductInput, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	out := make([]catalogapp.ProductInput, 0, len(f.Products))
	for i, p := range f.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): price %q: %w", i, p.Name, p.Price, err)
		}
		out = append(out, catalogapp.ProductInput{
			Name:        p.Name,
			Description: p.Description,
			Price:       price,
			Images:      p.Images,
			Category:    p.Category,
			Inventory:   p.Inventory,
			Featured:    p.Featured,
		})
	}
	return out, nil
}

func runSeed(ctx context.Context, cfg config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	path := fs.String("file", "", "YAML file with a top-level products list")
	fs.Parse(args)
	if *path == "" {
		fs.PrintDefaults()
		return errors.New("file is required")
	}

	fh, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer fh.Close()

	inputs, err := parseSeed(fh)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := catalogapp.NewService(cpg.NewProductRepo(db))
	for _, in := range inputs {
		p, err := svc.CreateProduct(ctx, in)
		if err != nil {
			return fmt.Errorf("create %q: %w", in.Name, err)
		}
		log.Info("product created", slog.String("id", p.ID), slog.String("name", p.Name))
	}
	fmt.Printf("%d products created.\n", len(inputs))
	return nil
}
