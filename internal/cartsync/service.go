// Package cartsync routes cart operations to the device-local cart or to
// the server cart depending on whether a session is active.
package cartsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
)

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrSyncFailed            = errors.New("sync failed")
)

type Mode int

const (
	Anonymous Mode = iota
	Authenticated
)

func (m Mode) String() string {
	if m == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Service struct {
	remote  Remote
	local   LocalStore
	catalog Catalog
	log     *slog.Logger

	mu   sync.Mutex
	mode Mode
}

func NewService(remote Remote, local LocalStore, catalog Catalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{remote: remote, local: local, catalog: catalog, log: log}
}

// SetMode follows session changes. The local cart is left untouched and is
// not merged into the server cart.
func (s *Service) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != m {
		s.log.Debug("cart mode changed", slog.String("from", s.mode.String()), slog.String("to", m.String()))
	}
	s.mode = m
}

func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// View returns the active cart. An Unauthorized answer from the server
// degrades to the local cart.
func (s *Service) View(ctx context.Context) (cartv1.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Authenticated {
		c, err := s.remote.Cart(ctx)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrUnauthorized) {
			return cartv1.Cart{}, syncErr(err)
		}
		s.log.WarnContext(ctx, "remote cart unauthorized, showing local cart")
	}
	return s.localView(ctx)
}

func (s *Service) AddItem(ctx context.Context, productID string, quantity int) (cartv1.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return cartv1.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Authenticated {
		c, err := s.remote.AddItem(ctx, productID, quantity)
		return c, mutationErr(err)
	}

	found, err := s.catalog.Products(ctx, []string{productID})
	if err != nil {
		return cartv1.Cart{}, syncErr(err)
	}
	if _, ok := found[productID]; !ok {
		return cartv1.Cart{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	return s.mutateLocal(ctx, func(c *domain.Cart) error {
		_, err := c.AddItem(productID, quantity)
		return err
	})
}

// UpdateQuantity replaces a line's quantity; quantity <= 0 removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) (cartv1.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Authenticated {
		c, err := s.remote.UpdateItem(ctx, itemID, quantity)
		return c, mutationErr(err)
	}
	return s.mutateLocal(ctx, func(c *domain.Cart) error {
		if err := c.UpdateQuantity(itemID, quantity); err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
			}
			return err
		}
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, itemID string) (cartv1.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Authenticated {
		c, err := s.remote.RemoveItem(ctx, itemID)
		return c, mutationErr(err)
	}
	return s.mutateLocal(ctx, func(c *domain.Cart) error {
		c.RemoveItem(itemID)
		return nil
	})
}

// Checkout places an order from the server cart. The local cart cannot be
// checked out.
func (s *Service) Checkout(ctx context.Context, shipping, payment json.RawMessage) (orderv1.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != Authenticated {
		return orderv1.Order{}, ErrUnauthorized
	}
	o, err := s.remote.Checkout(ctx, shipping, payment)
	if err != nil {
		return orderv1.Order{}, mutationErr(err)
	}
	return o, nil
}

// mutateLocal applies fn to a loaded copy and saves it before returning.
// Nothing is persisted when fn or the save fails.
func (s *Service) mutateLocal(ctx context.Context, fn func(c *domain.Cart) error) (cartv1.Cart, error) {
	c, err := s.local.LoadCart(ctx)
	if err != nil {
		return cartv1.Cart{}, syncErr(err)
	}
	if err := fn(&c); err != nil {
		return cartv1.Cart{}, err
	}
	if err := s.local.SaveCart(ctx, c); err != nil {
		return cartv1.Cart{}, syncErr(err)
	}
	return s.price(ctx, c)
}

func (s *Service) localView(ctx context.Context) (cartv1.Cart, error) {
	c, err := s.local.LoadCart(ctx)
	if err != nil {
		return cartv1.Cart{}, syncErr(err)
	}
	return s.price(ctx, c)
}

func (s *Service) price(ctx context.Context, c domain.Cart) (cartv1.Cart, error) {
	var products map[string]domain.Product
	if !c.IsEmpty() {
		var err error
		products, err = s.catalog.Products(ctx, c.ProductIDs())
		if err != nil {
			return cartv1.Cart{}, syncErr(err)
		}
	}
	v := domain.NewView(c.Lines, products)
	if len(v.Missing) > 0 {
		s.log.WarnContext(ctx, "local cart references missing products", slog.Any("product_ids", v.Missing))
	}
	return cartgrpc.ToProto(v), nil
}

func mutationErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInsufficientInventory):
		return err
	default:
		return syncErr(err)
	}
}

func syncErr(err error) error {
	if errors.Is(err, ErrSyncFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrSyncFailed, err)
}
