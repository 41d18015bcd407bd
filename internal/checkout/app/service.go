package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("authentication required")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

type Service struct {
	Cart    CartReader
	Catalog CatalogReader

	store         Store
	publisher     EventPublisher
	log           *slog.Logger
	maxConcurrent int
}

type Option func(*Service)

// WithPublisher announces committed orders through p.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, cart CartReader, catalog CatalogReader, maxConcurrent int, opts ...Option) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	s := &Service{
		Cart:          cart,
		Catalog:       catalog,
		store:         store,
		log:           slog.Default(),
		maxConcurrent: maxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder converts the user's cart into a PENDING order. The order, its
// items, the inventory decrements and the emptied cart are committed together
// or not at all.
func (s *Service) PlaceOrder(ctx context.Context, userID string, shipping, payment json.RawMessage) (orderdomain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return orderdomain.Order{}, ErrUnauthorized
	}
	if !present(shipping) || !present(payment) {
		return orderdomain.Order{}, fmt.Errorf("%w: shipping and payment info are required", ErrInvalidInput)
	}

	var placed orderdomain.Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		cartID, lines, err := tx.LockCart(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items := make([]orderdomain.OrderItem, 0, len(lines))
		for _, ln := range lines {
			if ln.Quantity > ln.Inventory {
				return fmt.Errorf("%w: product %s has %d left, %d requested",
					ErrInsufficientInventory, ln.ProductID, ln.Inventory, ln.Quantity)
			}
			items = append(items, orderdomain.OrderItem{
				ProductID: ln.ProductID,
				Name:      ln.Name,
				Quantity:  ln.Quantity,
				Price:     ln.Price,
			})
		}

		created, err := tx.CreateOrder(ctx, orderdomain.New(userID, shipping, payment, items))
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, ln := range lines {
			ok, err := tx.DecrementInventory(ctx, ln.ProductID, ln.Quantity)
			if err != nil {
				return fmt.Errorf("decrement inventory %s: %w", ln.ProductID, err)
			}
			if !ok {
				return fmt.Errorf("%w: product %s", ErrInsufficientInventory, ln.ProductID)
			}
		}

		if err := tx.ClearCart(ctx, cartID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		placed = created
		return nil
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", placed.ID),
		slog.String("user_id", userID),
		slog.String("total", placed.Total.StringFixed(2)),
		slog.Int("items", len(placed.Items)))

	s.publish(ctx, placed)
	return placed, nil
}

func (s *Service) publish(ctx context.Context, o orderdomain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderPlaced{
		OrderID:  o.ID,
		UserID:   o.UserID,
		Total:    o.Total.StringFixed(2),
		Items:    make([]domain.OrderPlacedItem, 0, len(o.Items)),
		PlacedAt: time.Now().UTC(),
	}
	for _, it := range o.Items {
		evt.Items = append(evt.Items, domain.OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
		})
	}
	if err := s.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		s.log.WarnContext(ctx, "publish order.placed failed",
			slog.String("order_id", o.ID), slog.Any("err", err))
	}
}

// present rejects missing, null and empty-object JSON.
func present(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || !json.Valid(b) {
		return false
	}
	switch string(b) {
	case "null", "{}", `""`:
		return false
	}
	return true
}

// Quote is a read-only preview of the user's cart at current prices.
func (s *Service) Quote(ctx context.Context, userID string) (domain.Quote, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Quote{}, ErrUnauthorized
	}

	items, err := s.Cart.GetCart(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}
