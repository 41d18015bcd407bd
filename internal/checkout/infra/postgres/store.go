package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"
	pg "github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store composes the cart, catalog and order repos on one *sql.Tx.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx app.Tx) error) error {
	return pg.ExecTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&txStore{
			tx:       tx,
			carts:    cartpg.NewCartRepo(tx),
			products: catalogpg.NewProductRepo(tx),
			orders:   orderpg.NewOrderRepo(tx),
		})
	})
}

type txStore struct {
	tx       *sql.Tx
	carts    *cartpg.CartRepo
	products *catalogpg.ProductRepo
	orders   *orderpg.OrderRepo
}

func (t *txStore) LockCart(ctx context.Context, userID string) (string, []domain.LockedLine, error) {
	cartID, err := t.carts.LockForUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, app.ErrEmptyCart
	}
	if err != nil {
		return "", nil, fmt.Errorf("lock cart: %w", err)
	}

	// Product rows are locked in id order so concurrent checkouts that share
	// products cannot deadlock. Lines are put back in cart order afterwards.
	rows, err := t.tx.QueryContext(ctx, `
		SELECT p.id, p.name, ci.quantity, p.price, p.inventory, ci.created_at, ci.id
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY p.id
		FOR UPDATE OF p`, cartID)
	if err != nil {
		return "", nil, fmt.Errorf("read cart lines: %w", err)
	}
	defer rows.Close()

	var locked []cartOrdered
	for rows.Next() {
		var (
			lo    cartOrdered
			pid   uuid.UUID
			price string
		)
		if err := rows.Scan(&pid, &lo.line.Name, &lo.line.Quantity, &price, &lo.line.Inventory, &lo.addedAt, &lo.itemID); err != nil {
			return "", nil, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return "", nil, fmt.Errorf("scan price: %w", err)
		}
		lo.line.ProductID = pid.String()
		lo.line.Price = d
		locked = append(locked, lo)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}
	return cartID, inCartOrder(locked), nil
}

type cartOrdered struct {
	line    domain.LockedLine
	addedAt time.Time
	itemID  string
}

func inCartOrder(locked []cartOrdered) []domain.LockedLine {
	slices.SortStableFunc(locked, func(a, b cartOrdered) int {
		if c := a.addedAt.Compare(b.addedAt); c != 0 {
			return c
		}
		return strings.Compare(a.itemID, b.itemID)
	})
	lines := make([]domain.LockedLine, 0, len(locked))
	for _, lo := range locked {
		lines = append(lines, lo.line)
	}
	return lines
}

func (t *txStore) CreateOrder(ctx context.Context, order orderdomain.Order) (orderdomain.Order, error) {
	return t.orders.Create(ctx, order)
}

func (t *txStore) DecrementInventory(ctx context.Context, productID string, qty int) (bool, error) {
	return t.products.DecrementInventory(ctx, productID, qty)
}

func (t *txStore) ClearCart(ctx context.Context, cartID string) error {
	return t.carts.ClearCart(ctx, cartID)
}
