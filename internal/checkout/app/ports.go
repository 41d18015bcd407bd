package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

// Store runs fn in one transaction: everything fn did through tx is
// committed when fn returns nil and rolled back otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	// LockCart locks the user's cart for the transaction and returns its
	// lines with current product data. ErrEmptyCart when there is no cart.
	LockCart(ctx context.Context, userID string) (cartID string, lines []domain.LockedLine, err error)
	CreateOrder(ctx context.Context, order orderdomain.Order) (orderdomain.Order, error)
	// DecrementInventory reports false when stock is short.
	DecrementInventory(ctx context.Context, productID string, qty int) (bool, error)
	ClearCart(ctx context.Context, cartID string) error
}

type CartReader interface {
	GetCart(ctx context.Context, userID string) ([]CartItem, error)
}

type CartItem struct {
	ProductID string
	Quantity  int
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt domain.OrderPlaced) error
}
