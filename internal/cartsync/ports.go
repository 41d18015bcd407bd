package cartsync

import (
	"context"
	"encoding/json"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// Remote is the server cart reached through the gateway. Implementations
// wrap ErrUnauthorized, ErrNotFound, ErrEmptyCart and
// ErrInsufficientInventory for the matching responses.
type Remote interface {
	Cart(ctx context.Context) (cartv1.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (cartv1.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (cartv1.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (cartv1.Cart, error)
	Checkout(ctx context.Context, shipping, payment json.RawMessage) (orderv1.Order, error)
}

// LocalStore persists the anonymous cart on this device. LoadCart returns
// an empty cart when nothing was saved yet.
type LocalStore interface {
	LoadCart(ctx context.Context) (domain.Cart, error)
	SaveCart(ctx context.Context, c domain.Cart) error
}

// Catalog prices the local cart. Unknown ids are absent from the result.
type Catalog interface {
	Products(ctx context.Context, ids []string) (map[string]domain.Product, error)
}
