package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	// GetOrCreate returns the user's cart with its lines, creating an empty
	// one on first use. Concurrent calls for one user yield the same cart.
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)
	// AddItem inserts a line or increments the existing one for the product.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity reports false when itemID is not a line of cartID.
	SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (bool, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	ClearCart(ctx context.Context, cartID string) error
}

// ProductReader returns the products that exist among ids, keyed by id.
type ProductReader interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
}
