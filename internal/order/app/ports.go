package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo interface {
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// List returns one page of orders, newest first, and the total number of
	// orders matching status (nil means any).
	List(ctx context.Context, status *domain.Status, limit, offset int) ([]domain.Order, int, error)
	// UpdateStatus moves an order from one status to another and reports
	// false when the order is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) (bool, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}
