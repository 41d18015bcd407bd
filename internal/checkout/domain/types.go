package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// LockedLine is a cart line read inside the checkout transaction together
// with the current state of its product.
type LockedLine struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Inventory int
}

// OrderPlaced is published once an order has been committed.
type OrderPlaced struct {
	OrderID  string            `json:"orderId"`
	UserID   string            `json:"userId"`
	Total    string            `json:"total"`
	Items    []OrderPlacedItem `json:"items"`
	PlacedAt time.Time         `json:"placedAt"`
}

type OrderPlacedItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}
