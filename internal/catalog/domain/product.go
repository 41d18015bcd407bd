package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	Category    string
	Inventory   int
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows ListProducts. Zero values mean "no constraint".
type Filter struct {
	Category string
	Featured bool
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
