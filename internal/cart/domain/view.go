package domain

import "github.com/shopspring/decimal"

// Product is the slice of catalog data a cart view needs.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Images    []string
	Inventory int
}

type ViewItem struct {
	Line
	Product   Product
	LineTotal decimal.Decimal
}

// View is a cart priced against current catalog data.
type View struct {
	Items      []ViewItem
	ItemCount  int
	TotalPrice decimal.Decimal
	// Missing lists product ids of lines whose product no longer exists.
	Missing []string
}

// NewView prices lines with products. Lines without a product are left out
// of the totals and reported in Missing.
func NewView(lines []Line, products map[string]Product) View {
	v := View{
		Items:      make([]ViewItem, 0, len(lines)),
		TotalPrice: decimal.Zero,
	}
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			v.Missing = append(v.Missing, l.ProductID)
			continue
		}
		total := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		v.Items = append(v.Items, ViewItem{Line: l, Product: p, LineTotal: total})
		v.ItemCount += l.Quantity
		v.TotalPrice = v.TotalPrice.Add(total)
	}
	return v
}
