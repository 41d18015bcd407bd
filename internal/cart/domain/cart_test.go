package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemTwiceMergesQuantities(t *testing.T) {
	c := NewCart("")

	first, err := c.AddItem("p1", 2)
	require.NoError(t, err)
	second, err := c.AddItem("p1", 3)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, first.ID, second.ID)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart("")

	_, err := c.AddItem("p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = c.AddItem("p1", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	c := NewCart("")
	_, _ = c.AddItem("p1", 1)
	_, _ = c.AddItem("p2", 1)
	_, _ = c.AddItem("p1", 1)

	assert.Equal(t, []string{"p1", "p2"}, c.ProductIDs())
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	a := NewCart("")
	la, _ := a.AddItem("p1", 2)
	_, _ = a.AddItem("p2", 1)

	b := NewCart("")
	b.Lines = append(b.Lines, a.Lines...)

	require.NoError(t, a.UpdateQuantity(la.ID, 0))
	b.RemoveItem(la.ID)

	assert.Equal(t, b.Lines, a.Lines)
	assert.Equal(t, []string{"p2"}, a.ProductIDs())
}

func TestUpdateQuantityReplaces(t *testing.T) {
	c := NewCart("")
	l, _ := c.AddItem("p1", 2)

	require.NoError(t, c.UpdateQuantity(l.ID, 7))
	got, ok := c.Find(l.ID)
	require.True(t, ok)
	assert.Equal(t, 7, got.Quantity)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	c := NewCart("")

	assert.ErrorIs(t, c.UpdateQuantity("nope", 3), ErrItemNotFound)
	assert.NoError(t, c.UpdateQuantity("nope", 0))
}

func TestRemoveMissingItemIsNoop(t *testing.T) {
	c := NewCart("")
	_, _ = c.AddItem("p1", 1)
	before := append([]Line(nil), c.Lines...)

	c.RemoveItem("does-not-exist")

	assert.Equal(t, before, c.Lines)
}

func TestNewViewUsesCurrentPrices(t *testing.T) {
	c := NewCart("")
	_, _ = c.AddItem("p1", 2)
	_, _ = c.AddItem("p2", 1)

	products := map[string]Product{
		"p1": {ID: "p1", Price: decimal.NewFromInt(10)},
		"p2": {ID: "p2", Price: decimal.NewFromInt(5)},
	}
	v := NewView(c.Lines, products)
	assert.True(t, v.TotalPrice.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 3, v.ItemCount)

	products["p1"] = Product{ID: "p1", Price: decimal.RequireFromString("12.50")}
	v = NewView(c.Lines, products)
	assert.True(t, v.TotalPrice.Equal(decimal.NewFromInt(30)), v.TotalPrice.String())
}

func TestNewViewReportsMissingProducts(t *testing.T) {
	c := NewCart("")
	_, _ = c.AddItem("gone", 4)
	_, _ = c.AddItem("p2", 1)

	v := NewView(c.Lines, map[string]Product{"p2": {ID: "p2", Price: decimal.NewFromInt(5)}})

	assert.Equal(t, []string{"gone"}, v.Missing)
	assert.Len(t, v.Items, 1)
	assert.Equal(t, 1, v.ItemCount)
	assert.True(t, v.TotalPrice.Equal(decimal.NewFromInt(5)))
}

func TestNewViewEmpty(t *testing.T) {
	v := NewView(nil, nil)
	assert.Empty(t, v.Items)
	assert.Zero(t, v.ItemCount)
	assert.True(t, v.TotalPrice.IsZero())
}
