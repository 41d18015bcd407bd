package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Line is one product in a cart. Quantity is always >= 1.
type Line struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cart holds at most one line per product, in insertion order.
// UserID is empty for an anonymous device-local cart.
type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCart(userID string) Cart {
	now := time.Now().UTC()
	return Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ValidateQuantity(q int) error {
	if q < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// AddItem merges into the existing line for productID or appends a new one.
func (c *Cart) AddItem(productID string, quantity int) (Line, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return Line{}, err
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			c.touch()
			return c.Lines[i], nil
		}
	}

	line := Line{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	c.Lines = append(c.Lines, line)
	c.touch()
	return line, nil
}

// UpdateQuantity replaces the quantity of itemID. A quantity <= 0 removes
// the line and never fails.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return nil
	}

	for i := range c.Lines {
		if c.Lines[i].ID == itemID {
			c.Lines[i].Quantity = quantity
			c.touch()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem is a no-op for unknown ids.
func (c *Cart) RemoveItem(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.touch()
}

func (c *Cart) Find(itemID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ID == itemID {
			return l, true
		}
	}
	return Line{}, false
}

func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) touch() { c.UpdatedAt = time.Now().UTC() }
