package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var AllStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

var ErrUnknownStatus = errors.New("unknown order status")

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// next holds the forward step of each non-terminal status. CANCELLED is
// reachable from every non-terminal status.
var next = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

func (s Status) CanTransitionTo(to Status) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[s] == to
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Quantity  int
	// Price is the unit price at the time of purchase.
	Price decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID           string
	UserID       string
	Total        decimal.Decimal
	Status       Status
	ShippingInfo json.RawMessage
	PaymentInfo  json.RawMessage
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New builds a PENDING order whose total is the sum of its line totals.
func New(userID string, shipping, payment json.RawMessage, items []OrderItem) Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return Order{
		UserID:       userID,
		Total:        total,
		Status:       StatusPending,
		ShippingInfo: shipping,
		PaymentInfo:  payment,
		Items:        items,
	}
}

type Stats struct {
	TotalOrders int
	// Revenue sums totals of orders that are not CANCELLED.
	Revenue      decimal.Decimal
	ByStatus     map[Status]int
	ProductCount int
}
