package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"
	"testing"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProduct struct {
	name      string
	price     decimal.Decimal
	inventory int
}

type memLine struct {
	productID string
	quantity  int
}

type memState struct {
	carts    map[string][]memLine // by user id
	products map[string]memProduct
	orders   []orderdomain.Order
}

func (s memState) clone() memState {
	out := memState{
		carts:    make(map[string][]memLine, len(s.carts)),
		products: maps.Clone(s.products),
		orders:   append([]orderdomain.Order(nil), s.orders...),
	}
	for k, v := range s.carts {
		out.carts[k] = append([]memLine(nil), v...)
	}
	return out
}

// memStore commits a working copy of its state only when fn succeeds.
type memStore struct {
	mu     sync.Mutex
	state  memState
	failOn string
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(&memTx{st: &work, failOn: m.failOn}); err != nil {
		return err
	}
	m.state = work
	return nil
}

type memTx struct {
	st     *memState
	failOn string
}

var errInjected = errors.New("injected failure")

func (t *memTx) LockCart(ctx context.Context, userID string) (string, []domain.LockedLine, error) {
	lines, ok := t.st.carts[userID]
	if !ok {
		return "", nil, ErrEmptyCart
	}
	out := make([]domain.LockedLine, 0, len(lines))
	for _, l := range lines {
		p := t.st.products[l.productID]
		out = append(out, domain.LockedLine{
			ProductID: l.productID, Name: p.name, Quantity: l.quantity, Price: p.price, Inventory: p.inventory,
		})
	}
	return userID, out, nil
}

func (t *memTx) CreateOrder(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	if t.failOn == "order" {
		return orderdomain.Order{}, errInjected
	}
	o.ID = fmt.Sprintf("order-%d", len(t.st.orders)+1)
	t.st.orders = append(t.st.orders, o)
	return o, nil
}

func (t *memTx) DecrementInventory(ctx context.Context, productID string, qty int) (bool, error) {
	p, ok := t.st.products[productID]
	if !ok || p.inventory < qty {
		return false, nil
	}
	p.inventory -= qty
	t.st.products[productID] = p
	return true, nil
}

func (t *memTx) ClearCart(ctx context.Context, cartID string) error {
	if t.failOn == "clear" {
		return errInjected
	}
	t.st.carts[cartID] = []memLine{}
	return nil
}

type recordingPublisher struct {
	events []domain.OrderPlaced
	err    error
}

func (r *recordingPublisher) PublishOrderPlaced(ctx context.Context, evt domain.OrderPlaced) error {
	r.events = append(r.events, evt)
	return r.err
}

var (
	shipping = json.RawMessage(`{"name":"Ada","address":"1 Loop Rd"}`)
	payment  = json.RawMessage(`{"method":"card","last4":"4242"}`)
)

func seededStore() *memStore {
	return &memStore{state: memState{
		carts: map[string][]memLine{
			"u1": {{productID: "p1", quantity: 2}, {productID: "p2", quantity: 1}},
			"u2": {},
		},
		products: map[string]memProduct{
			"p1": {name: "Ring", price: decimal.NewFromInt(10), inventory: 5},
			"p2": {name: "Chain", price: decimal.NewFromInt(5), inventory: 3},
		},
	}}
}

func newCheckout(store Store, opts ...Option) *Service {
	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	return NewService(store, nil, nil, 4, opts...)
}

func TestPlaceOrderFreezesPricesAndEmptiesCart(t *testing.T) {
	store := seededStore()
	pub := &recordingPublisher{}
	svc := newCheckout(store, WithPublisher(pub))

	o, err := svc.PlaceOrder(context.Background(), "u1", shipping, payment)
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(decimal.NewFromInt(25)), o.Total.String())
	assert.Equal(t, orderdomain.StatusPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, o.Items[1].Price.Equal(decimal.NewFromInt(5)))

	assert.Empty(t, store.state.carts["u1"])
	assert.Equal(t, 3, store.state.products["p1"].inventory)
	assert.Equal(t, 2, store.state.products["p2"].inventory)
	assert.Len(t, store.state.orders, 1)

	require.Len(t, pub.events, 1)
	assert.Equal(t, o.ID, pub.events[0].OrderID)
	assert.Equal(t, "25.00", pub.events[0].Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := seededStore()
	svc := newCheckout(store)

	_, err := svc.PlaceOrder(context.Background(), "u2", shipping, payment)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.PlaceOrder(context.Background(), "no-cart", shipping, payment)
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.Empty(t, store.state.orders)
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	for _, step := range []string{"order", "clear"} {
		t.Run(step, func(t *testing.T) {
			store := seededStore()
			store.failOn = step
			pub := &recordingPublisher{}
			svc := newCheckout(store, WithPublisher(pub))

			_, err := svc.PlaceOrder(context.Background(), "u1", shipping, payment)
			require.ErrorIs(t, err, errInjected)

			assert.Empty(t, store.state.orders)
			assert.Len(t, store.state.carts["u1"], 2)
			assert.Equal(t, 5, store.state.products["p1"].inventory)
			assert.Equal(t, 3, store.state.products["p2"].inventory)
			assert.Empty(t, pub.events)
		})
	}
}

func TestPlaceOrderRejectsOversell(t *testing.T) {
	store := seededStore()
	store.state.carts["u1"] = []memLine{{productID: "p1", quantity: 1}, {productID: "p2", quantity: 4}}
	svc := newCheckout(store)

	_, err := svc.PlaceOrder(context.Background(), "u1", shipping, payment)
	require.ErrorIs(t, err, ErrInsufficientInventory)

	assert.Empty(t, store.state.orders)
	assert.Equal(t, 5, store.state.products["p1"].inventory)
	assert.Len(t, store.state.carts["u1"], 2)
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	svc := newCheckout(seededStore())
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "", shipping, payment)
	assert.ErrorIs(t, err, ErrUnauthorized)

	for _, bad := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(` {} `), json.RawMessage(`{`)} {
		_, err = svc.PlaceOrder(ctx, "u1", bad, payment)
		assert.ErrorIs(t, err, ErrInvalidInput, string(bad))
	}
	_, err = svc.PlaceOrder(ctx, "u1", shipping, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrderPublishFailureKeepsOrder(t *testing.T) {
	store := seededStore()
	svc := newCheckout(store, WithPublisher(&recordingPublisher{err: errors.New("broker down")}))

	_, err := svc.PlaceOrder(context.Background(), "u1", shipping, payment)
	require.NoError(t, err)
	assert.Len(t, store.state.orders, 1)
}

func TestPlaceOrderConcurrentSameUser(t *testing.T) {
	store := seededStore()
	svc := newCheckout(store)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		empty   int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), "u1", shipping, payment)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrEmptyCart):
				empty++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 7, empty)
	assert.Equal(t, 3, store.state.products["p1"].inventory)
}
