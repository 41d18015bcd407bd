package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/rpc"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeCatalog struct {
	CatalogClient
	lastList *catalogv1.ListProductsRequest
}

func (f *fakeCatalog) ListProducts(ctx context.Context, in *catalogv1.ListProductsRequest, _ ...grpc.CallOption) (*catalogv1.ListProductsResponse, error) {
	f.lastList = in
	return &catalogv1.ListProductsResponse{Products: []catalogv1.Product{{ID: "p1", Price: "10.00"}}}, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in *catalogv1.CreateProductRequest, _ ...grpc.CallOption) (*catalogv1.ProductResponse, error) {
	return &catalogv1.ProductResponse{Product: catalogv1.Product{ID: "new", Name: in.Input.Name}}, nil
}

type fakeCart struct {
	CartClient
	seen []authctx.Principal
}

func (f *fakeCart) GetCart(ctx context.Context, _ *rpc.Empty, _ ...grpc.CallOption) (*cartv1.CartResponse, error) {
	p, _ := authctx.FromContext(ctx)
	f.seen = append(f.seen, p)
	return &cartv1.CartResponse{Cart: cartv1.Cart{Items: []cartv1.CartItem{}, TotalPrice: "0.00"}}, nil
}

func (f *fakeCart) UpdateItem(ctx context.Context, in *cartv1.UpdateItemRequest, _ ...grpc.CallOption) (*cartv1.CartResponse, error) {
	if in.ItemID == "missing" {
		return nil, status.Error(codes.NotFound, "cart item missing: not found")
	}
	return &cartv1.CartResponse{}, nil
}

type fakeCheckout struct {
	CheckoutClient
	err error
}

func (f *fakeCheckout) PlaceOrder(ctx context.Context, in *checkoutv1.PlaceOrderRequest, _ ...grpc.CallOption) (*orderv1.OrderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &orderv1.OrderResponse{Order: orderv1.Order{ID: "o1", Total: "25.00", Status: "PENDING"}}, nil
}

type fakeOrders struct {
	OrderClient
}

func (fakeOrders) Stats(ctx context.Context, _ *rpc.Empty, _ ...grpc.CallOption) (*orderv1.StatsResponse, error) {
	return &orderv1.StatsResponse{TotalOrders: 3, Revenue: "30.00"}, nil
}

type fakeAccounts struct {
	AccountClient
	users map[string]accountv1.User // by email
}

func (f fakeAccounts) Authenticate(ctx context.Context, in *accountv1.AuthenticateRequest, _ ...grpc.CallOption) (*accountv1.UserResponse, error) {
	u, ok := f.users[in.Email]
	if !ok || in.Password != "password123" {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	return &accountv1.UserResponse{User: u}, nil
}

func (f fakeAccounts) GetUser(ctx context.Context, in *accountv1.GetUserRequest, _ ...grpc.CallOption) (*accountv1.UserResponse, error) {
	for _, u := range f.users {
		if u.ID == in.ID {
			return &accountv1.UserResponse{User: u}, nil
		}
	}
	return nil, status.Error(codes.NotFound, "user not found")
}

type testEnv struct {
	router   *gin.Engine
	catalog  *fakeCatalog
	cart     *fakeCart
	checkout *fakeCheckout
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{catalog: &fakeCatalog{}, cart: &fakeCart{}, checkout: &fakeCheckout{}}
	clients := Clients{
		Catalog:  env.catalog,
		Cart:     env.cart,
		Checkout: env.checkout,
		Order:    fakeOrders{},
		Account: fakeAccounts{users: map[string]accountv1.User{
			"ada@example.com":   {ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "USER"},
			"admin@example.com": {ID: "a1", Name: "Root", Email: "admin@example.com", Role: "ADMIN"},
		}},
	}
	store := NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), false)
	env.router = NewRouter(clients, store, logger.Discard(), nil)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCartRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error)
	assert.Empty(t, env.cart.seen)

	cookie := env.login(t, "ada@example.com")
	w = env.do(t, http.MethodGet, "/api/cart", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.cart.seen, 1)
	assert.Equal(t, authctx.Principal{UserID: "u1", Role: authctx.RoleUser}, env.cart.seen[0])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionAndLogout(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	cookie := env.login(t, "ada@example.com")
	w = env.do(t, http.MethodGet, "/api/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var sess SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "u1", sess.User.ID)

	w = env.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := env.login(t, "ada@example.com")
	w = env.do(t, http.MethodGet, "/api/admin/stats", "", user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodPost, "/api/products", `{"name":"Ring"}`, user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := env.login(t, "admin@example.com")
	w = env.do(t, http.MethodGet, "/api/admin/stats", "", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalOrders":3`)

	w = env.do(t, http.MethodPost, "/api/products", `{"name":"Ring"}`, admin)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListProductsForwardsFilters(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products?category=rings&featured=true&minPrice=5&limit=10&cursor=p9", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.catalog.lastList)
	assert.Equal(t, &catalogv1.ListProductsRequest{
		Category: "rings", Featured: true, MinPrice: "5", Limit: 10, Cursor: "p9",
	}, env.catalog.lastList)

	w = env.do(t, http.MethodGet, "/api/products?featured=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutErrors(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "ada@example.com")
	body := `{"shippingInfo":{"name":"Ada"},"paymentInfo":{"method":"card"}}`

	w := env.do(t, http.MethodPost, "/api/checkout", body, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"25.00"`)

	env.checkout.err = status.Error(codes.FailedPrecondition, checkoutv1.ReasonEmptyCart)
	w = env.do(t, http.MethodPost, "/api/checkout", body, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMPTY_CART", decodeError(t, w).Error)

	env.checkout.err = status.Error(codes.Internal, "pq: connection refused")
	w = env.do(t, http.MethodPost, "/api/checkout", body, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decodeError(t, w).Message)
}

func TestUpdateCartItemValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "ada@example.com")

	w := env.do(t, http.MethodPatch, "/api/cart/i1", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPatch, "/api/cart/i1", `{"quantity":0}`, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPatch, "/api/cart/missing", `{"quantity":2}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
