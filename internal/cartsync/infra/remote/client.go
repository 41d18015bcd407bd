// Package remote talks to the storefront HTTP gateway on behalf of the CLI.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	accountv1 "github.com/dwikikusuma/storefront/api/account/v1"
	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cartsync"
	"github.com/dwikikusuma/storefront/internal/gateway"
	"github.com/shopspring/decimal"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// SetSession restores a session cookie saved by a previous run.
func (c *Client) SetSession(value string) {
	if value == "" {
		return
	}
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: gateway.SessionName, Value: value, Path: "/"}})
}

// Session returns the current session cookie value, "" when there is none.
func (c *Client) Session() string {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == gateway.SessionName {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) Login(ctx context.Context, email, password string) (accountv1.User, error) {
	var out gateway.SessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", accountv1.AuthenticateRequest{Email: email, Password: password}, &out)
	if err != nil {
		return accountv1.User{}, err
	}
	if out.User == nil {
		return accountv1.User{}, errors.New("login: no user in response")
	}
	return *out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Cart(ctx context.Context) (cartv1.Cart, error) {
	var out cartv1.CartResponse
	err := c.do(ctx, http.MethodGet, "/api/cart", nil, &out)
	return out.Cart, err
}

func (c *Client) AddItem(ctx context.Context, productID string, quantity int) (cartv1.Cart, error) {
	var out cartv1.CartResponse
	err := c.do(ctx, http.MethodPost, "/api/cart", cartv1.AddItemRequest{ProductID: productID, Quantity: quantity}, &out)
	return out.Cart, err
}

func (c *Client) UpdateItem(ctx context.Context, itemID string, quantity int) (cartv1.Cart, error) {
	var out cartv1.CartResponse
	body := map[string]int{"quantity": quantity}
	err := c.do(ctx, http.MethodPatch, "/api/cart/"+url.PathEscape(itemID), body, &out)
	return out.Cart, err
}

func (c *Client) RemoveItem(ctx context.Context, itemID string) (cartv1.Cart, error) {
	var out cartv1.CartResponse
	err := c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(itemID), nil, &out)
	return out.Cart, err
}

func (c *Client) Checkout(ctx context.Context, shipping, payment json.RawMessage) (orderv1.Order, error) {
	var out orderv1.OrderResponse
	err := c.do(ctx, http.MethodPost, "/api/checkout", checkoutv1.PlaceOrderRequest{ShippingInfo: shipping, PaymentInfo: payment}, &out)
	return out.Order, err
}

// Products looks each id up in the public catalog. Unknown ids are skipped.
func (c *Client) Products(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		var resp catalogv1.ProductResponse
		err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &resp)
		if errors.Is(err, cartsync.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(resp.Product.Price)
		if err != nil {
			return nil, fmt.Errorf("product %s price %q: %w", id, resp.Product.Price, err)
		}
		out[id] = domain.Product{
			ID:        resp.Product.ID,
			Name:      resp.Product.Name,
			Price:     price,
			Images:    resp.Product.Images,
			Inventory: resp.Product.Inventory,
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	}
	return statusErr(method, path, resp.StatusCode, raw)
}

func statusErr(method, path string, code int, raw []byte) error {
	var e gateway.ErrorResponse
	_ = json.Unmarshal(raw, &e)
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	var kind error
	switch {
	case code == http.StatusUnauthorized:
		kind = cartsync.ErrUnauthorized
	case code == http.StatusNotFound:
		kind = cartsync.ErrNotFound
	case e.Error == "EMPTY_CART":
		kind = cartsync.ErrEmptyCart
	case e.Error == "INSUFFICIENT_INVENTORY":
		kind = cartsync.ErrInsufficientInventory
	default:
		return fmt.Errorf("%s %s: unexpected status code %d: %s", method, path, code, msg)
	}
	return fmt.Errorf("%s %s: %w: %s", method, path, kind, msg)
}
