// Package client talks to the remote catalog/order/auth service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"bargainbay/internal/domain"
	"bargainbay/internal/services"
)

var (
	_ services.CatalogGateway = (*API)(nil)
	_ services.OrderGateway   = (*API)(nil)
	_ services.AuthGateway    = (*API)(nil)
)

// StatusError is a non-2xx answer from the remote service.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: remote status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: remote status %d: %s", e.Op, e.Code, e.Body)
}

// IsStatus reports whether err carries the given remote status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// API is a JSON-over-HTTP client. It never retries on its own.
type API struct {
	base string
	http *http.Client
}

func New(base string, timeout time.Duration) *API {
	return &API{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

const maxErrBody = 512

func (a *API) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.base+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rid := services.RequestID(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// an empty 2xx body leaves out untouched
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func (a *API) Login(ctx context.Context, email, password string) (domain.Credentials, error) {
	var c domain.Credentials
	err := a.do(ctx, "client.Login", http.MethodPost, "/auth/login", "",
		map[string]string{"email": email, "password": password}, &c)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code < 500 {
			return domain.Credentials{}, fmt.Errorf("%w (%d)", services.ErrBadCreds, se.Code)
		}
		return domain.Credentials{}, err
	}
	return c, nil
}

func (a *API) Register(ctx context.Context, name, email, password string) error {
	return a.do(ctx, "client.Register", http.MethodPost, "/auth/register", "",
		map[string]string{"name": name, "email": email, "password": password}, nil)
}

func (a *API) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var out []domain.Product
	if err := a.do(ctx, "client.ListProducts", http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) CreateProduct(ctx context.Context, token string, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := a.do(ctx, "client.CreateProduct", http.MethodPost, "/admin/products", token, in, &p)
	return p, err
}

func (a *API) DeleteProduct(ctx context.Context, token, productID string) error {
	return a.do(ctx, "client.DeleteProduct", http.MethodDelete,
		"/admin/products/"+url.PathEscape(productID), token, nil, nil)
}

func (a *API) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := a.do(ctx, "client.ListOrders", http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) PlaceOrder(ctx context.Context, token string, req domain.PlaceOrder) (domain.Order, error) {
	var o domain.Order
	err := a.do(ctx, "client.PlaceOrder", http.MethodPost, "/orders", token, req, &o)
	return o, err
}

func (a *API) CancelOrder(ctx context.Context, token, orderID string) error {
	return a.do(ctx, "client.CancelOrder", http.MethodPost,
		"/orders/"+url.PathEscape(orderID)+"/cancel", token, nil, nil)
}
