package services

import (
	"context"
	"errors"

	"bargainbay/internal/domain"
)

var (
	ErrNotAuthenticated = errors.New("login required")
	ErrForbidden        = errors.New("admin role required")
)

// CatalogGateway is the remote catalog service.
type CatalogGateway interface {
	ListProducts(ctx context.Context, token string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
}

// OrderGateway is the remote order service. Orders are only ever mutated there.
type OrderGateway interface {
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	PlaceOrder(ctx context.Context, token string, req domain.PlaceOrder) (domain.Order, error)
	CancelOrder(ctx context.Context, token, orderID string) error
}

// AuthGateway issues credentials; the engine never sees password hashes.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (domain.Credentials, error)
	Register(ctx context.Context, name, email, password string) error
}

// CredentialStore keeps a session's credentials across restarts.
type CredentialStore interface {
	Load(ctx context.Context, sessionID string) (domain.Credentials, error)
	Save(ctx context.Context, sessionID string, c domain.Credentials) error
	Clear(ctx context.Context, sessionID string) error
}
