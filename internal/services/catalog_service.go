package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
)

var ErrInvalidProduct = errors.New("name and a non-negative price are required")

type CatalogService struct {
	Gateway CatalogGateway
}

func NewCatalogService(gw CatalogGateway) *CatalogService {
	return &CatalogService{Gateway: gw}
}

// Load fetches the product list. A newer Load on the same session cancels
// this one, and a response that lost the race is dropped with ErrStale.
func (svc *CatalogService) Load(ctx context.Context, s *Session) ([]domain.Product, error) {
	const op = "CatalogService.Load"

	s.mu.Lock()
	if !s.Creds.LoggedIn() {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	token := s.Creds.Token
	ctx, tk := s.productLoads.Begin(ctx)
	s.mu.Unlock()

	products, err := svc.Gateway.ListProducts(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.productLoads.Finish(tk) {
		applog.Info(nil, "catalog.load.stale", map[string]any{"request_id": tk.ID, "sid": s.ID})
		return nil, ErrStale
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	s.Products = products
	return products, nil
}

// EnsureLoaded fetches the catalog once per login; later calls are no-ops
// until the snapshot is dropped.
func (svc *CatalogService) EnsureLoaded(ctx context.Context, s *Session) error {
	s.mu.Lock()
	loaded := s.Products != nil
	s.mu.Unlock()
	if loaded {
		return nil
	}
	_, err := svc.Load(ctx, s)
	return err
}

// BrowseParams are the query inputs of the product grid. Empty fields keep
// the session's current selection.
type BrowseParams struct {
	Search   *string
	Category string
	Sort     string
}

// Browse updates the session's search state and evaluates it.
func (svc *CatalogService) Browse(s *Session, p BrowseParams) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Category != "" && !strings.EqualFold(p.Category, s.Search.Category) {
		s.Search.SelectCategory(p.Category)
	}
	if p.Search != nil {
		s.Search.Text = *p.Search
	}
	if p.Sort != "" {
		s.Search.SetSort(ParseSortMode(p.Sort))
	}
	return s.Search.Results(s.Products)
}

// Suggest feeds the autocomplete box.
func (svc *CatalogService) Suggest(s *Session, raw string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Search.SetText(raw, s.Products)
	return s.Search.Suggestions
}

// SelectSuggestion makes the product's name the active search text.
func (svc *CatalogService) SelectSuggestion(s *Session, productID string) (SearchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.product(productID)
	if !ok {
		return s.Search, ErrUnknownProduct
	}
	s.Search.Select(p)
	return s.Search, nil
}

func (svc *CatalogService) Categories(s *Session) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Categories(s.Products)
}

func (svc *CatalogService) Product(s *Session, productID string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product(productID)
}

func adminToken(s *Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Creds.LoggedIn() {
		return "", ErrNotAuthenticated
	}
	if !s.Creds.IsAdmin() {
		return "", ErrForbidden
	}
	return s.Creds.Token, nil
}

// Create asks the catalog service to add a product and reloads the list.
func (svc *CatalogService) Create(ctx context.Context, s *Session, in domain.ProductInput) (domain.Product, error) {
	const op = "CatalogService.Create"

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.IsNegative() {
		return domain.Product{}, ErrInvalidProduct
	}
	token, err := adminToken(s)
	if err != nil {
		return domain.Product{}, err
	}
	p, err := svc.Gateway.CreateProduct(ctx, token, in)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := svc.Load(ctx, s); err != nil && !errors.Is(err, ErrStale) {
		applog.Error(nil, "catalog.reload.fail", err, map[string]any{"sid": s.ID})
	}
	return p, nil
}

// Delete asks the catalog service to drop a product and reloads the list.
func (svc *CatalogService) Delete(ctx context.Context, s *Session, productID string) error {
	const op = "CatalogService.Delete"

	token, err := adminToken(s)
	if err != nil {
		return err
	}
	if err := svc.Gateway.DeleteProduct(ctx, token, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := svc.Load(ctx, s); err != nil && !errors.Is(err, ErrStale) {
		applog.Error(nil, "catalog.reload.fail", err, map[string]any{"sid": s.ID})
	}
	return nil
}
