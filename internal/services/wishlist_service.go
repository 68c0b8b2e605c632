package services

import "bargainbay/internal/domain"

type WishlistService struct{}

func NewWishlistService() *WishlistService { return &WishlistService{} }

// Toggle flips membership of a catalog product and reports the new state.
func (svc *WishlistService) Toggle(s *Session, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Wishlist.Contains(productID) {
		// Still removable after the product left the catalog.
		return s.Wishlist.Toggle(domain.Product{ID: domain.ID(productID)}), nil
	}
	p, ok := s.product(productID)
	if !ok {
		return false, ErrUnknownProduct
	}
	return s.Wishlist.Toggle(p), nil
}

func (svc *WishlistService) List(s *Session) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Wishlist.Items()
}
