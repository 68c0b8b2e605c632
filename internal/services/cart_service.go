package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"bargainbay/internal/domain"
)

var ErrUnknownProduct = errors.New("product is not in the catalog")

type CartService struct {
	Coupons CouponBook
}

func NewCartService(coupons CouponBook) *CartService {
	return &CartService{Coupons: coupons}
}

type CartView struct {
	Lines    []domain.CartLine `json:"lines"`
	Count    int               `json:"count"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	Quote    Quote             `json:"quote"`
}

func (svc *CartService) view(s *Session) CartView {
	sub := s.Cart.Subtotal()
	count := 0
	for _, l := range s.Cart.lines {
		count += l.Qty
	}
	return CartView{Lines: s.Cart.Lines(), Count: count, Subtotal: sub, Quote: s.Coupon.Quote(sub)}
}

// Add puts one unit of a catalog product in the cart.
func (svc *CartService) Add(s *Session, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.product(productID)
	if !ok {
		return svc.view(s), ErrUnknownProduct
	}
	s.Cart.Add(p)
	return svc.view(s), nil
}

func (svc *CartService) ChangeQty(s *Session, productID string, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cart.ChangeQty(productID, delta)
	return svc.view(s)
}

func (svc *CartService) Remove(s *Session, productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cart.Remove(productID)
	return svc.view(s)
}

// ApplyCoupon returns the resulting view even on rejection, since an invalid
// code clears the previous discount.
func (svc *CartService) ApplyCoupon(s *Session, code string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.Coupon.Apply(svc.Coupons, code)
	return svc.view(s), err
}

func (svc *CartService) View(s *Session) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return svc.view(s)
}
