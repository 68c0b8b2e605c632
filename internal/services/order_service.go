package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
)

var (
	ErrMissingAddress   = errors.New("please enter delivery address")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrBadPaymentMethod = errors.New("payment method must be COD, UPI or CARD")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

type OrderService struct {
	Gateway OrderGateway
}

func NewOrderService(gw OrderGateway) *OrderService {
	return &OrderService{Gateway: gw}
}

// OrderView is an order joined with its timeline projection.
type OrderView struct {
	domain.Order
	Timeline  Timeline `json:"timeline"`
	CanCancel bool     `json:"canCancel"`
}

func views(orders []domain.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderView{Order: o, Timeline: Project(o.Status), CanCancel: CanCancel(o.Status)})
	}
	return out
}

// Checkout places an order for the cart. Input errors leave the session
// untouched; so does a remote failure, so the shopper can retry. On success
// the cart, coupon and checkout form are reset.
func (svc *OrderService) Checkout(ctx context.Context, s *Session, address string, method domain.PaymentMethod) (domain.Order, error) {
	const op = "OrderService.Checkout"

	s.mu.Lock()
	address = strings.TrimSpace(address)
	if method == "" {
		method = s.Payment
	}
	switch {
	case !s.Creds.LoggedIn():
		s.mu.Unlock()
		return domain.Order{}, ErrNotAuthenticated
	case address == "":
		s.mu.Unlock()
		return domain.Order{}, ErrMissingAddress
	case s.Cart.Len() == 0:
		s.mu.Unlock()
		return domain.Order{}, ErrEmptyCart
	case !method.Valid():
		s.mu.Unlock()
		return domain.Order{}, ErrBadPaymentMethod
	}
	s.Address, s.Payment = address, method
	token := s.Creds.Token
	req := domain.PlaceOrder{Items: s.Cart.OrderItems(), DeliveryAddress: address, PaymentMethod: method}
	s.mu.Unlock()

	o, err := svc.Gateway.PlaceOrder(ctx, token, req)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cart.Clear()
	s.Coupon.Clear()
	s.resetCheckout()
	return o, nil
}

// Load fetches the shopper's orders; stale responses are dropped with ErrStale.
func (svc *OrderService) Load(ctx context.Context, s *Session) ([]OrderView, error) {
	const op = "OrderService.Load"

	s.mu.Lock()
	if !s.Creds.LoggedIn() {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	token := s.Creds.Token
	ctx, tk := s.orderLoads.Begin(ctx)
	s.mu.Unlock()

	orders, err := svc.Gateway.ListOrders(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.orderLoads.Finish(tk) {
		applog.Info(nil, "orders.load.stale", map[string]any{"request_id": tk.ID, "sid": s.ID})
		return nil, ErrStale
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.Orders = orders
	return views(orders), nil
}

// Cancel sends the cancel command and re-derives state from a fresh order
// list rather than flipping the status locally.
func (svc *OrderService) Cancel(ctx context.Context, s *Session, orderID string) ([]OrderView, error) {
	const op = "OrderService.Cancel"

	s.mu.Lock()
	if !s.Creds.LoggedIn() {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	for _, o := range s.Orders {
		if string(o.ID) == orderID && !CanCancel(o.Status) {
			s.mu.Unlock()
			return nil, ErrAlreadyCancelled
		}
	}
	token := s.Creds.Token
	s.mu.Unlock()

	if err := svc.Gateway.CancelOrder(ctx, token, orderID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return svc.Load(ctx, s)
}

// Views projects the last accepted order snapshot.
func (svc *OrderService) Views(s *Session) []OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views(s.Orders)
}
