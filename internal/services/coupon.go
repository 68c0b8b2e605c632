package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingCode   = errors.New("enter a coupon code")
	ErrInvalidCoupon = errors.New("invalid coupon code")
)

var hundred = decimal.NewFromInt(100)

// CouponBook maps normalized coupon codes to a discount percentage.
type CouponBook struct {
	percent map[string]int
}

// DefaultCoupons is the reference policy.
var DefaultCoupons = map[string]int{"SAVE10": 10, "SAVE20": 20}

// NewCouponBook normalizes codes and rejects percentages outside 0..100.
func NewCouponBook(table map[string]int) (CouponBook, error) {
	b := CouponBook{percent: make(map[string]int, len(table))}
	for code, pct := range table {
		n := NormalizeCode(code)
		if n == "" {
			return CouponBook{}, errors.New("coupon book: empty code")
		}
		if pct < 0 || pct > 100 {
			return CouponBook{}, fmt.Errorf("coupon book: %s: percent %d out of range", n, pct)
		}
		b.percent[n] = pct
	}
	return b, nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup expects a normalized code.
func (b CouponBook) Lookup(code string) (int, bool) {
	pct, ok := b.percent[code]
	return pct, ok
}

// CouponState is the single applied coupon of a session. Zero value = none.
type CouponState struct {
	Code    string
	Percent int
}

// Apply resolves code against book. A blank code leaves the state untouched;
// an unknown code clears any previously applied coupon.
func (s *CouponState) Apply(book CouponBook, code string) error {
	n := NormalizeCode(code)
	if n == "" {
		return ErrMissingCode
	}
	pct, ok := book.Lookup(n)
	if !ok {
		s.Clear()
		return ErrInvalidCoupon
	}
	s.Code, s.Percent = n, pct
	return nil
}

func (s *CouponState) Clear() { *s = CouponState{} }

// Quote is the pricing breakdown of a subtotal under the applied coupon.
type Quote struct {
	Code     string          `json:"code,omitempty"`
	Percent  int             `json:"discountPercent"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Final    decimal.Decimal `json:"finalAmount"`
}

// Quote computes final = subtotal * (1 - percent/100), rounded to cents.
func (s CouponState) Quote(subtotal decimal.Decimal) Quote {
	factor := hundred.Sub(decimal.NewFromInt(int64(s.Percent))).Div(hundred)
	final := subtotal.Mul(factor).Round(2)
	return Quote{
		Code:     s.Code,
		Percent:  s.Percent,
		Subtotal: subtotal,
		Discount: subtotal.Sub(final),
		Final:    final,
	}
}
