package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bargainbay/internal/services"
)

func book(t *testing.T) services.CouponBook {
	t.Helper()
	b, err := services.NewCouponBook(services.DefaultCoupons)
	require.NoError(t, err)
	return b
}

func TestCouponApply(t *testing.T) {
	b := book(t)
	var st services.CouponState

	require.NoError(t, st.Apply(b, " save10 "))
	assert.Equal(t, "SAVE10", st.Code)
	assert.Equal(t, 10, st.Percent)

	q := st.Quote(decimal.NewFromInt(100))
	assert.True(t, q.Final.Equal(decimal.RequireFromString("90.00")))
	assert.True(t, q.Discount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 10, q.Percent)
}

func TestCouponBlankKeepsState(t *testing.T) {
	b := book(t)
	var st services.CouponState
	require.NoError(t, st.Apply(b, "SAVE20"))

	require.ErrorIs(t, st.Apply(b, "  "), services.ErrMissingCode)
	assert.Equal(t, "SAVE20", st.Code)
}

func TestCouponUnknownClears(t *testing.T) {
	b := book(t)
	var st services.CouponState
	require.NoError(t, st.Apply(b, "SAVE20"))

	require.ErrorIs(t, st.Apply(b, "BOGUS"), services.ErrInvalidCoupon)
	assert.Equal(t, services.CouponState{}, st)
	q := st.Quote(decimal.NewFromInt(100))
	assert.True(t, q.Final.Equal(decimal.NewFromInt(100)))
	assert.True(t, q.Discount.IsZero())
}

func TestQuoteRoundsToCents(t *testing.T) {
	st := services.CouponState{Code: "X", Percent: 15}
	q := st.Quote(decimal.RequireFromString("19.99"))
	// 19.99 * 0.85 = 16.9915
	assert.Equal(t, "16.99", q.Final.StringFixed(2))
	assert.Equal(t, "3.00", q.Discount.StringFixed(2))
}

func TestNewCouponBook(t *testing.T) {
	b, err := services.NewCouponBook(map[string]int{" welcome5 ": 5, "FREE": 100})
	require.NoError(t, err)
	pct, ok := b.Lookup("WELCOME5")
	assert.True(t, ok)
	assert.Equal(t, 5, pct)

	_, err = services.NewCouponBook(map[string]int{"BAD": 120})
	require.Error(t, err)
	_, err = services.NewCouponBook(map[string]int{"NEG": -1})
	require.Error(t, err)
	_, err = services.NewCouponBook(map[string]int{"  ": 10})
	require.Error(t, err)
}
