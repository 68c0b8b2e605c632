package services_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bargainbay/internal/domain"
	"bargainbay/internal/services"
)

func TestCartAddAndChangeQty(t *testing.T) {
	ps := shoes()
	c := services.NewCart()

	c.Add(ps[0])
	c.Add(ps[0])
	c.Add(ps[1])
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Qty("p1"))
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(25)))

	c.ChangeQty("p1", -1)
	assert.Equal(t, 1, c.Qty("p1"))
	c.ChangeQty("p1", -5)
	assert.Equal(t, 0, c.Qty("p1"))
	assert.Equal(t, 1, c.Len())

	c.ChangeQty("nope", 3)
	assert.Equal(t, 1, c.Len())

	c.Remove("p2")
	c.Remove("p2")
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCartAddCommutes(t *testing.T) {
	ps := shoes()
	a, b := services.NewCart(), services.NewCart()
	a.Add(ps[0])
	a.Add(ps[2])
	b.Add(ps[2])
	b.Add(ps[0])

	assert.True(t, a.Subtotal().Equal(b.Subtotal()))
	assert.Equal(t, a.Qty("p1"), b.Qty("p1"))
	assert.Equal(t, a.Qty("p3"), b.Qty("p3"))
}

func TestCartLinesIsACopy(t *testing.T) {
	c := services.NewCart()
	c.Add(shoes()[0])
	lines := c.Lines()
	lines[0].Qty = 99
	assert.Equal(t, 1, c.Qty("p1"))
}

func TestCartOrderItems(t *testing.T) {
	ps := shoes()
	c := services.NewCart()
	c.Add(ps[1])
	c.Add(ps[0])
	c.Add(ps[1])

	items := c.OrderItems()
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p1", items[1].ProductID)

	c.Clear()
	assert.Empty(t, c.OrderItems())
}

// Random operation sequences must keep one line per product, every quantity
// at least 1, and the subtotal equal to the sum over lines.
func TestCartRandomOps(t *testing.T) {
	ps := shoes()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		c := services.NewCart()
		model := map[domain.ID]int{}
		for step := 0; step < 40; step++ {
			p := ps[rng.Intn(len(ps))]
			switch rng.Intn(3) {
			case 0:
				c.Add(p)
				model[p.ID]++
			case 1:
				d := rng.Intn(7) - 3
				c.ChangeQty(string(p.ID), d)
				if q, ok := model[p.ID]; ok {
					if q+d <= 0 {
						delete(model, p.ID)
					} else {
						model[p.ID] = q + d
					}
				}
			case 2:
				c.Remove(string(p.ID))
				delete(model, p.ID)
			}

			want := decimal.Zero
			seen := map[domain.ID]bool{}
			for _, l := range c.Lines() {
				require.False(t, seen[l.Product.ID], "duplicate line %s", l.Product.ID)
				seen[l.Product.ID] = true
				require.GreaterOrEqual(t, l.Qty, 1)
				require.Equal(t, model[l.Product.ID], l.Qty)
				want = want.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
			}
			require.Equal(t, len(model), c.Len())
			require.True(t, want.Equal(c.Subtotal()), "subtotal %s != %s", c.Subtotal(), want)
		}
	}
}

func TestWishlistToggle(t *testing.T) {
	ps := shoes()
	w := services.NewWishlist()

	assert.True(t, w.Toggle(ps[0]))
	assert.True(t, w.Contains("p1"))
	assert.True(t, w.Toggle(ps[1]))
	assert.False(t, w.Toggle(ps[0]))
	assert.False(t, w.Contains("p1"))
	assert.Equal(t, []string{"p2"}, ids(w.Items()))

	// toggling twice is a no-op
	before := ids(w.Items())
	w.Toggle(ps[2])
	w.Toggle(ps[2])
	assert.Equal(t, before, ids(w.Items()))

	w.Clear()
	assert.Equal(t, 0, w.Len())
}
