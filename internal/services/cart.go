package services

import (
	"github.com/shopspring/decimal"

	"bargainbay/internal/domain"
)

// Cart is the session's ledger of lines. A product appears at most once and a
// line never holds a quantity below 1. None of the operations fail.
type Cart struct {
	lines []domain.CartLine
}

func NewCart() *Cart { return &Cart{} }

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if string(l.Product.ID) == productID {
			return i
		}
	}
	return -1
}

// Add inserts p with quantity 1 or bumps an existing line by one.
func (c *Cart) Add(p domain.Product) {
	if i := c.index(string(p.ID)); i >= 0 {
		c.lines[i].Qty++
		return
	}
	c.lines = append(c.lines, domain.CartLine{Product: p, Qty: 1})
}

// ChangeQty applies delta to the line for productID and drops it when the
// quantity reaches zero or below. Unknown products are ignored.
func (c *Cart) ChangeQty(productID string, delta int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.lines[i].Qty += delta
	if c.lines[i].Qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Subtotal is the sum of price*qty over the current lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Lines returns a copy of the ledger in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Qty(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Qty
	}
	return 0
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Clear() { c.lines = nil }

// OrderItems converts the ledger into the place-order payload.
func (c *Cart) OrderItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, domain.OrderItem{ProductID: string(l.Product.ID), Quantity: l.Qty})
	}
	return items
}
