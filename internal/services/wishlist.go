package services

import "bargainbay/internal/domain"

// Wishlist is a set of products keyed by id. Toggle is its own inverse.
type Wishlist struct {
	items []domain.Product
}

func NewWishlist() *Wishlist { return &Wishlist{} }

func (w *Wishlist) index(productID string) int {
	for i, p := range w.items {
		if string(p.ID) == productID {
			return i
		}
	}
	return -1
}

// Toggle adds p when absent, removes it when present, and reports membership afterwards.
func (w *Wishlist) Toggle(p domain.Product) bool {
	if i := w.index(string(p.ID)); i >= 0 {
		w.items = append(w.items[:i], w.items[i+1:]...)
		return false
	}
	w.items = append(w.items, p)
	return true
}

func (w *Wishlist) Contains(productID string) bool { return w.index(productID) >= 0 }

func (w *Wishlist) Items() []domain.Product {
	out := make([]domain.Product, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Len() int { return len(w.items) }

func (w *Wishlist) Clear() { w.items = nil }
