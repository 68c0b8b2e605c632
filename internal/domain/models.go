package domain

import "github.com/shopspring/decimal"

// DefaultImage is shown for products the catalog service returns without an image.
const DefaultImage = "https://cdn-icons-png.flaticon.com/128/679/679922.png"

type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"` // empty = uncategorized
	ImageURL    string          `json:"imageUrl,omitempty"`
}

func (p Product) Image() string {
	if p.ImageURL == "" {
		return DefaultImage
	}
	return p.ImageURL
}

// ProductInput is the admin create-product payload.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

type CartLine struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// RatingRecord is the per-product aggregate. UserRating 0 means not rated yet.
type RatingRecord struct {
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
	UserRating int     `json:"userRating"`
}
