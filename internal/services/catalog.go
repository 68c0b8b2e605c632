package services

import (
	"slices"
	"strings"

	"bargainbay/internal/domain"
)

// AllCategories disables the category filter.
const AllCategories = "ALL"

const maxSuggestions = 8

type SortMode string

const (
	SortRelevant     SortMode = "RELEVANT"
	SortPriceLowHigh SortMode = "PRICE_LOW_HIGH"
	SortPriceHighLow SortMode = "PRICE_HIGH_LOW"
)

// ParseSortMode maps unknown or empty input to SortRelevant.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case SortPriceLowHigh, SortPriceHighLow:
		return m
	}
	return SortRelevant
}

func nameMatches(p domain.Product, lowerQ string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQ)
}

func categoryMatches(p domain.Product, category string) bool {
	if category == AllCategories {
		return true
	}
	return p.Category != "" && strings.EqualFold(p.Category, category)
}

// Query filters products by name substring and category, then orders them.
// The input slice is never modified; ties keep their input order.
func Query(products []domain.Product, search, category string, sort SortMode) []domain.Product {
	q := strings.ToLower(search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if nameMatches(p, q) && categoryMatches(p, category) {
			out = append(out, p)
		}
	}
	switch sort {
	case SortPriceLowHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHighLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	}
	return out
}

// Suggest returns up to 8 products whose name contains raw. Blank input yields none.
func Suggest(products []domain.Product, raw string) []domain.Product {
	if strings.TrimSpace(raw) == "" {
		return []domain.Product{}
	}
	q := strings.ToLower(raw)
	out := make([]domain.Product, 0, maxSuggestions)
	for _, p := range products {
		if len(out) == maxSuggestions {
			break
		}
		if nameMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct non-empty categories in first-seen order.
func Categories(products []domain.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p.Category)
	}
	return out
}

// SearchState is the search box, suggestion list, category filter and sort
// selection of one session.
type SearchState struct {
	Text        string
	Suggestions []domain.Product
	Category    string
	Sort        SortMode
}

func NewSearchState() SearchState {
	return SearchState{Category: AllCategories, Sort: SortRelevant, Suggestions: []domain.Product{}}
}

// SetText updates the search text and recomputes suggestions.
func (s *SearchState) SetText(raw string, products []domain.Product) {
	s.Text = raw
	s.Suggestions = Suggest(products, raw)
}

// Select adopts a suggestion's exact name and clears the suggestion list.
func (s *SearchState) Select(p domain.Product) {
	s.Text = p.Name
	s.Suggestions = []domain.Product{}
}

// SelectCategory switches the category filter and starts a fresh search.
func (s *SearchState) SelectCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	s.Category = category
	s.Text = ""
	s.Suggestions = []domain.Product{}
}

func (s *SearchState) SetSort(m SortMode) { s.Sort = m }

// Results evaluates the current state against products.
func (s SearchState) Results(products []domain.Product) []domain.Product {
	return Query(products, s.Text, s.Category, s.Sort)
}
