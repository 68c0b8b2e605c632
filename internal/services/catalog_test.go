package services_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bargainbay/internal/domain"
	"bargainbay/internal/services"
)

func prod(id, name, price, category string) domain.Product {
	return domain.Product{ID: domain.ID(id), Name: name, Price: decimal.RequireFromString(price), Category: category}
}

func shoes() []domain.Product {
	return []domain.Product{
		prod("p1", "Red Shoe", "10", "Fashion"),
		prod("p2", "Blue Shoe", "5", "fashion"),
		prod("p3", "Phone X", "499.99", "Mobiles"),
		prod("p4", "Mystery Box", "7.50", ""),
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p.ID))
	}
	return out
}

func TestQuery(t *testing.T) {
	ps := shoes()
	cases := []struct {
		name     string
		search   string
		category string
		sort     services.SortMode
		want     []string
	}{
		{"low to high", "shoe", services.AllCategories, services.SortPriceLowHigh, []string{"p2", "p1"}},
		{"high to low", "", services.AllCategories, services.SortPriceHighLow, []string{"p3", "p1", "p4", "p2"}},
		{"relevant keeps input order", "", services.AllCategories, services.SortRelevant, []string{"p1", "p2", "p3", "p4"}},
		{"category ignores case", "", "FASHION", services.SortRelevant, []string{"p1", "p2"}},
		{"uncategorized only under ALL", "box", "Fashion", services.SortRelevant, []string{}},
		{"empty category matches nothing", "", "", services.SortRelevant, []string{}},
		{"name is case-insensitive", "PHONE", services.AllCategories, services.SortRelevant, []string{"p3"}},
		{"no match", "zzz", services.AllCategories, services.SortRelevant, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.Query(ps, tc.search, tc.category, tc.sort)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Fatalf("Query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	ps := shoes()
	before := ids(ps)
	services.Query(ps, "", services.AllCategories, services.SortPriceLowHigh)
	assert.Equal(t, before, ids(ps))
}

func TestQueryStableOnEqualPrices(t *testing.T) {
	ps := []domain.Product{
		prod("a", "A", "5", "x"),
		prod("b", "B", "5", "x"),
		prod("c", "C", "1", "x"),
		prod("d", "D", "5", "x"),
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(services.Query(ps, "", services.AllCategories, services.SortPriceLowHigh)))
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(services.Query(ps, "", services.AllCategories, services.SortPriceHighLow)))
}

func TestSuggest(t *testing.T) {
	ps := shoes()
	assert.Empty(t, services.Suggest(ps, ""))
	assert.Empty(t, services.Suggest(ps, "   "))
	assert.Equal(t, []string{"p1", "p2"}, ids(services.Suggest(ps, "sHoE")))

	var many []domain.Product
	for i := 0; i < 12; i++ {
		many = append(many, prod(fmt.Sprint(i), fmt.Sprintf("Lamp %d", i), "1", "Home"))
	}
	got := services.Suggest(many, "lamp")
	require.Len(t, got, 8)
	assert.Equal(t, domain.ID("0"), got[0].ID)
	assert.Equal(t, domain.ID("7"), got[7].ID)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, services.SortPriceLowHigh, services.ParseSortMode("price_low_high"))
	assert.Equal(t, services.SortPriceHighLow, services.ParseSortMode(" PRICE_HIGH_LOW "))
	assert.Equal(t, services.SortRelevant, services.ParseSortMode("cheapest"))
	assert.Equal(t, services.SortRelevant, services.ParseSortMode(""))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Fashion", "Mobiles"}, services.Categories(shoes()))
	assert.Empty(t, services.Categories(nil))
}

func TestSearchState(t *testing.T) {
	ps := shoes()
	st := services.NewSearchState()
	assert.Equal(t, services.AllCategories, st.Category)
	assert.Equal(t, services.SortRelevant, st.Sort)

	st.SetText("shoe", ps)
	assert.Equal(t, []string{"p1", "p2"}, ids(st.Suggestions))

	st.Select(ps[1])
	assert.Equal(t, "Blue Shoe", st.Text)
	assert.Empty(t, st.Suggestions)
	assert.Equal(t, []string{"p2"}, ids(st.Results(ps)))

	st.SetText("sh", ps)
	st.SelectCategory("Mobiles")
	assert.Equal(t, "", st.Text)
	assert.Empty(t, st.Suggestions)
	assert.Equal(t, []string{"p3"}, ids(st.Results(ps)))

	st.SelectCategory("")
	assert.Equal(t, services.AllCategories, st.Category)

	st.SetSort(services.SortPriceHighLow)
	assert.Equal(t, []string{"p3", "p1", "p4", "p2"}, ids(st.Results(ps)))
}
