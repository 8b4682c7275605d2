package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog(SeedProducts())

	p, ok := c.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Wildflower Honey", p.Name)
	assert.True(t, decimal.RequireFromString("12.99").Equal(p.Price))

	_, ok = c.Find("404")
	assert.False(t, ok)
}

func TestCatalog_ProductsIsACopy(t *testing.T) {
	c := NewCatalog(SeedProducts())
	products := c.Products()
	products[0].Name = "changed"

	p, _ := c.Find(products[0].ID)
	assert.Equal(t, "Wildflower Honey", p.Name)
}

func TestCatalog_Filter(t *testing.T) {
	c := NewCatalog(SeedProducts())
	minPrice := decimal.RequireFromString("15")
	maxPrice := decimal.RequireFromString("17")

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no criteria", ProductFilter{}, []string{"1", "2", "3", "4", "5", "6"}},
		{"search matches farm case-insensitively", ProductFilter{Search: "highland"}, []string{"5"}},
		{"search matches type", ProductFilter{Search: "jackfruit"}, []string{"6"}},
		{"types", ProductFilter{Types: []string{"Forest", "Cinnamon"}}, []string{"2", "3"}},
		{"regions", ProductFilter{Regions: []string{"Central Province"}}, []string{"1", "5"}},
		{"organic only", ProductFilter{OrganicOnly: true}, []string{"1", "2", "4", "5"}},
		{"price range", ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}, []string{"2", "4"}},
		{"nothing matches", ProductFilter{Search: "manuka"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Filter(tt.filter)))
		})
	}
}
