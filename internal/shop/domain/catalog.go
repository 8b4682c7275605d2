package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog is the immutable list of sellable products. It is safe for
// concurrent use because nothing mutates it after NewCatalog.
type Catalog struct {
	products []Product
	byID     map[string]int
}

func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Find(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// ProductFilter narrows the catalog the way the browse page does. Zero values
// disable the corresponding criterion.
type ProductFilter struct {
	Search      string
	Types       []string
	Regions     []string
	OrganicOnly bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

func (f ProductFilter) Match(p Product) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Farm), term) &&
			!strings.Contains(strings.ToLower(p.Type), term) {
			return false
		}
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, p.Type) {
		return false
	}
	if len(f.Regions) > 0 && !slices.Contains(f.Regions, p.Region) {
		return false
	}
	if f.OrganicOnly && !p.Organic {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Filter returns the matching products in catalog order.
func (c *Catalog) Filter(f ProductFilter) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
