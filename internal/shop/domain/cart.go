package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	Product
	CartQuantity int `json:"cartQuantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.CartQuantity)))
}

// Cart keeps one line per product id in insertion order. Every line has
// CartQuantity >= 1; lowering a line to zero removes it.
type Cart struct {
	items []CartItem
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.items, func(i CartItem) bool { return i.ID == productID })
}

func (c *Cart) Add(p Product) {
	if i := c.index(p.ID); i >= 0 {
		c.items[i].CartQuantity++
		return
	}
	c.items = append(c.items, CartItem{Product: p, CartQuantity: 1})
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// SetQuantity overwrites the quantity of an existing line. A quantity below
// one removes the line. Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		c.items = slices.Delete(c.items, i, i+1)
		return
	}
	c.items[i].CartQuantity = quantity
}

func (c *Cart) Contains(productID string) bool {
	return c.index(productID) >= 0
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Items() []CartItem {
	return slices.Clone(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	return Total(c.items)
}

func (c *Cart) Clear() {
	c.items = nil
}

// Total sums price x quantity over the given lines.
func Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
