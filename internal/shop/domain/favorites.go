package domain

import "slices"

// Favorites is a set of products keyed by id. Iteration follows insertion order.
type Favorites struct {
	products []Product
}

func (f *Favorites) Add(p Product) {
	if f.Contains(p.ID) {
		return
	}
	f.products = append(f.products, p)
}

func (f *Favorites) Remove(productID string) {
	f.products = slices.DeleteFunc(f.products, func(p Product) bool { return p.ID == productID })
}

func (f *Favorites) Contains(productID string) bool {
	return slices.ContainsFunc(f.products, func(p Product) bool { return p.ID == productID })
}

func (f *Favorites) Products() []Product {
	return slices.Clone(f.products)
}
