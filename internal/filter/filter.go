package filter

import "github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"

// FilterProducts returns the products of snap matching every constraint in
// req, in catalog order. The result points into the snapshot and must be
// treated as read-only.
func FilterProducts(snap *catalog.Snapshot, req Request) []*catalog.Product {
	return Filter(snap.Products(), BuildPredicate(req))
}

// Filter applies pr to products.
func Filter(products []catalog.Product, pr Predicate) []*catalog.Product {
	out := make([]*catalog.Product, 0)
	for i := range products {
		if pr.Match(&products[i]) {
			out = append(out, &products[i])
		}
	}
	return out
}
