package filter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// DefaultPageSize is the number of products per page.
const DefaultPageSize = 24

// SortProducts returns a sorted copy of products. Unknown or empty keys keep
// the input order. The sort is stable.
func SortProducts(products []*catalog.Product, key string) []*catalog.Product {
	out := make([]*catalog.Product, len(products))
	copy(out, products)

	var less func(a, b *catalog.Product) bool
	switch key {
	case SortRatingDesc:
		less = func(a, b *catalog.Product) bool { return a.Rating > b.Rating }
	case SortPriceAsc:
		less = func(a, b *catalog.Product) bool { return a.FinalPrice < b.FinalPrice }
	case SortPriceDesc:
		less = func(a, b *catalog.Product) bool { return a.FinalPrice > b.FinalPrice }
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.English)
		sign := 1
		if key == SortNameDesc {
			sign = -1
		}
		less = func(a, b *catalog.Product) bool {
			return sign*col.CompareString(a.Name, b.Name) < 0
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ValidSort reports whether key is a recognized sort key.
func ValidSort(key string) bool {
	switch key {
	case SortRatingDesc, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// Paginate returns page number page (1-based) of size items. Pages below 1
// are treated as 1; pages past the end are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	// Compare page indexes before multiplying so huge pages cannot wrap.
	if len(items) == 0 || page-1 > (len(items)-1)/size {
		return items[:0:0]
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns the number of pages needed for total items.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}
