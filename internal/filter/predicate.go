package filter

import (
	"math"
	"sort"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// DimensionKind identifies a filter dimension.
type DimensionKind int

const (
	DimSubcategory DimensionKind = iota
	DimSubsubcategory
	DimSubsubcategories
	DimBrands
	DimPrice
	DimRating
	DimCharacteristic
)

func (k DimensionKind) String() string {
	switch k {
	case DimSubcategory:
		return "subcategory"
	case DimSubsubcategory:
		return "subsubcategory"
	case DimSubsubcategories:
		return "subsubcategories"
	case DimBrands:
		return "brands"
	case DimPrice:
		return "price"
	case DimRating:
		return "rating"
	case DimCharacteristic:
		return "characteristic"
	default:
		return "unknown"
	}
}

// Dimension is one constraint of a predicate. Slug is set for
// characteristic dimensions only.
type Dimension struct {
	Kind DimensionKind
	Slug string
}

type idSet map[int64]struct{}

func newIDSet(ids []int64) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

type clause struct {
	dim   Dimension
	match func(p *catalog.Product) bool
}

// Predicate is a compiled request: a conjunction of independent clauses,
// one per constrained dimension.
type Predicate struct {
	clauses []clause
}

// BuildPredicate compiles the constrained dimensions of req. Clauses are
// ordered deterministically; characteristic clauses follow in slug order.
func BuildPredicate(req Request) Predicate {
	var pr Predicate
	add := func(dim Dimension, match func(p *catalog.Product) bool) {
		pr.clauses = append(pr.clauses, clause{dim: dim, match: match})
	}

	if req.Subcategory != nil {
		id := *req.Subcategory
		add(Dimension{Kind: DimSubcategory}, func(p *catalog.Product) bool {
			return p.SubcategoryID == id
		})
	}
	if req.Subsubcategory != nil {
		id := *req.Subsubcategory
		add(Dimension{Kind: DimSubsubcategory}, func(p *catalog.Product) bool {
			return p.SubsubcategoryID == id
		})
	}
	if req.Subsubcategories != nil {
		set := newIDSet(req.Subsubcategories)
		add(Dimension{Kind: DimSubsubcategories}, func(p *catalog.Product) bool {
			return set.has(p.SubsubcategoryID)
		})
	}
	if req.Brands != nil {
		set := newIDSet(req.Brands)
		add(Dimension{Kind: DimBrands}, func(p *catalog.Product) bool {
			return set.has(p.BrandID)
		})
	}
	if req.MinPrice != nil || req.MaxPrice != nil {
		lo, hi := math.Inf(-1), math.Inf(1)
		if req.MinPrice != nil {
			lo = *req.MinPrice
		}
		if req.MaxPrice != nil {
			hi = *req.MaxPrice
		}
		add(Dimension{Kind: DimPrice}, func(p *catalog.Product) bool {
			return p.FinalPrice >= lo && p.FinalPrice <= hi
		})
	}
	if req.Rating {
		add(Dimension{Kind: DimRating}, func(p *catalog.Product) bool {
			return p.Rating >= RatingThreshold
		})
	}

	slugs := make([]string, 0, len(req.Characteristics))
	for slug := range req.Characteristics {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		set := newIDSet(req.Characteristics[slug])
		key := slug + catalog.GeneralKeySuffix
		add(Dimension{Kind: DimCharacteristic, Slug: slug}, func(p *catalog.Product) bool {
			id, ok := p.CharsGeneral[key]
			return ok && set.has(id)
		})
	}

	return pr
}

// Match reports whether p satisfies every clause.
func (pr Predicate) Match(p *catalog.Product) bool {
	for i := range pr.clauses {
		if !pr.clauses[i].match(p) {
			return false
		}
	}
	return true
}

// Evaluate returns how many clauses p fails, stopping at two, and the
// dimension of the first failed clause. Facet counting only needs to know
// whether a product fails nothing, exactly one dimension, or more.
func (pr Predicate) Evaluate(p *catalog.Product) (failed int, dim Dimension) {
	for i := range pr.clauses {
		if pr.clauses[i].match(p) {
			continue
		}
		if failed == 0 {
			dim = pr.clauses[i].dim
		}
		failed++
		if failed == 2 {
			return failed, dim
		}
	}
	return failed, dim
}

// Dimensions lists the constrained dimensions in clause order.
func (pr Predicate) Dimensions() []Dimension {
	out := make([]Dimension, len(pr.clauses))
	for i, c := range pr.clauses {
		out[i] = c.dim
	}
	return out
}

// Constrains reports whether the predicate has a clause for dim.
func (pr Predicate) Constrains(dim Dimension) bool {
	for _, c := range pr.clauses {
		if c.dim == dim {
			return true
		}
	}
	return false
}
