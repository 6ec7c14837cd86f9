// Package filter implements product filtering, faceted counting, sorting and
// pagination over a catalog snapshot.
package filter

import (
	"encoding/json"
	"sort"
)

// Sort keys accepted by SortProducts.
const (
	SortRatingDesc = "rating_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortNameAsc    = "name_asc"
	SortNameDesc   = "name_desc"
)

// RatingThreshold is the minimum rating matched by the rating flag.
const RatingThreshold = 4.0

// Request holds the active filter selections. A nil field is unconstrained;
// a present but empty set matches nothing.
type Request struct {
	Subcategory      *int64             `json:"subcategory,omitempty" jsonschema:"description=Subcategory id scoping the listing"`
	Subsubcategory   *int64             `json:"subsubcategory,omitempty" jsonschema:"description=Subsubcategory id scoping the listing"`
	Subsubcategories []int64            `json:"subsubcategories,omitempty" jsonschema:"description=Selected subsubcategory ids"`
	Brands           []int64            `json:"brands,omitempty" jsonschema:"description=Selected brand ids"`
	MinPrice         *float64           `json:"min_price,omitempty" jsonschema:"description=Inclusive lower bound of final_price"`
	MaxPrice         *float64           `json:"max_price,omitempty" jsonschema:"description=Inclusive upper bound of final_price"`
	Rating           bool               `json:"rating,omitempty" jsonschema:"description=Only products rated 4 and up"`
	Characteristics  map[string][]int64 `json:"characteristics,omitempty" jsonschema:"description=Selected option ids per characteristic slug"`
	Sort             string             `json:"sort,omitempty" jsonschema:"enum=rating_desc,enum=price_asc,enum=price_desc,enum=name_asc,enum=name_desc"`
	Page             int                `json:"page,omitempty" jsonschema:"minimum=1"`
}

// Clone returns a deep copy of r.
func (r Request) Clone() Request {
	out := r
	if r.Subcategory != nil {
		v := *r.Subcategory
		out.Subcategory = &v
	}
	if r.Subsubcategory != nil {
		v := *r.Subsubcategory
		out.Subsubcategory = &v
	}
	if r.MinPrice != nil {
		v := *r.MinPrice
		out.MinPrice = &v
	}
	if r.MaxPrice != nil {
		v := *r.MaxPrice
		out.MaxPrice = &v
	}
	out.Subsubcategories = cloneIDs(r.Subsubcategories)
	out.Brands = cloneIDs(r.Brands)
	if r.Characteristics != nil {
		out.Characteristics = make(map[string][]int64, len(r.Characteristics))
		for slug, ids := range r.Characteristics {
			out.Characteristics[slug] = cloneIDs(ids)
		}
	}
	return out
}

// Scope returns a request holding only the subcategory and subsubcategory
// constraints. It selects the base set used to enumerate facet values.
func (r Request) Scope() Request {
	c := r.Clone()
	return Request{Subcategory: c.Subcategory, Subsubcategory: c.Subsubcategory}
}

// WithSubsubcategory returns a copy of r whose subsubcategory set is
// exactly {id}.
func (r Request) WithSubsubcategory(id int64) Request {
	out := r.Clone()
	out.Subsubcategories = []int64{id}
	return out
}

// WithBrand returns a copy of r whose brand set is exactly {id}.
func (r Request) WithBrand(id int64) Request {
	out := r.Clone()
	out.Brands = []int64{id}
	return out
}

// WithCharacteristicOption returns a copy of r where the selection for slug
// is replaced by exactly {id}. Other characteristics are untouched.
func (r Request) WithCharacteristicOption(slug string, id int64) Request {
	out := r.Clone()
	if out.Characteristics == nil {
		out.Characteristics = map[string][]int64{}
	}
	out.Characteristics[slug] = []int64{id}
	return out
}

// requestKey mirrors Request without omitempty so that an absent set and
// an empty set encode differently.
type requestKey struct {
	Subcategory      *int64             `json:"subcategory"`
	Subsubcategory   *int64             `json:"subsubcategory"`
	Subsubcategories []int64            `json:"subsubcategories"`
	Brands           []int64            `json:"brands"`
	MinPrice         *float64           `json:"min_price"`
	MaxPrice         *float64           `json:"max_price"`
	Rating           bool               `json:"rating"`
	Characteristics  map[string][]int64 `json:"characteristics"`
}

// Key returns a canonical string for the filter selections of r, ignoring
// sort and page. Equal selections produce equal keys regardless of id order.
func (r Request) Key() string {
	c := r.Clone()
	sortIDs(c.Subsubcategories)
	sortIDs(c.Brands)
	for _, ids := range c.Characteristics {
		sortIDs(ids)
	}
	// encoding/json sorts map keys.
	b, _ := json.Marshal(requestKey{
		Subcategory:      c.Subcategory,
		Subsubcategory:   c.Subsubcategory,
		Subsubcategories: c.Subsubcategories,
		Brands:           c.Brands,
		MinPrice:         c.MinPrice,
		MaxPrice:         c.MaxPrice,
		Rating:           c.Rating,
		Characteristics:  c.Characteristics,
	})
	return string(b)
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
