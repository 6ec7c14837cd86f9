package filter

import (
	"encoding/json"
	"math"

	"github.com/invopop/jsonschema"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// FacetItem is one selectable facet value.
type FacetItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CharacteristicFacet groups the options offered for one characteristic.
type CharacteristicFacet struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Value   string      `json:"value"`
	Options []FacetItem `json:"options"`
}

// PriceRange is a [min, max] pair. The range of an empty set is [+Inf, -Inf]
// and is encoded in JSON as [null, null].
type PriceRange [2]float64

// EmptyRange returns the range of an empty set.
func EmptyRange() PriceRange {
	return PriceRange{math.Inf(1), math.Inf(-1)}
}

// Empty reports whether r covers no value.
func (r PriceRange) Empty() bool {
	return r[0] > r[1]
}

// Contains reports whether o lies within r. Empty ranges are contained in
// every range.
func (r PriceRange) Contains(o PriceRange) bool {
	return o.Empty() || (r[0] <= o[0] && o[1] <= r[1])
}

func (r *PriceRange) include(v float64) {
	if v < r[0] {
		r[0] = v
	}
	if v > r[1] {
		r[1] = v
	}
}

// MarshalJSON encodes infinite bounds as null.
func (r PriceRange) MarshalJSON() ([]byte, error) {
	var out [2]*float64
	for i, v := range r {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			v := v
			out[i] = &v
		}
	}
	return json.Marshal(out)
}

// JSONSchema describes the nullable [min, max] encoding.
func (PriceRange) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: "[min, max]; both bounds are null when no product matches",
		Items: &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{{Type: "number"}, {Type: "null"}},
		},
	}
}

// UnmarshalJSON decodes null bounds back to the empty-set infinities.
func (r *PriceRange) UnmarshalJSON(data []byte) error {
	var in [2]*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = EmptyRange()
	for i, v := range in {
		if v != nil {
			r[i] = *v
		}
	}
	return nil
}

// PriceFacet reports the observed price ranges.
type PriceFacet struct {
	BaseRange PriceRange `json:"base_range"`
	Range     PriceRange `json:"range"`
}

// RatingFacet reports how many filtered products are rated 4 and up.
type RatingFacet struct {
	Count int `json:"count"`
}

// StandardFacets holds the facets every category offers.
type StandardFacets struct {
	Subsubcategories []FacetItem `json:"subsubcategories"`
	Brands           []FacetItem `json:"brands"`
	Price            PriceFacet  `json:"price"`
	Rating           RatingFacet `json:"rating"`
}

// Facets is the filter metadata of a request.
type Facets struct {
	Standard        StandardFacets        `json:"standard"`
	Characteristics []CharacteristicFacet `json:"characteristics"`
}

// Meta is the filter-meta response: the filtered product count and facets.
type Meta struct {
	Count   int    `json:"count"`
	Filters Facets `json:"filters"`
}

// Aggregator computes facet metadata.
type Aggregator struct {
	numericSlugs map[string]struct{}
}

// NewAggregator creates an aggregator. Characteristics whose slug is listed
// in numericSlugs, or whose definition has sort kind "numeric", order their
// options by the number in the option name.
func NewAggregator(numericSlugs []string) *Aggregator {
	a := &Aggregator{numericSlugs: make(map[string]struct{}, len(numericSlugs))}
	for _, s := range numericSlugs {
		a.numericSlugs[s] = struct{}{}
	}
	return a
}

func (a *Aggregator) numeric(def catalog.CharacteristicDef) bool {
	if def.SortKind == catalog.SortKindNumeric {
		return true
	}
	_, ok := a.numericSlugs[def.Value]
	return ok
}

type optionKey struct {
	slug string
	id   int64
}

type charGroup struct {
	def     catalog.CharacteristicDef
	options []FacetItem
	seen    map[int64]struct{}
}

// facetValues enumerates offerable values in first-seen order.
type facetValues struct {
	items []FacetItem
	pos   map[int64]struct{}
}

func (v *facetValues) add(id int64, name func() string) {
	if _, ok := v.pos[id]; ok {
		return
	}
	v.pos[id] = struct{}{}
	v.items = append(v.items, FacetItem{ID: id, Name: name()})
}

// Aggregate computes the filter metadata of req over snap.
//
// Facet values are enumerated from the base set: products within the
// request's subcategory and subsubcategory scope. The count of a value is
// the number of products that would match req with that value's dimension
// replaced by exactly that value. A single pass computes every count: a
// product counts towards the values of dimension D when it satisfies every
// constraint except possibly D.
func (a *Aggregator) Aggregate(snap *catalog.Snapshot, req Request) Meta {
	scope := BuildPredicate(req.Scope())
	pred := BuildPredicate(req)
	tree, idx := snap.Tree(), snap.Index()

	subsubs := facetValues{pos: map[int64]struct{}{}}
	brands := facetValues{pos: map[int64]struct{}{}}
	var groups []*charGroup
	groupByDef := map[int64]*charGroup{}

	subsubCounts := map[int64]int{}
	brandCounts := map[int64]int{}
	optionCounts := map[optionKey]int{}

	baseRange, filteredRange := EmptyRange(), EmptyRange()
	matched, rated := 0, 0

	products := snap.Products()
	for i := range products {
		p := &products[i]
		if !scope.Match(p) {
			continue
		}
		baseRange.include(p.FinalPrice)

		subsubs.add(p.SubsubcategoryID, func() string { return tree.SubsubcategoryName(p) })
		brands.add(p.BrandID, func() string {
			b, _ := idx.Brand(p.BrandID)
			return b.Name
		})
		for _, key := range p.GeneralKeys() {
			id := p.CharsGeneral[key]
			opt, _ := idx.Option(catalog.General, id)
			def, _ := idx.Definition(catalog.General, opt.ParentID)
			g, ok := groupByDef[def.ID]
			if !ok {
				g = &charGroup{def: def, seen: map[int64]struct{}{}}
				groupByDef[def.ID] = g
				groups = append(groups, g)
			}
			if _, ok := g.seen[id]; !ok {
				g.seen[id] = struct{}{}
				g.options = append(g.options, FacetItem{ID: id, Name: opt.Name})
			}
		}

		failed, dim := pred.Evaluate(p)
		switch failed {
		case 0:
			matched++
			filteredRange.include(p.FinalPrice)
			if p.Rating >= RatingThreshold {
				rated++
			}
			subsubCounts[p.SubsubcategoryID]++
			brandCounts[p.BrandID]++
			for key, id := range p.CharsGeneral {
				if slug, ok := catalog.SlugFromKey(key); ok {
					optionCounts[optionKey{slug, id}]++
				}
			}
		case 1:
			switch dim.Kind {
			case DimSubsubcategories:
				subsubCounts[p.SubsubcategoryID]++
			case DimBrands:
				brandCounts[p.BrandID]++
			case DimCharacteristic:
				if id, ok := p.GeneralOption(dim.Slug); ok {
					optionCounts[optionKey{dim.Slug, id}]++
				}
			}
		}
	}

	s := newFacetSorter()

	for i := range subsubs.items {
		subsubs.items[i].Count = subsubCounts[subsubs.items[i].ID]
	}
	s.sort(subsubs.items, false)

	for i := range brands.items {
		brands.items[i].Count = brandCounts[brands.items[i].ID]
	}
	s.sort(brands.items, false)

	characteristics := make([]CharacteristicFacet, 0, len(groups))
	for _, g := range groups {
		for i := range g.options {
			g.options[i].Count = optionCounts[optionKey{g.def.Value, g.options[i].ID}]
		}
		s.sort(g.options, a.numeric(g.def))
		characteristics = append(characteristics, CharacteristicFacet{
			ID:      g.def.ID,
			Name:    g.def.Name,
			Value:   g.def.Value,
			Options: g.options,
		})
	}

	return Meta{
		Count: matched,
		Filters: Facets{
			Standard: StandardFacets{
				Subsubcategories: nonNil(subsubs.items),
				Brands:           nonNil(brands.items),
				Price:            PriceFacet{BaseRange: baseRange, Range: filteredRange},
				Rating:           RatingFacet{Count: rated},
			},
			Characteristics: characteristics,
		},
	}
}

func nonNil(items []FacetItem) []FacetItem {
	if items == nil {
		return []FacetItem{}
	}
	return items
}
