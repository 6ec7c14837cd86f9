package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

func TestAggregate(t *testing.T) {
	snap := lampCatalog()
	meta := NewAggregator([]string{"power"}).Aggregate(snap, Request{Subcategory: i64(5), Brands: []int64{1}})

	assert.Equal(t, 2, meta.Count)

	std := meta.Filters.Standard
	assert.Equal(t, []FacetItem{
		{ID: 51, Name: "Desk lamps", Count: 1},
		{ID: 52, Name: "Floor lamps", Count: 1},
	}, std.Subsubcategories)

	assert.Equal(t, []FacetItem{
		{ID: 99, Name: "", Count: 1},
		{ID: 2, Name: "brightline", Count: 1},
		{ID: 3, Name: "Candela", Count: 1},
		{ID: 1, Name: "Lumen", Count: 2},
	}, std.Brands, "brand counts ignore the brand selection and names sort case-insensitively")

	assert.Equal(t, PriceRange{50, 700}, std.Price.BaseRange)
	assert.Equal(t, PriceRange{100, 400}, std.Price.Range)
	assert.Equal(t, 2, std.Rating.Count)

	require.Len(t, meta.Filters.Characteristics, 3)

	color := meta.Filters.Characteristics[0]
	assert.Equal(t, "color", color.Value)
	assert.Equal(t, []FacetItem{
		{ID: 102, Name: "Brass", Count: 1},
		{ID: 100, Name: "White", Count: 1},
		{ID: 101, Name: "black", Count: 0},
	}, color.Options, "zero counts sort last")

	power := meta.Filters.Characteristics[1]
	assert.Equal(t, "Power", power.Name)
	assert.Equal(t, []FacetItem{
		{ID: 112, Name: "60 W", Count: 1},
		{ID: 110, Name: "100 W", Count: 1},
		{ID: 111, Name: "40 W", Count: 0},
	}, power.Options, "numeric facets sort by number")

	unresolved := meta.Filters.Characteristics[2]
	assert.Equal(t, CharacteristicFacet{ID: 0, Name: "", Value: "", Options: []FacetItem{{ID: 999, Name: "", Count: 0}}}, unresolved)
}

func TestAggregateAlphabeticalWithoutNumericConfig(t *testing.T) {
	meta := NewAggregator(nil).Aggregate(lampCatalog(), Request{Subcategory: i64(5), Brands: []int64{1}})

	power := meta.Filters.Characteristics[1]
	assert.Equal(t, []int64{110, 112, 111}, facetIDs(power.Options))
}

func TestAggregateBaseSetIgnoresFacetConstraints(t *testing.T) {
	meta := NewAggregator(nil).Aggregate(lampCatalog(), Request{Subcategory: i64(5), Rating: true, MaxPrice: f64(1)})

	assert.Equal(t, 0, meta.Count)
	assert.ElementsMatch(t, []int64{1, 2, 3, 99}, facetIDs(meta.Filters.Standard.Brands))
	assert.ElementsMatch(t, []int64{51, 52}, facetIDs(meta.Filters.Standard.Subsubcategories))
	for _, b := range meta.Filters.Standard.Brands {
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, PriceRange{50, 700}, meta.Filters.Standard.Price.BaseRange)
	assert.True(t, meta.Filters.Standard.Price.Range.Empty())
}

func TestAggregateBrandScenario(t *testing.T) {
	var products []catalog.Product
	ownCounts := map[int64]int{}
	for i := 0; i < 30; i++ {
		p := catalog.Product{ID: int64(i + 1), Name: fmt.Sprintf("P%02d", i), CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 51,
			CharsGeneral: map[string]int64{}}
		if i < 5 {
			p.BrandID = 1
			p.FinalPrice = float64(100 * (i + 1))
		} else {
			p.BrandID = int64(2 + i%3)
			p.FinalPrice = float64(50 + 10*i)
		}
		ownCounts[p.BrandID]++
		products = append(products, p)
	}
	products = append(products, catalog.Product{ID: 99, SubcategoryID: 6, BrandID: 7, FinalPrice: 1, CharsGeneral: map[string]int64{}})
	snap := catalog.NewSnapshot(catalog.Data{Products: products})

	req := Request{Subcategory: i64(5), Brands: []int64{1}}

	filtered := FilterProducts(snap, req)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, productIDs(filtered))

	meta := NewAggregator(nil).Aggregate(snap, req)
	assert.Equal(t, 5, meta.Count)
	assert.Equal(t, PriceRange{100, 500}, meta.Filters.Standard.Price.Range)
	require.Len(t, meta.Filters.Standard.Brands, 4)
	for _, b := range meta.Filters.Standard.Brands {
		assert.Equal(t, ownCounts[b.ID], b.Count, "brand %d", b.ID)
	}
}

func TestAggregateInvertedPriceRange(t *testing.T) {
	meta := NewAggregator(nil).Aggregate(lampCatalog(), Request{MinPrice: f64(1000), MaxPrice: f64(500)})

	assert.Equal(t, 0, meta.Count)
	assert.Equal(t, PriceRange{math.Inf(1), math.Inf(-1)}, meta.Filters.Standard.Price.Range)

	b, err := json.Marshal(meta.Filters.Standard.Price)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_range":[10,700],"range":[null,null]}`, string(b))
}

func TestAggregateSiblingIndependence(t *testing.T) {
	snap := catalog.NewSnapshot(catalog.Data{
		Products: []catalog.Product{
			{ID: 1, Name: "A", CharsGeneral: map[string]int64{"color_id": 1}},
			{ID: 2, Name: "B", CharsGeneral: map[string]int64{"color_id": 2}},
			{ID: 3, Name: "C", CharsGeneral: map[string]int64{"color_id": 3}},
		},
		Labels: catalog.Labels{
			CharsGeneral: []catalog.CharacteristicDef{{ID: 10, Name: "Color", Value: "color"}},
			CharsGeneralOptions: []catalog.CharacteristicOption{
				{ID: 1, ParentID: 10, Name: "Red"},
				{ID: 2, ParentID: 10, Name: "Green"},
				{ID: 3, ParentID: 10, Name: "Blue"},
			},
		},
	})
	req := Request{Characteristics: map[string][]int64{"color": {1, 2}}}

	assert.Equal(t, []int64{1, 2}, productIDs(FilterProducts(snap, req)))

	meta := NewAggregator(nil).Aggregate(snap, req)
	assert.Equal(t, 2, meta.Count)
	require.Len(t, meta.Filters.Characteristics, 1)
	assert.Equal(t, []FacetItem{
		{ID: 3, Name: "Blue", Count: 1},
		{ID: 2, Name: "Green", Count: 1},
		{ID: 1, Name: "Red", Count: 1},
	}, meta.Filters.Characteristics[0].Options)
}

func TestAggregateEmptySnapshot(t *testing.T) {
	meta := NewAggregator(nil).Aggregate(catalog.EmptySnapshot(), Request{Subcategory: i64(5)})

	b, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"count": 0,
		"filters": {
			"standard": {
				"subsubcategories": [],
				"brands": [],
				"price": {"base_range": [null, null], "range": [null, null]},
				"rating": {"count": 0}
			},
			"characteristics": []
		}
	}`, string(b))
}

// TestAggregateMatchesRefiltering checks every facet count against a full
// re-filter of the catalog with that facet value forced.
func TestAggregateMatchesRefiltering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	agg := NewAggregator([]string{"power"})

	for c := 0; c < 5; c++ {
		snap := randomCatalog(rng, 250)
		for i := 0; i < 60; i++ {
			req := randomRequest(rng)
			meta := agg.Aggregate(snap, req)

			filtered := FilterProducts(snap, req)
			require.Equal(t, len(filtered), meta.Count, "count for %+v", req)

			base := FilterProducts(snap, req.Scope())
			assertOfferedValues(t, base, meta)

			for _, item := range meta.Filters.Standard.Subsubcategories {
				want := len(FilterProducts(snap, req.WithSubsubcategory(item.ID)))
				require.Equal(t, want, item.Count, "subsubcategory %d for %+v", item.ID, req)
			}
			for _, item := range meta.Filters.Standard.Brands {
				want := len(FilterProducts(snap, req.WithBrand(item.ID)))
				require.Equal(t, want, item.Count, "brand %d for %+v", item.ID, req)
			}
			for _, ch := range meta.Filters.Characteristics {
				for _, opt := range ch.Options {
					want := len(FilterProducts(snap, req.WithCharacteristicOption(ch.Value, opt.ID)))
					require.Equal(t, want, opt.Count, "%s option %d for %+v", ch.Value, opt.ID, req)
				}
			}

			rated := 0
			for _, p := range filtered {
				if p.Rating >= RatingThreshold {
					rated++
				}
			}
			require.Equal(t, rated, meta.Filters.Standard.Rating.Count)

			price := meta.Filters.Standard.Price
			require.True(t, price.BaseRange.Contains(price.Range), "base %v range %v", price.BaseRange, price.Range)
			require.Equal(t, len(base) == 0, price.BaseRange.Empty())
		}
	}
}

func assertOfferedValues(t *testing.T, base []*catalog.Product, meta Meta) {
	t.Helper()
	subsubs, brands := map[int64]bool{}, map[int64]bool{}
	for _, p := range base {
		subsubs[p.SubsubcategoryID] = true
		brands[p.BrandID] = true
	}
	require.Len(t, meta.Filters.Standard.Subsubcategories, len(subsubs))
	for _, item := range meta.Filters.Standard.Subsubcategories {
		require.True(t, subsubs[item.ID])
	}
	require.Len(t, meta.Filters.Standard.Brands, len(brands))
	for _, item := range meta.Filters.Standard.Brands {
		require.True(t, brands[item.ID])
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	snap := randomCatalog(rng, 200)
	agg := NewAggregator(nil)

	for i := 0; i < 20; i++ {
		req := randomRequest(rng)
		first, err := json.Marshal(agg.Aggregate(snap, req))
		require.NoError(t, err)
		second, err := json.Marshal(agg.Aggregate(snap, req))
		require.NoError(t, err)
		require.Equal(t, string(first), string(second))
	}
}

func TestFacetSort(t *testing.T) {
	tests := []struct {
		name    string
		items   []FacetItem
		numeric bool
		want    []int64
	}{
		{
			name:  "zero counts last then case-insensitive names",
			items: []FacetItem{{1, "banana", 0}, {2, "Cherry", 3}, {3, "apple", 1}, {4, "Äpfel", 2}, {5, "avocado", 0}},
			want:  []int64{4, 3, 2, 5, 1},
		},
		{
			name:    "numeric by leading number",
			items:   []FacetItem{{1, "1000 W", 1}, {2, "60 W", 1}, {3, "7.5 W", 1}, {4, "n/a", 1}, {5, "100 W", 0}},
			numeric: true,
			want:    []int64{3, 2, 1, 4, 5},
		},
		{
			name:    "numeric ties fall back to name",
			items:   []FacetItem{{1, "60 W warm", 2}, {2, "60 W cold", 2}},
			numeric: true,
			want:    []int64{2, 1},
		},
		{
			name:  "equal names order by id",
			items: []FacetItem{{9, "Same", 1}, {3, "same", 1}},
			want:  []int64{3, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newFacetSorter().sort(tt.items, tt.numeric)
			assert.Equal(t, tt.want, facetIDs(tt.items))
		})
	}
}

func TestPriceRangeJSON(t *testing.T) {
	var r PriceRange
	require.NoError(t, json.Unmarshal([]byte(`[null,null]`), &r))
	assert.True(t, r.Empty())

	require.NoError(t, json.Unmarshal([]byte(`[10.5,99]`), &r))
	assert.Equal(t, PriceRange{10.5, 99}, r)

	b, err := json.Marshal(PriceRange{10.5, 99})
	require.NoError(t, err)
	assert.Equal(t, `[10.5,99]`, string(b))
}

func facetIDs(items []FacetItem) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
