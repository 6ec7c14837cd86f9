package filter

import (
	"fmt"
	"math/rand"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

func i64(v int64) *int64 { return &v }

func f64(v float64) *float64 { return &v }

// lampCatalog is a small hand-written catalog:
//
//	subcategory 5 (Lamps): desk lamps (51) and floor lamps (52)
//	subcategory 6 (Bulbs): led bulbs (61)
func lampCatalog() *catalog.Snapshot {
	products := []catalog.Product{
		{ID: 1, Name: "Desk lamp Alpha", CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 51, BrandID: 1, FinalPrice: 100, Rating: 4.5,
			CharsGeneral: map[string]int64{"color_id": 100, "power_id": 110}},
		{ID: 2, Name: "desk lamp beta", CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 51, BrandID: 2, FinalPrice: 250, Rating: 3.0,
			CharsGeneral: map[string]int64{"color_id": 101, "power_id": 111}},
		{ID: 3, Name: "Floor lamp Gamma", CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 52, BrandID: 1, FinalPrice: 400, Rating: 4.0,
			CharsGeneral: map[string]int64{"color_id": 102, "power_id": 112}},
		{ID: 4, Name: "Floor lamp Delta", CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 52, BrandID: 3, FinalPrice: 700, Rating: 5.0,
			CharsGeneral: map[string]int64{"color_id": 100}},
		{ID: 5, Name: "LED bulb", CategoryID: 1, SubcategoryID: 6, SubsubcategoryID: 61, BrandID: 4, FinalPrice: 10, Rating: 4.8,
			CharsGeneral: map[string]int64{"power_id": 113}},
		{ID: 6, Name: "Orphan lamp", CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 51, BrandID: 99, FinalPrice: 50, Rating: 1,
			CharsGeneral: map[string]int64{"color_id": 999}},
	}
	return catalog.NewSnapshot(catalog.Data{
		Products: products,
		Categories: []catalog.Category{{
			ID: 1, Slug: "lighting", Name: "Lighting",
			Subcategories: []catalog.Subcategory{
				{ID: 5, Slug: "lamps", Name: "Lamps", Subsubcategories: []catalog.Subsubcategory{
					{ID: 51, Slug: "desk-lamps", Name: "Desk lamps"},
					{ID: 52, Slug: "floor-lamps", Name: "Floor lamps"},
				}},
				{ID: 6, Slug: "bulbs", Name: "Bulbs", Subsubcategories: []catalog.Subsubcategory{
					{ID: 61, Slug: "led-bulbs", Name: "LED bulbs"},
				}},
			},
		}},
		Labels: catalog.Labels{
			Brands: []catalog.Brand{{ID: 1, Name: "Lumen"}, {ID: 2, Name: "brightline"}, {ID: 3, Name: "Candela"}, {ID: 4, Name: "Watt"}},
			CharsGeneral: []catalog.CharacteristicDef{
				{ID: 10, Name: "Color", Value: "color"},
				{ID: 11, Name: "Power", Value: "power"},
			},
			CharsGeneralOptions: []catalog.CharacteristicOption{
				{ID: 100, ParentID: 10, Name: "White"},
				{ID: 101, ParentID: 10, Name: "black"},
				{ID: 102, ParentID: 10, Name: "Brass"},
				{ID: 110, ParentID: 11, Name: "100 W"},
				{ID: 111, ParentID: 11, Name: "40 W"},
				{ID: 112, ParentID: 11, Name: "60 W"},
				{ID: 113, ParentID: 11, Name: "9 W"},
			},
		},
	})
}

// randomCatalog generates n products over a fixed label set.
func randomCatalog(rng *rand.Rand, n int) *catalog.Snapshot {
	categories := []catalog.Category{{ID: 1, Name: "Root", Subcategories: []catalog.Subcategory{
		{ID: 5, Name: "A", Subsubcategories: []catalog.Subsubcategory{{ID: 51, Name: "A1"}, {ID: 52, Name: "A2"}, {ID: 53, Name: "A3"}}},
		{ID: 6, Name: "B", Subsubcategories: []catalog.Subsubcategory{{ID: 61, Name: "B1"}, {ID: 62, Name: "B2"}}},
	}}}
	subsOf := map[int64][]int64{5: {51, 52, 53}, 6: {61, 62}}

	labels := catalog.Labels{
		CharsGeneral: []catalog.CharacteristicDef{
			{ID: 10, Name: "Color", Value: "color"},
			{ID: 11, Name: "Power", Value: "power", SortKind: catalog.SortKindNumeric},
			{ID: 12, Name: "Size", Value: "size"},
		},
	}
	for b := int64(1); b <= 6; b++ {
		labels.Brands = append(labels.Brands, catalog.Brand{ID: b, Name: fmt.Sprintf("Brand %d", b)})
	}
	for d := int64(10); d <= 12; d++ {
		for o := int64(0); o < 4; o++ {
			id := d*10 + o
			labels.CharsGeneralOptions = append(labels.CharsGeneralOptions,
				catalog.CharacteristicOption{ID: id, ParentID: d, Name: fmt.Sprintf("%d opt", id)})
		}
	}

	products := make([]catalog.Product, n)
	for i := range products {
		sub := int64(5 + rng.Intn(2))
		subs := subsOf[sub]
		chars := map[string]int64{}
		for d, slug := range []string{"color", "power", "size"} {
			if rng.Intn(4) > 0 {
				chars[slug+"_id"] = int64(10+d)*10 + int64(rng.Intn(4))
			}
		}
		products[i] = catalog.Product{
			ID:               int64(i + 1),
			Name:             fmt.Sprintf("Product %03d", rng.Intn(1000)),
			CategoryID:       1,
			SubcategoryID:    sub,
			SubsubcategoryID: subs[rng.Intn(len(subs))],
			BrandID:          int64(1 + rng.Intn(6)),
			FinalPrice:       float64(10 * (1 + rng.Intn(100))),
			Rating:           float64(rng.Intn(11)) / 2,
			CharsGeneral:     chars,
		}
	}
	return catalog.NewSnapshot(catalog.Data{Products: products, Categories: categories, Labels: labels})
}

// randomRequest builds a request constraining a random subset of dimensions.
func randomRequest(rng *rand.Rand) Request {
	var r Request
	if rng.Intn(2) == 0 {
		r.Subcategory = i64(int64(5 + rng.Intn(2)))
	}
	if rng.Intn(5) == 0 {
		r.Subsubcategory = i64([]int64{51, 52, 61}[rng.Intn(3)])
	}
	if rng.Intn(3) == 0 {
		r.Subsubcategories = []int64{[]int64{51, 52, 53, 61, 62}[rng.Intn(5)]}
	}
	if rng.Intn(2) == 0 {
		for k := 0; k <= rng.Intn(3); k++ {
			r.Brands = append(r.Brands, int64(1+rng.Intn(6)))
		}
	}
	if rng.Intn(3) == 0 {
		r.MinPrice = f64(float64(10 * rng.Intn(50)))
	}
	if rng.Intn(3) == 0 {
		r.MaxPrice = f64(float64(10 * (50 + rng.Intn(60))))
	}
	r.Rating = rng.Intn(3) == 0
	for d, slug := range []string{"color", "power", "size"} {
		if rng.Intn(3) == 0 {
			if r.Characteristics == nil {
				r.Characteristics = map[string][]int64{}
			}
			for k := 0; k <= rng.Intn(2); k++ {
				r.Characteristics[slug] = append(r.Characteristics[slug], int64(10+d)*10+int64(rng.Intn(4)))
			}
		}
	}
	return r
}

func productIDs(products []*catalog.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
