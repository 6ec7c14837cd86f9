package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
)

type staticProvider struct{ snap *catalog.Snapshot }

func (p staticProvider) Snapshot() *catalog.Snapshot { return p.snap }

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]filter.Meta
	gets    int
	sets    int
	failGet error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]filter.Meta{}}
}

func (c *memoryCache) key(generation, k string) string {
	return fmt.Sprintf("%s:%s", generation, k)
}

func (c *memoryCache) Get(_ context.Context, generation, k string) (filter.Meta, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return filter.Meta{}, false, c.failGet
	}
	m, ok := c.entries[c.key(generation, k)]
	return m, ok, nil
}

func (c *memoryCache) Set(_ context.Context, generation, k string, m filter.Meta) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[c.key(generation, k)] = m
	return nil
}

func i64(v int64) *int64 { return &v }

func testSnapshot(products ...catalog.Product) *catalog.Snapshot {
	return catalog.NewSnapshot(catalog.Data{
		Products: products,
		Categories: []catalog.Category{{
			ID: 1, Slug: "lighting", Name: "Lighting",
			Subcategories: []catalog.Subcategory{{
				ID: 5, Slug: "lamps", Name: "Lamps",
				Subsubcategories: []catalog.Subsubcategory{
					{ID: 51, Slug: "desk", Name: "Desk"},
					{ID: 52, Slug: "floor", Name: "Floor"},
				},
			}},
		}},
		Labels: catalog.Labels{
			Brands:              []catalog.Brand{{ID: 1, Name: "Lumen"}},
			CharsGeneral:        []catalog.CharacteristicDef{{ID: 10, Name: "Color", Value: "color"}},
			CharsGeneralOptions: []catalog.CharacteristicOption{{ID: 100, ParentID: 10, Name: "White"}},
		},
	})
}

func lamp(id int64, subsub int64, price float64, name string) catalog.Product {
	return catalog.Product{
		ID: id, Slug: name, Name: name,
		CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: subsub,
		BrandID: 1, FinalPrice: price, Rating: 4,
		CharsGeneral: map[string]int64{"color_id": 100},
	}
}

func TestProductsPaginates(t *testing.T) {
	snap := testSnapshot(
		lamp(1, 51, 300, "Alpha"),
		lamp(2, 52, 100, "Beta"),
		lamp(3, 51, 200, "Gamma"),
	)
	svc := NewService(staticProvider{snap}, nil, Config{PageSize: 2})

	page, err := svc.Products(context.Background(), filter.Request{Sort: filter.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.Equal(t, int64(3), page.Items[1].ID)
	assert.Equal(t, "Floor", page.Items[0].Subsubcategory.Name)

	page, err = svc.Products(context.Background(), filter.Request{Sort: filter.SortPriceAsc, Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].ID)

	page, err = svc.Products(context.Background(), filter.Request{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestProductsAppliesFilter(t *testing.T) {
	snap := testSnapshot(lamp(1, 51, 300, "Alpha"), lamp(2, 52, 100, "Beta"))
	svc := NewService(staticProvider{snap}, nil, Config{})

	page, err := svc.Products(context.Background(), filter.Request{Subsubcategory: i64(52)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.Equal(t, filter.DefaultPageSize, page.PageSize)
}

func TestListingReturnsAllMatches(t *testing.T) {
	snap := testSnapshot(
		lamp(1, 51, 300, "Alpha"),
		lamp(2, 52, 100, "Beta"),
		lamp(3, 51, 200, "Gamma"),
	)
	svc := NewService(staticProvider{snap}, nil, Config{PageSize: 1})

	views, err := svc.Listing(context.Background(), filter.Request{Subsubcategory: i64(51), Sort: filter.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(3), views[0].ID)
	assert.Equal(t, int64(1), views[1].ID)

	_, err = NewService(staticProvider{testSnapshot(lamp(9, 99, 1, "Orphan"))}, nil, Config{}).
		Listing(context.Background(), filter.Request{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductsIntegrityError(t *testing.T) {
	orphan := lamp(1, 99, 10, "Orphan")
	svc := NewService(staticProvider{testSnapshot(orphan)}, nil, Config{})

	_, err := svc.Products(context.Background(), filter.Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductsEmptySnapshot(t *testing.T) {
	svc := NewService(staticProvider{catalog.EmptySnapshot()}, nil, Config{})

	page, err := svc.Products(context.Background(), filter.Request{Brands: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestFilterMetaUsesCache(t *testing.T) {
	snap := testSnapshot(lamp(1, 51, 300, "Alpha"), lamp(2, 52, 100, "Beta"))
	cache := newMemoryCache()
	svc := NewService(staticProvider{snap}, cache, Config{})
	req := filter.Request{Subcategory: i64(5)}

	first, err := svc.FilterMeta(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.FilterMeta(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestFilterMetaSharedCacheSeparatesCatalogs(t *testing.T) {
	small := testSnapshot(lamp(1, 51, 300, "Alpha"), lamp(2, 52, 100, "Beta"), lamp(3, 51, 200, "Gamma"))
	var products []catalog.Product
	for id := int64(1); id <= 10; id++ {
		products = append(products, lamp(id, 51, float64(id*10), fmt.Sprintf("Lamp %d", id)))
	}
	large := testSnapshot(products...)
	require.Equal(t, small.Version(), large.Version())
	require.NotEqual(t, small.Generation(), large.Generation())

	shared := newMemoryCache()
	first := NewService(staticProvider{small}, shared, Config{})
	second := NewService(staticProvider{large}, shared, Config{})

	meta, err := first.FilterMeta(context.Background(), filter.Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Count)

	meta, err = second.FilterMeta(context.Background(), filter.Request{})
	require.NoError(t, err)
	assert.Equal(t, 10, meta.Count)
	assert.Equal(t, 2, shared.sets)

	// Same content on another replica reuses the entry.
	replica := NewService(staticProvider{testSnapshot(products...)}, shared, Config{})
	meta, err = replica.FilterMeta(context.Background(), filter.Request{})
	require.NoError(t, err)
	assert.Equal(t, 10, meta.Count)
	assert.Equal(t, 2, shared.sets)
}

func TestFilterMetaCacheFailureFallsBack(t *testing.T) {
	snap := testSnapshot(lamp(1, 51, 300, "Alpha"))
	cache := newMemoryCache()
	cache.failGet = errors.New("connection refused")
	svc := NewService(staticProvider{snap}, cache, Config{})

	meta, err := svc.FilterMeta(context.Background(), filter.Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Count)
	require.Len(t, meta.Filters.Characteristics, 1)
	assert.Equal(t, "color", meta.Filters.Characteristics[0].Value)
}

func TestFilterMetaMatchesAggregator(t *testing.T) {
	snap := testSnapshot(lamp(1, 51, 300, "Alpha"), lamp(2, 52, 100, "Beta"))
	svc := NewService(staticProvider{snap}, nil, Config{NumericSlugs: []string{"power"}})
	req := filter.Request{Subsubcategories: []int64{51}}

	meta, err := svc.FilterMeta(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, filter.NewAggregator([]string{"power"}).Aggregate(snap, req), meta)
}
