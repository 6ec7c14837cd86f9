package filter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

func TestSortProducts(t *testing.T) {
	products := []*catalog.Product{
		{ID: 1, Name: "beta", FinalPrice: 20, Rating: 4},
		{ID: 2, Name: "Alpha", FinalPrice: 10, Rating: 5},
		{ID: 3, Name: "gamma", FinalPrice: 20, Rating: 4},
		{ID: 4, Name: "Delta", FinalPrice: 5, Rating: 3},
	}

	tests := []struct {
		key  string
		want []int64
	}{
		{SortRatingDesc, []int64{2, 1, 3, 4}},
		{SortPriceAsc, []int64{4, 2, 1, 3}},
		{SortPriceDesc, []int64{1, 3, 2, 4}},
		{SortNameAsc, []int64{2, 1, 4, 3}},
		{SortNameDesc, []int64{3, 4, 1, 2}},
		{"", []int64{1, 2, 3, 4}},
		{"popularity", []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := SortProducts(products, tt.key)
			assert.Equal(t, tt.want, productIDs(got))
			assert.Equal(t, []int64{1, 2, 3, 4}, productIDs(products), "input is not reordered")
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantFirst int
	}{
		{"first page", 1, 24, 0},
		{"second page", 2, 24, 24},
		{"last partial page", 3, 2, 48},
		{"past the end", 4, 0, -1},
		{"zero page is first", 0, 24, 0},
		{"negative page is first", -3, 24, 0},
		{"huge page is empty", (1 << 61) + 1, 0, -1},
		{"max int page is empty", math.MaxInt, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, DefaultPageSize)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0])
			}
		})
	}

	assert.Empty(t, Paginate([]int{}, 1, 24))
	assert.Empty(t, Paginate([]int{1, 2, 3, 4, 5}, (1<<61)+1, 24))
	assert.Equal(t, []int{49}, Paginate(items, 50, 1))
	assert.Len(t, Paginate(items, 1, 0), DefaultPageSize)
	assert.Equal(t, 3, PageCount(50, 24))
	assert.Equal(t, 0, PageCount(0, 24))
}

func TestPaginationCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	snap := randomCatalog(rng, 173)

	for _, key := range []string{SortPriceAsc, SortNameDesc, SortRatingDesc, ""} {
		sorted := SortProducts(FilterProducts(snap, Request{}), key)

		var all []*catalog.Product
		for page := 1; ; page++ {
			chunk := Paginate(sorted, page, DefaultPageSize)
			if len(chunk) == 0 {
				break
			}
			all = append(all, chunk...)
		}

		require.Equal(t, productIDs(sorted), productIDs(all), "sort %q", key)
		seen := map[int64]bool{}
		for _, p := range all {
			require.False(t, seen[p.ID])
			seen[p.ID] = true
		}
		require.Len(t, seen, 173)
	}
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(SortNameAsc))
	assert.False(t, ValidSort("newest"))
}
