package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storage"
)

func newFixtureStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()
	content, err := os.ReadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "catalog.yaml", content, nil))
	return store
}

func TestFixtureSource(t *testing.T) {
	ctx := context.Background()
	src := NewFixtureSource(newFixtureStorage(t), "catalog.yaml")

	products, err := src.FetchProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := Normalize(products[0])
	assert.Equal(t, "desk-lamp-white", p.Slug)
	assert.Equal(t, []string{"/img/p1.webp", "/img/p1b.webp"}, p.Images)
	assert.Equal(t, map[string]int64{"color_id": 100, "power_id": 110}, p.CharsGeneral)
	assert.Equal(t, map[string]int64{"material_id": 200}, p.CharsExtra)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 150.0, *p.OriginalPrice)
	assert.Equal(t, 2024, p.CreatedAt.Year())

	q := Normalize(products[1])
	assert.Equal(t, []string{}, q.Images)
	assert.Empty(t, q.CharsGeneral)
	assert.Nil(t, q.CharsExtra)
	assert.Nil(t, q.Tags)

	categories, err := src.FetchCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Subcategories[0].Subsubcategories, 2)

	defs, err := src.FetchGeneralDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, SortKindNumeric, defs[1].SortKind)
}

func TestFixtureSourceReloadsOnChange(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStorage(t)
	src := NewFixtureSource(store, "catalog.yaml")

	brands, err := src.FetchBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 2)

	require.NoError(t, store.Put(ctx, "catalog.yaml", []byte("brands:\n  - {id: 9, name: Solo}\n"), nil))

	brands, err = src.FetchBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Brand{{ID: 9, Name: "Solo"}}, brands)
}

func TestFixtureSourceMissing(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = NewFixtureSource(store, "absent.yaml").FetchProducts(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFixtureData(t *testing.T) {
	content, err := os.ReadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	f, err := ParseFixture(content)
	require.NoError(t, err)

	snap := NewSnapshot(f.Data())
	assert.True(t, snap.Complete())
	assert.Len(t, snap.Products(), 2)
	assert.Equal(t, []string{"color_id", "power_id"}, snap.Products()[0].GeneralKeys())

	opt, ok := snap.Index().Option(General, 111)
	require.True(t, ok)
	assert.Equal(t, "100 W", opt.Name)
}
