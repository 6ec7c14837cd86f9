package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() []Category {
	return []Category{
		{
			ID: 1, Slug: "lighting", Name: "Lighting",
			Subcategories: []Subcategory{
				{
					ID: 5, Slug: "lamps", Name: "Lamps",
					Subsubcategories: []Subsubcategory{
						{ID: 51, Slug: "desk-lamps", Name: "Desk lamps"},
						{ID: 52, Slug: "floor-lamps", Name: "Floor lamps"},
					},
				},
			},
		},
		{ID: 2, Slug: "garden", Name: "Garden"},
	}
}

func TestCategoryTreeResolve(t *testing.T) {
	tree := NewCategoryTree(testCategories())

	tests := []struct {
		name    string
		ids     [3]int64
		wantOK  bool
		missing Level
	}{
		{"full path", [3]int64{1, 5, 51}, true, ""},
		{"unknown category", [3]int64{9, 5, 51}, false, LevelCategory},
		{"subcategory under another category", [3]int64{2, 5, 51}, false, LevelSubcategory},
		{"unknown subsubcategory", [3]int64{1, 5, 99}, false, LevelSubsubcategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, missing, ok := tree.Resolve(tt.ids[0], tt.ids[1], tt.ids[2])
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.missing, missing)
			if tt.wantOK {
				require.NotNil(t, path.Subsubcategory)
				assert.Equal(t, "desk-lamps", path.Subsubcategory.Slug)
				assert.Equal(t, "lamps", path.Subcategory.Slug)
				assert.Equal(t, "lighting", path.Category.Slug)
			}
		})
	}
}

func TestCategoryTreeSubsubcategoryName(t *testing.T) {
	tree := NewCategoryTree(testCategories())

	assert.Equal(t, "Floor lamps", tree.SubsubcategoryName(&Product{CategoryID: 1, SubcategoryID: 5, SubsubcategoryID: 52}))
	assert.Equal(t, "", tree.SubsubcategoryName(&Product{CategoryID: 2, SubcategoryID: 5, SubsubcategoryID: 52}))
}

func TestLabelIndex(t *testing.T) {
	idx := NewLabelIndex(Labels{
		Brands: []Brand{{ID: 1, Name: "Lumen"}, {ID: 1, Name: "Duplicate"}},
		CharsGeneral: []CharacteristicDef{
			{ID: 10, Name: "Color", Value: "color"},
		},
		CharsGeneralOptions: []CharacteristicOption{{ID: 100, ParentID: 10, Name: "White"}},
		CharsExtra:          []CharacteristicDef{{ID: 20, Name: "Material", Value: "material"}},
		CharsExtraOptions:   []CharacteristicOption{{ID: 200, ParentID: 20, Name: "Steel"}},
	})

	b, ok := idx.Brand(1)
	require.True(t, ok)
	assert.Equal(t, "Lumen", b.Name, "first duplicate wins")

	_, ok = idx.Brand(2)
	assert.False(t, ok)

	d, ok := idx.DefinitionBySlug(General, "color")
	require.True(t, ok)
	assert.Equal(t, int64(10), d.ID)

	_, ok = idx.DefinitionBySlug(Extra, "color")
	assert.False(t, ok, "namespaces are independent")

	o, ok := idx.Option(Extra, 200)
	require.True(t, ok)
	assert.Equal(t, "Steel", o.Name)

	d, ok = idx.Definition(Extra, 20)
	require.True(t, ok)
	assert.Equal(t, "material", d.Value)
}
