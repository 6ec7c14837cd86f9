package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawProduct
		check func(t *testing.T, p Product)
	}{
		{
			name: "array fields keep only strings",
			raw: RawProduct{
				Images:          []any{"a.webp", 3, nil, "b.webp"},
				Tags:            []any{"new", true},
				Package:         []any{"box"},
				ShippingOptions: []any{"pickup", map[string]any{"x": 1}},
			},
			check: func(t *testing.T, p Product) {
				assert.Equal(t, []string{"a.webp", "b.webp"}, p.Images)
				assert.Equal(t, []string{"new"}, p.Tags)
				assert.Equal(t, []string{"box"}, p.Package)
				assert.Equal(t, []string{"pickup"}, p.ShippingOptions)
			},
		},
		{
			name: "null fields default",
			raw:  RawProduct{},
			check: func(t *testing.T, p Product) {
				assert.Equal(t, []string{}, p.Images)
				assert.NotNil(t, p.CharsGeneral)
				assert.Empty(t, p.CharsGeneral)
				assert.Nil(t, p.CharsExtra)
				assert.Nil(t, p.Tags)
				assert.Nil(t, p.Package)
				assert.Nil(t, p.ShippingOptions)
				assert.Nil(t, p.Model)
				assert.Nil(t, p.OriginalPrice)
			},
		},
		{
			name: "characteristic maps coerce numbers",
			raw: RawProduct{
				CharsGeneral: map[string]any{
					"color_id": float64(100),
					"power_id": json.Number("110"),
					"size_id":  "7",
					"bad_id":   1.5,
					"nil_id":   nil,
				},
				CharsExtra: map[string]any{"material_id": 200},
			},
			check: func(t *testing.T, p Product) {
				assert.Equal(t, map[string]int64{"color_id": 100, "power_id": 110, "size_id": 7}, p.CharsGeneral)
				assert.Equal(t, map[string]int64{"material_id": 200}, p.CharsExtra)
				assert.Equal(t, []string{"color_id", "power_id", "size_id"}, p.GeneralKeys())
			},
		},
		{
			name: "negative stock clamps to zero",
			raw:  RawProduct{Stock: -3},
			check: func(t *testing.T, p Product) {
				assert.Equal(t, 0, p.Stock)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Normalize(tt.raw))
		})
	}
}

func TestNormalizeFromJSON(t *testing.T) {
	payload := `{"id":7,"name":"Lamp","final_price":99.5,"images":["a",1],"chars_general":{"color_id":100},"chars_extra":null,"tags":null}`

	var raw RawProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	p := Normalize(raw)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, 99.5, p.FinalPrice)
	assert.Equal(t, []string{"a"}, p.Images)
	assert.Equal(t, map[string]int64{"color_id": 100}, p.CharsGeneral)
	assert.Nil(t, p.CharsExtra)
	assert.Nil(t, p.Tags)
}

func TestSlugFromKey(t *testing.T) {
	slug, ok := SlugFromKey("color_id")
	assert.True(t, ok)
	assert.Equal(t, "color", slug)

	_, ok = SlugFromKey("color")
	assert.False(t, ok)
}
