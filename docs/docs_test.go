package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfoMetadata(t *testing.T) {
	assert.Equal(t, "ArtiVana Catalog API", SwaggerInfo.Title)
	assert.Equal(t, "1.0", SwaggerInfo.Version)
	assert.Equal(t, "/", SwaggerInfo.BasePath)
	assert.Equal(t, "swagger", SwaggerInfo.InfoInstanceName)
}

func TestSwaggerTemplateStructure(t *testing.T) {
	template := SwaggerInfo.SwaggerTemplate
	require.NotEmpty(t, template)
	assert.Contains(t, template, `"swagger": "2.0"`)
	assert.Contains(t, template, `"paths":`)
	assert.Contains(t, template, `"definitions":`)
}

func readDoc(t *testing.T) map[string]any {
	t.Helper()
	doc := SwaggerInfo.ReadDoc()
	require.NotEmpty(t, doc)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed), "ReadDoc should return valid JSON")
	return parsed
}

func TestSwaggerInfoReadDoc(t *testing.T) {
	parsed := readDoc(t)

	info, ok := parsed["info"].(map[string]any)
	require.True(t, ok, "JSON should have info section")
	assert.Equal(t, "ArtiVana Catalog API", info["title"])
	assert.Equal(t, "1.0", info["version"])
	assert.Equal(t, "/", parsed["basePath"])
	assert.Equal(t, "2.0", parsed["swagger"])
}

func TestSwaggerInfoHasEndpoints(t *testing.T) {
	paths, ok := readDoc(t)["paths"].(map[string]any)
	require.True(t, ok, "JSON should have paths section")

	for _, path := range []string{
		"/api/products/filter",
		"/api/products/filter-meta",
		"/internal/catalog/refresh",
		"/internal/catalog/status",
		"/health",
	} {
		_, exists := paths[path]
		assert.True(t, exists, "Path %s should exist in swagger spec", path)
	}
}

func TestSwaggerInfoHasDefinitions(t *testing.T) {
	definitions, ok := readDoc(t)["definitions"].(map[string]any)
	require.True(t, ok, "JSON should have definitions section")

	for _, typeName := range []string{
		"mapper.ProductView",
		"filter.Meta",
		"filter.FacetItem",
		"catalog.Freshness",
		"handlers.RefreshResponse",
		"handlers.ErrorResponse",
	} {
		_, exists := definitions[typeName]
		assert.True(t, exists, "Type %s should exist in swagger definitions", typeName)
	}
}

func TestFilterEndpointsDocumentQuerySurface(t *testing.T) {
	paths, ok := readDoc(t)["paths"].(map[string]any)
	require.True(t, ok)

	shared := []string{
		"subcategory", "subsubcategory", "subsubcategories[]", "brands[]",
		"min_price", "max_price", "rating", "characteristics[color][]", "sort",
	}
	tests := []struct {
		path  string
		extra []string
	}{
		{"/api/products/filter", []string{"page"}},
		{"/api/products/filter-meta", []string{"page"}},
		{"/internal/catalog/export", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			op := paths[tt.path].(map[string]any)["get"].(map[string]any)
			var names []string
			for _, p := range op["parameters"].([]any) {
				names = append(names, p.(map[string]any)["name"].(string))
			}
			assert.ElementsMatch(t, append(append([]string{}, shared...), tt.extra...), names)
		})
	}
}
