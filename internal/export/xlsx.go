// Package export renders filtered catalog listings as XLSX workbooks.
package export

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/mapper"
)

// Sheet names.
const (
	ProductsSheet = "Products"
	FacetsSheet   = "Facets"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeader = []interface{}{
	"ID", "Slug", "Name", "Article", "Brand",
	"Category", "Subcategory", "Subsubcategory", "Model",
	"Original price", "Final price", "Stock", "Rating",
	"Characteristics", "Created at",
}

var facetHeader = []interface{}{"Facet", "ID", "Name", "Count"}

// Workbook builds an XLSX workbook with one row per product. When meta is
// non-nil a second sheet lists the facet counts of the same request.
func Workbook(views []mapper.ProductView, meta *filter.Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeProducts(f, views, bold); err != nil {
		return nil, err
	}
	if meta != nil {
		if err := writeFacets(f, meta, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeProducts(f *excelize.File, views []mapper.ProductView, headerStyle int) error {
	sw, err := f.NewStreamWriter(ProductsSheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", productHeader, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, productRow(v)); err != nil {
			return fmt.Errorf("write product %d: %w", v.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush products: %w", err)
	}
	return nil
}

func productRow(v mapper.ProductView) []interface{} {
	model := ""
	if v.Model != nil {
		model = *v.Model
	}
	var original interface{} = ""
	if v.OriginalPrice != nil {
		original = *v.OriginalPrice
	}
	return []interface{}{
		v.ID, v.Slug, v.Name, v.Article, v.Brand.Name,
		v.Category.Name, v.Subcategory.Name, v.Subsubcategory.Name, model,
		original, v.FinalPrice, v.Stock, v.Rating,
		characteristics(v), v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// characteristics flattens general then extra characteristics into
// "Name: Option" pairs.
func characteristics(v mapper.ProductView) string {
	parts := make([]string, 0, len(v.CharsGeneral)+len(v.CharsExtra))
	for _, c := range v.CharsGeneral {
		parts = append(parts, c.Name+": "+c.Option.Name)
	}
	for _, c := range v.CharsExtra {
		parts = append(parts, c.Name+": "+c.Option.Name)
	}
	return strings.Join(parts, "; ")
}

func writeFacets(f *excelize.File, meta *filter.Meta, headerStyle int) error {
	if _, err := f.NewSheet(FacetsSheet); err != nil {
		return fmt.Errorf("create facets sheet: %w", err)
	}

	rows := [][]interface{}{facetHeader, {"count", "", "", meta.Count}}
	items := func(facet string, list []filter.FacetItem) {
		for _, it := range list {
			rows = append(rows, []interface{}{facet, it.ID, it.Name, it.Count})
		}
	}
	std := meta.Filters.Standard
	items("subsubcategories", std.Subsubcategories)
	items("brands", std.Brands)
	rows = append(rows,
		[]interface{}{"price.base_range", "", bound(std.Price.BaseRange[0]), bound(std.Price.BaseRange[1])},
		[]interface{}{"price.range", "", bound(std.Price.Range[0]), bound(std.Price.Range[1])},
		[]interface{}{"rating", "", "4+", std.Rating.Count},
	)
	for _, c := range meta.Filters.Characteristics {
		items("characteristics."+c.Value, c.Options)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(FacetsSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write facet row %d: %w", i+1, err)
		}
	}
	return f.SetRowStyle(FacetsSheet, 1, 1, headerStyle)
}

// bound renders an empty-range infinity as a blank cell.
func bound(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return v
}
