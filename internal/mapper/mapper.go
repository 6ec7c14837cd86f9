// Package mapper projects catalog products into their denormalized API
// representation.
package mapper

import (
	"fmt"
	"sort"
	"time"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// PlaceholderBrand is shown for products whose brand id does not resolve.
var PlaceholderBrand = Option{ID: 0, Name: "Brand"}

// Option is an {id, name} label.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OptionWithSlug is a category label.
type OptionWithSlug struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Characteristic is a resolved characteristic value of a product.
type Characteristic struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Option Option `json:"option"`
}

// ProductView is the API representation of a product.
type ProductView struct {
	ID              int64            `json:"id"`
	Slug            string           `json:"slug"`
	GroupID         *int64           `json:"group_id"`
	CreatedAt       time.Time        `json:"created_at"`
	Category        OptionWithSlug   `json:"category"`
	Subcategory     OptionWithSlug   `json:"subcategory"`
	Subsubcategory  OptionWithSlug   `json:"subsubcategory"`
	Name            string           `json:"name"`
	Article         int64            `json:"article"`
	Brand           Option           `json:"brand"`
	Model           *string          `json:"model"`
	OriginalPrice   *float64         `json:"original_price"`
	FinalPrice      float64          `json:"final_price"`
	Stock           int              `json:"stock"`
	Images          []string         `json:"images"`
	Rating          float64          `json:"rating"`
	CharsGeneral    []Characteristic `json:"chars_general"`
	CharsExtra      []Characteristic `json:"chars_extra"`
	Package         []string         `json:"package"`
	Description     string           `json:"description"`
	ShippingOptions []string         `json:"shipping_options"`
	Tags            []string         `json:"tags"`
}

// DataIntegrityError reports a product whose category path does not exist
// in the category tree. It unwraps to catalog.ErrNotFound.
type DataIntegrityError struct {
	ProductID int64
	Level     catalog.Level
	ID        int64
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("product %d: %s %d not found", e.ProductID, e.Level, e.ID)
}

func (e *DataIntegrityError) Unwrap() error { return catalog.ErrNotFound }

// ToView resolves p against the category tree and label index.
func ToView(p *catalog.Product, tree *catalog.CategoryTree, labels *catalog.LabelIndex) (ProductView, error) {
	path, missing, ok := tree.Resolve(p.CategoryID, p.SubcategoryID, p.SubsubcategoryID)
	if !ok {
		e := &DataIntegrityError{ProductID: p.ID, Level: missing}
		switch missing {
		case catalog.LevelCategory:
			e.ID = p.CategoryID
		case catalog.LevelSubcategory:
			e.ID = p.SubcategoryID
		default:
			e.ID = p.SubsubcategoryID
		}
		return ProductView{}, e
	}

	brand := PlaceholderBrand
	if b, ok := labels.Brand(p.BrandID); ok {
		brand = Option{ID: b.ID, Name: b.Name}
	}

	v := ProductView{
		ID:              p.ID,
		Slug:            p.Slug,
		GroupID:         p.GroupID,
		CreatedAt:       p.CreatedAt,
		Category:        OptionWithSlug{ID: path.Category.ID, Name: path.Category.Name, Slug: path.Category.Slug},
		Subcategory:     OptionWithSlug{ID: path.Subcategory.ID, Name: path.Subcategory.Name, Slug: path.Subcategory.Slug},
		Subsubcategory:  OptionWithSlug{ID: path.Subsubcategory.ID, Name: path.Subsubcategory.Name, Slug: path.Subsubcategory.Slug},
		Name:            p.Name,
		Article:         p.Article,
		Brand:           brand,
		Model:           p.Model,
		OriginalPrice:   p.OriginalPrice,
		FinalPrice:      p.FinalPrice,
		Stock:           p.Stock,
		Images:          p.Images,
		Rating:          p.Rating,
		CharsGeneral:    characteristics(p.CharsGeneral, labels, catalog.General),
		Package:         p.Package,
		Description:     p.Description,
		ShippingOptions: p.ShippingOptions,
		Tags:            p.Tags,
	}
	if p.CharsExtra != nil {
		v.CharsExtra = characteristics(p.CharsExtra, labels, catalog.Extra)
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	return v, nil
}

// characteristics expands a characteristic map in key order. Keys whose
// definition or option does not resolve are skipped.
func characteristics(m map[string]int64, labels *catalog.LabelIndex, ns catalog.Namespace) []Characteristic {
	out := make([]Characteristic, 0, len(m))
	for _, key := range sortedKeys(m) {
		slug, ok := catalog.SlugFromKey(key)
		if !ok {
			slug = key
		}
		def, ok := labels.DefinitionBySlug(ns, slug)
		if !ok {
			continue
		}
		opt, ok := labels.Option(ns, m[key])
		if !ok {
			continue
		}
		out = append(out, Characteristic{
			ID:     def.ID,
			Name:   def.Name,
			Value:  def.Value,
			Option: Option{ID: opt.ID, Name: opt.Name},
		})
	}
	return out
}

// ToViews projects products in order. The first integrity error aborts.
func ToViews(products []*catalog.Product, snap *catalog.Snapshot) ([]ProductView, error) {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		v, err := ToView(p, snap.Tree(), snap.Index())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
