package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// RawProduct is a product record as delivered by a Source. Collection
// fields are loosely typed because upstream rows store them as JSON.
type RawProduct struct {
	ID               int64     `json:"id" yaml:"id"`
	Slug             string    `json:"slug" yaml:"slug"`
	GroupID          *int64    `json:"group_id" yaml:"group_id"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
	CategoryID       int64     `json:"category_id" yaml:"category_id"`
	SubcategoryID    int64     `json:"subcategory_id" yaml:"subcategory_id"`
	SubsubcategoryID int64     `json:"subsubcategory_id" yaml:"subsubcategory_id"`
	Name             string    `json:"name" yaml:"name"`
	Article          int64     `json:"article" yaml:"article"`
	BrandID          int64     `json:"brand_id" yaml:"brand_id"`
	Model            *string   `json:"model" yaml:"model"`
	OriginalPrice    *float64  `json:"original_price" yaml:"original_price"`
	FinalPrice       float64   `json:"final_price" yaml:"final_price"`
	Stock            int       `json:"stock" yaml:"stock"`
	Rating           float64   `json:"rating" yaml:"rating"`
	Images           any       `json:"images" yaml:"images"`
	CharsGeneral     any       `json:"chars_general" yaml:"chars_general"`
	CharsExtra       any       `json:"chars_extra" yaml:"chars_extra"`
	Package          any       `json:"package" yaml:"package"`
	Description      string    `json:"description" yaml:"description"`
	ShippingOptions  any       `json:"shipping_options" yaml:"shipping_options"`
	Tags             any       `json:"tags" yaml:"tags"`
}

// Normalize converts a raw record into a Product. Array fields keep only
// their string entries; a missing images list becomes empty while the
// nullable lists stay nil. chars_general always yields a map.
func Normalize(raw RawProduct) Product {
	p := Product{
		ID:               raw.ID,
		Slug:             raw.Slug,
		GroupID:          raw.GroupID,
		CreatedAt:        raw.CreatedAt,
		CategoryID:       raw.CategoryID,
		SubcategoryID:    raw.SubcategoryID,
		SubsubcategoryID: raw.SubsubcategoryID,
		Name:             raw.Name,
		Article:          raw.Article,
		BrandID:          raw.BrandID,
		Model:            raw.Model,
		OriginalPrice:    raw.OriginalPrice,
		FinalPrice:       raw.FinalPrice,
		Stock:            raw.Stock,
		Rating:           raw.Rating,
		Description:      raw.Description,
		Images:           stringSlice(raw.Images),
		Package:          stringSlice(raw.Package),
		ShippingOptions:  stringSlice(raw.ShippingOptions),
		Tags:             stringSlice(raw.Tags),
		CharsGeneral:     optionMap(raw.CharsGeneral),
		CharsExtra:       optionMap(raw.CharsExtra),
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.CharsGeneral == nil {
		p.CharsGeneral = map[string]int64{}
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.generalKeys = sortedKeys(p.CharsGeneral)
	return p
}

// NormalizeAll normalizes a batch of raw records.
func NormalizeAll(raws []RawProduct) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// stringSlice returns nil unless v is a list, in which case the non-string
// entries are dropped.
func stringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// optionMap returns nil unless v is an object. Entries whose value is not
// an integral number are dropped.
func optionMap(v any) map[string]int64 {
	switch m := v.(type) {
	case map[string]int64:
		out := make(map[string]int64, len(m))
		for k, id := range m {
			out[k] = id
		}
		return out
	case map[string]any:
		out := make(map[string]int64, len(m))
		for k, raw := range m {
			if id, ok := toInt64(raw); ok {
				out[k] = id
			}
		}
		return out
	default:
		return nil
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
