package catalog

import (
	"sort"
	"strings"
	"time"
)

// GeneralKeySuffix is appended to a characteristic slug to form its key in
// a product's characteristic maps ("color" -> "color_id").
const GeneralKeySuffix = "_id"

// SortKindNumeric marks a characteristic whose options are ordered by the
// number embedded in their names ("5 W", "10 W", "100 W").
const SortKindNumeric = "numeric"

// Product is a normalized catalog product. Values are immutable once they
// are part of a Snapshot.
type Product struct {
	ID               int64            `json:"id" yaml:"id"`
	Slug             string           `json:"slug" yaml:"slug"`
	GroupID          *int64           `json:"group_id" yaml:"group_id"`
	CreatedAt        time.Time        `json:"created_at" yaml:"created_at"`
	CategoryID       int64            `json:"category_id" yaml:"category_id"`
	SubcategoryID    int64            `json:"subcategory_id" yaml:"subcategory_id"`
	SubsubcategoryID int64            `json:"subsubcategory_id" yaml:"subsubcategory_id"`
	Name             string           `json:"name" yaml:"name"`
	Article          int64            `json:"article" yaml:"article"`
	BrandID          int64            `json:"brand_id" yaml:"brand_id"`
	Model            *string          `json:"model" yaml:"model"`
	OriginalPrice    *float64         `json:"original_price" yaml:"original_price"`
	FinalPrice       float64          `json:"final_price" yaml:"final_price"`
	Stock            int              `json:"stock" yaml:"stock"`
	Images           []string         `json:"images" yaml:"images"`
	Rating           float64          `json:"rating" yaml:"rating"`
	CharsGeneral     map[string]int64 `json:"chars_general" yaml:"chars_general"`
	CharsExtra       map[string]int64 `json:"chars_extra" yaml:"chars_extra"`
	Package          []string         `json:"package" yaml:"package"`
	Description      string           `json:"description" yaml:"description"`
	ShippingOptions  []string         `json:"shipping_options" yaml:"shipping_options"`
	Tags             []string         `json:"tags" yaml:"tags"`

	generalKeys []string
}

// GeneralKeys returns the keys of CharsGeneral in ascending order.
func (p *Product) GeneralKeys() []string {
	if p.generalKeys != nil || len(p.CharsGeneral) == 0 {
		return p.generalKeys
	}
	return sortedKeys(p.CharsGeneral)
}

// GeneralOption returns the option id stored for a characteristic slug.
func (p *Product) GeneralOption(slug string) (int64, bool) {
	id, ok := p.CharsGeneral[slug+GeneralKeySuffix]
	return id, ok
}

// SlugFromKey strips the key suffix from a characteristic map key. Keys
// without the suffix cannot be addressed by slug and report false.
func SlugFromKey(key string) (string, bool) {
	if !strings.HasSuffix(key, GeneralKeySuffix) {
		return "", false
	}
	return strings.TrimSuffix(key, GeneralKeySuffix), true
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Subsubcategory is a leaf of the category tree.
type Subsubcategory struct {
	ID    int64  `json:"id" yaml:"id"`
	Slug  string `json:"slug" yaml:"slug"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

// Subcategory is the middle level of the category tree.
type Subcategory struct {
	ID               int64            `json:"id" yaml:"id"`
	Slug             string           `json:"slug" yaml:"slug"`
	Name             string           `json:"name" yaml:"name"`
	Image            string           `json:"image" yaml:"image"`
	Subsubcategories []Subsubcategory `json:"subsubcategories" yaml:"subsubcategories"`
}

// Category is a root of the category tree.
type Category struct {
	ID            int64         `json:"id" yaml:"id"`
	Slug          string        `json:"slug" yaml:"slug"`
	Name          string        `json:"name" yaml:"name"`
	Image         string        `json:"image" yaml:"image"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
}

// Brand is a brand label.
type Brand struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CharacteristicDef defines a characteristic such as "Color". Value is the
// slug used in product characteristic keys and filter requests.
type CharacteristicDef struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	SortKind string `json:"sort_kind,omitempty" yaml:"sort_kind"`
}

// CharacteristicOption is one selectable value of a characteristic.
type CharacteristicOption struct {
	ID       int64  `json:"id" yaml:"id"`
	ParentID int64  `json:"parent_id" yaml:"parent_id"`
	Name     string `json:"name" yaml:"name"`
}

// Labels holds the flat label dictionaries.
type Labels struct {
	Brands              []Brand                `json:"brands" yaml:"brands"`
	CharsGeneral        []CharacteristicDef    `json:"chars_general" yaml:"chars_general"`
	CharsGeneralOptions []CharacteristicOption `json:"chars_general_options" yaml:"chars_general_options"`
	CharsExtra          []CharacteristicDef    `json:"chars_extra" yaml:"chars_extra"`
	CharsExtraOptions   []CharacteristicOption `json:"chars_extra_options" yaml:"chars_extra_options"`
}

// Entity identifies one independently loaded collection.
type Entity int

const (
	EntityProducts Entity = iota
	EntityCategories
	EntityBrands
	EntityGeneralDefinitions
	EntityGeneralOptions
	EntityExtraDefinitions
	EntityExtraOptions

	entityCount
)

// Entities lists every entity in load order.
func Entities() []Entity {
	out := make([]Entity, 0, entityCount)
	for e := Entity(0); e < entityCount; e++ {
		out = append(out, e)
	}
	return out
}

// String returns the metric/log label of the entity.
func (e Entity) String() string {
	switch e {
	case EntityProducts:
		return "products"
	case EntityCategories:
		return "categories"
	case EntityBrands:
		return "brands"
	case EntityGeneralDefinitions:
		return "chars_general"
	case EntityGeneralOptions:
		return "chars_general_options"
	case EntityExtraDefinitions:
		return "chars_extra"
	case EntityExtraOptions:
		return "chars_extra_options"
	default:
		return "unknown"
	}
}
