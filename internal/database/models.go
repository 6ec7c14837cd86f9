package database

import (
	"time"

	"gorm.io/datatypes"
)

// CategoryRow is a row of the categories table
type CategoryRow struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Slug  string `json:"slug" gorm:"not null;uniqueIndex"`
	Name  string `json:"name" gorm:"not null"`
	Image string `json:"image"`
}

func (CategoryRow) TableName() string { return "categories" }

// SubcategoryRow is a row of the subcategories table
type SubcategoryRow struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64  `json:"category_id" gorm:"not null;index"`
	Slug       string `json:"slug" gorm:"not null"`
	Name       string `json:"name" gorm:"not null"`
	Image      string `json:"image"`
}

func (SubcategoryRow) TableName() string { return "subcategories" }

// SubsubcategoryRow is a row of the subsubcategories table
type SubsubcategoryRow struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SubcategoryID int64  `json:"subcategory_id" gorm:"not null;index"`
	Slug          string `json:"slug" gorm:"not null"`
	Name          string `json:"name" gorm:"not null"`
	Image         string `json:"image"`
}

func (SubsubcategoryRow) TableName() string { return "subsubcategories" }

// BrandRow is a row of the brands table
type BrandRow struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"not null"`
}

func (BrandRow) TableName() string { return "brands" }

// GeneralCharacteristicRow defines a filterable characteristic
type GeneralCharacteristicRow struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name" gorm:"not null"`
	Value    string `json:"value" gorm:"not null;uniqueIndex"` // slug used in product keys
	SortKind string `json:"sort_kind"`                         // "numeric" or empty
}

func (GeneralCharacteristicRow) TableName() string { return "chars_general" }

// GeneralOptionRow is a selectable value of a general characteristic
type GeneralOptionRow struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ParentID int64  `json:"parent_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
}

func (GeneralOptionRow) TableName() string { return "chars_general_options" }

// ExtraCharacteristicRow defines a display-only characteristic
type ExtraCharacteristicRow struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name" gorm:"not null"`
	Value    string `json:"value" gorm:"not null;uniqueIndex"`
	SortKind string `json:"sort_kind"`
}

func (ExtraCharacteristicRow) TableName() string { return "chars_extra" }

// ExtraOptionRow is a value of an extra characteristic
type ExtraOptionRow struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ParentID int64  `json:"parent_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
}

func (ExtraOptionRow) TableName() string { return "chars_extra_options" }

// ProductRow is a row of the products table. List and characteristic
// columns hold JSON as written by the catalog admin.
type ProductRow struct {
	ID               int64          `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Slug             string         `json:"slug" gorm:"not null;uniqueIndex"`
	GroupID          *int64         `json:"group_id" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null"`
	CategoryID       int64          `json:"category_id" gorm:"not null"`
	SubcategoryID    int64          `json:"subcategory_id" gorm:"not null;index:idx_products_scope"`
	SubsubcategoryID int64          `json:"subsubcategory_id" gorm:"not null;index:idx_products_scope"`
	Name             string         `json:"name" gorm:"not null"`
	Article          int64          `json:"article" gorm:"not null"`
	BrandID          int64          `json:"brand_id" gorm:"not null;index"`
	Model            *string        `json:"model"`
	OriginalPrice    *float64       `json:"original_price" gorm:"type:double precision"`
	FinalPrice       float64        `json:"final_price" gorm:"type:double precision;not null"`
	Stock            int            `json:"stock" gorm:"not null;default:0"`
	Images           datatypes.JSON `json:"images" gorm:"type:jsonb"`
	Rating           float64        `json:"rating" gorm:"type:double precision;not null;default:0"`
	CharsGeneral     datatypes.JSON `json:"chars_general" gorm:"type:jsonb"`
	CharsExtra       datatypes.JSON `json:"chars_extra" gorm:"type:jsonb"`
	Package          datatypes.JSON `json:"package" gorm:"type:jsonb"`
	Description      string         `json:"description"`
	ShippingOptions  datatypes.JSON `json:"shipping_options" gorm:"type:jsonb"`
	Tags             datatypes.JSON `json:"tags" gorm:"type:jsonb"`
}

func (ProductRow) TableName() string { return "products" }

// Models lists every catalog table model in migration order.
func Models() []any {
	return []any{
		&CategoryRow{},
		&SubcategoryRow{},
		&SubsubcategoryRow{},
		&BrandRow{},
		&GeneralCharacteristicRow{},
		&GeneralOptionRow{},
		&ExtraCharacteristicRow{},
		&ExtraOptionRow{},
		&ProductRow{},
	}
}
