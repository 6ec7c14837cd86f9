// Package seed creates the catalog tables and loads fixture data into them.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/database"
)

const batchSize = 500

// Result counts the rows written per table.
type Result struct {
	Categories       int `json:"categories"`
	Subcategories    int `json:"subcategories"`
	Subsubcategories int `json:"subsubcategories"`
	Brands           int `json:"brands"`
	GeneralDefs      int `json:"chars_general"`
	GeneralOptions   int `json:"chars_general_options"`
	ExtraDefs        int `json:"chars_extra"`
	ExtraOptions     int `json:"chars_extra_options"`
	Products         int `json:"products"`
}

// Open connects gorm to the catalog database.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(database.Models()...); err != nil {
		return fmt.Errorf("migrate catalog tables: %w", err)
	}
	return nil
}

// Apply upserts every record of f in a single transaction.
func Apply(ctx context.Context, db *gorm.DB, f *catalog.Fixture) (Result, error) {
	rows, err := buildRows(f)
	if err != nil {
		return Result{}, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range rows.tables() {
			if table.count == 0 {
				continue
			}
			res := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(table.rows, batchSize)
			if res.Error != nil {
				return fmt.Errorf("seed %s: %w", table.name, res.Error)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := rows.result()
	log.Info().
		Int("categories", result.Categories).
		Int("brands", result.Brands).
		Int("products", result.Products).
		Msg("Catalog seeded")
	return result, nil
}

type fixtureRows struct {
	categories       []database.CategoryRow
	subcategories    []database.SubcategoryRow
	subsubcategories []database.SubsubcategoryRow
	brands           []database.BrandRow
	generalDefs      []database.GeneralCharacteristicRow
	generalOptions   []database.GeneralOptionRow
	extraDefs        []database.ExtraCharacteristicRow
	extraOptions     []database.ExtraOptionRow
	products         []database.ProductRow
}

type tableRows struct {
	name  string
	rows  any
	count int
}

func (r *fixtureRows) tables() []tableRows {
	return []tableRows{
		{"categories", &r.categories, len(r.categories)},
		{"subcategories", &r.subcategories, len(r.subcategories)},
		{"subsubcategories", &r.subsubcategories, len(r.subsubcategories)},
		{"brands", &r.brands, len(r.brands)},
		{"chars_general", &r.generalDefs, len(r.generalDefs)},
		{"chars_general_options", &r.generalOptions, len(r.generalOptions)},
		{"chars_extra", &r.extraDefs, len(r.extraDefs)},
		{"chars_extra_options", &r.extraOptions, len(r.extraOptions)},
		{"products", &r.products, len(r.products)},
	}
}

func (r *fixtureRows) result() Result {
	return Result{
		Categories:       len(r.categories),
		Subcategories:    len(r.subcategories),
		Subsubcategories: len(r.subsubcategories),
		Brands:           len(r.brands),
		GeneralDefs:      len(r.generalDefs),
		GeneralOptions:   len(r.generalOptions),
		ExtraDefs:        len(r.extraDefs),
		ExtraOptions:     len(r.extraOptions),
		Products:         len(r.products),
	}
}

func buildRows(f *catalog.Fixture) (*fixtureRows, error) {
	r := &fixtureRows{}
	for _, c := range f.Categories {
		r.categories = append(r.categories, database.CategoryRow{ID: c.ID, Slug: c.Slug, Name: c.Name, Image: c.Image})
		for _, s := range c.Subcategories {
			r.subcategories = append(r.subcategories, database.SubcategoryRow{
				ID: s.ID, CategoryID: c.ID, Slug: s.Slug, Name: s.Name, Image: s.Image,
			})
			for _, ss := range s.Subsubcategories {
				r.subsubcategories = append(r.subsubcategories, database.SubsubcategoryRow{
					ID: ss.ID, SubcategoryID: s.ID, Slug: ss.Slug, Name: ss.Name, Image: ss.Image,
				})
			}
		}
	}
	for _, b := range f.Brands {
		r.brands = append(r.brands, database.BrandRow{ID: b.ID, Name: b.Name})
	}
	for _, d := range f.CharsGeneral {
		r.generalDefs = append(r.generalDefs, database.GeneralCharacteristicRow{ID: d.ID, Name: d.Name, Value: d.Value, SortKind: d.SortKind})
	}
	for _, o := range f.CharsGeneralOptions {
		r.generalOptions = append(r.generalOptions, database.GeneralOptionRow{ID: o.ID, ParentID: o.ParentID, Name: o.Name})
	}
	for _, d := range f.CharsExtra {
		r.extraDefs = append(r.extraDefs, database.ExtraCharacteristicRow{ID: d.ID, Name: d.Name, Value: d.Value, SortKind: d.SortKind})
	}
	for _, o := range f.CharsExtraOptions {
		r.extraOptions = append(r.extraOptions, database.ExtraOptionRow{ID: o.ID, ParentID: o.ParentID, Name: o.Name})
	}
	for _, p := range f.Products {
		row, err := productRow(p)
		if err != nil {
			return nil, err
		}
		r.products = append(r.products, row)
	}
	return r, nil
}

// productRow keeps list and characteristic fields as written in the
// fixture; normalization happens when the catalog loads them.
func productRow(p catalog.RawProduct) (database.ProductRow, error) {
	row := database.ProductRow{
		ID:               p.ID,
		Slug:             p.Slug,
		GroupID:          p.GroupID,
		CreatedAt:        p.CreatedAt,
		CategoryID:       p.CategoryID,
		SubcategoryID:    p.SubcategoryID,
		SubsubcategoryID: p.SubsubcategoryID,
		Name:             p.Name,
		Article:          p.Article,
		BrandID:          p.BrandID,
		Model:            p.Model,
		OriginalPrice:    p.OriginalPrice,
		FinalPrice:       p.FinalPrice,
		Stock:            p.Stock,
		Rating:           p.Rating,
		Description:      p.Description,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	for _, col := range []struct {
		name string
		src  any
		dst  *datatypes.JSON
	}{
		{"images", p.Images, &row.Images},
		{"chars_general", p.CharsGeneral, &row.CharsGeneral},
		{"chars_extra", p.CharsExtra, &row.CharsExtra},
		{"package", p.Package, &row.Package},
		{"shipping_options", p.ShippingOptions, &row.ShippingOptions},
		{"tags", p.Tags, &row.Tags},
	} {
		if col.src == nil {
			continue
		}
		raw, err := json.Marshal(col.src)
		if err != nil {
			return database.ProductRow{}, fmt.Errorf("product %d: encode %s: %w", p.ID, col.name, err)
		}
		*col.dst = datatypes.JSON(raw)
	}
	return row, nil
}
