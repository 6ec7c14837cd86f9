package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// CatalogSource reads catalog records from Postgres. Each fetch is a
// single independent query.
type CatalogSource struct {
	pool *pgxpool.Pool
}

// NewCatalogSource creates a source over pool.
func NewCatalogSource(pool *pgxpool.Pool) *CatalogSource {
	return &CatalogSource{pool: pool}
}

var _ catalog.Source = (*CatalogSource)(nil)

// FetchProducts returns every product row in id order.
func (s *CatalogSource) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, slug, group_id, created_at, category_id, subcategory_id, subsubcategory_id,
		       name, article, brand_id, model, original_price, final_price, stock, images, rating,
		       chars_general, chars_extra, package, description, shipping_options, tags
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []catalog.RawProduct{}
	for rows.Next() {
		var p catalog.RawProduct
		var description *string
		var images, charsGeneral, charsExtra, pkg, shipping, tags []byte
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.GroupID, &p.CreatedAt, &p.CategoryID, &p.SubcategoryID, &p.SubsubcategoryID,
			&p.Name, &p.Article, &p.BrandID, &p.Model, &p.OriginalPrice, &p.FinalPrice, &p.Stock, &images, &p.Rating,
			&charsGeneral, &charsExtra, &pkg, &description, &shipping, &tags,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if description != nil {
			p.Description = *description
		}

		for _, col := range []struct {
			name string
			raw  []byte
			dst  *any
		}{
			{"images", images, &p.Images},
			{"chars_general", charsGeneral, &p.CharsGeneral},
			{"chars_extra", charsExtra, &p.CharsExtra},
			{"package", pkg, &p.Package},
			{"shipping_options", shipping, &p.ShippingOptions},
			{"tags", tags, &p.Tags},
		} {
			if err := decodeJSON(col.raw, col.dst); err != nil {
				return nil, fmt.Errorf("product %d: decode %s: %w", p.ID, col.name, err)
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// FetchCategories assembles the category tree from its three tables.
func (s *CatalogSource) FetchCategories(ctx context.Context) ([]catalog.Category, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin category read: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	type leaf struct {
		parent int64
		sub    catalog.Subsubcategory
	}
	leaves, err := collect(ctx, tx, `SELECT id, subcategory_id, slug, name, COALESCE(image, '') FROM subsubcategories ORDER BY id`,
		func(row pgx.Rows) (leaf, error) {
			var l leaf
			err := row.Scan(&l.sub.ID, &l.parent, &l.sub.Slug, &l.sub.Name, &l.sub.Image)
			return l, err
		})
	if err != nil {
		return nil, err
	}

	type mid struct {
		parent int64
		sub    catalog.Subcategory
	}
	mids, err := collect(ctx, tx, `SELECT id, category_id, slug, name, COALESCE(image, '') FROM subcategories ORDER BY id`,
		func(row pgx.Rows) (mid, error) {
			var m mid
			err := row.Scan(&m.sub.ID, &m.parent, &m.sub.Slug, &m.sub.Name, &m.sub.Image)
			return m, err
		})
	if err != nil {
		return nil, err
	}

	roots, err := collect(ctx, tx, `SELECT id, slug, name, COALESCE(image, '') FROM categories ORDER BY id`,
		func(row pgx.Rows) (catalog.Category, error) {
			var c catalog.Category
			err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Image)
			return c, err
		})
	if err != nil {
		return nil, err
	}

	leavesBySub := make(map[int64][]catalog.Subsubcategory)
	for _, l := range leaves {
		leavesBySub[l.parent] = append(leavesBySub[l.parent], l.sub)
	}
	subsByCat := make(map[int64][]catalog.Subcategory)
	for _, m := range mids {
		m.sub.Subsubcategories = leavesBySub[m.sub.ID]
		subsByCat[m.parent] = append(subsByCat[m.parent], m.sub)
	}
	for i := range roots {
		roots[i].Subcategories = subsByCat[roots[i].ID]
	}
	return roots, nil
}

// FetchBrands returns every brand.
func (s *CatalogSource) FetchBrands(ctx context.Context) ([]catalog.Brand, error) {
	return collect(ctx, s.pool, `SELECT id, name FROM brands ORDER BY id`,
		func(row pgx.Rows) (catalog.Brand, error) {
			var b catalog.Brand
			err := row.Scan(&b.ID, &b.Name)
			return b, err
		})
}

// FetchGeneralDefinitions returns the filterable characteristic definitions.
func (s *CatalogSource) FetchGeneralDefinitions(ctx context.Context) ([]catalog.CharacteristicDef, error) {
	return s.definitions(ctx, "chars_general")
}

// FetchGeneralOptions returns the options of the filterable characteristics.
func (s *CatalogSource) FetchGeneralOptions(ctx context.Context) ([]catalog.CharacteristicOption, error) {
	return s.options(ctx, "chars_general_options")
}

// FetchExtraDefinitions returns the display-only characteristic definitions.
func (s *CatalogSource) FetchExtraDefinitions(ctx context.Context) ([]catalog.CharacteristicDef, error) {
	return s.definitions(ctx, "chars_extra")
}

// FetchExtraOptions returns the options of the display-only characteristics.
func (s *CatalogSource) FetchExtraOptions(ctx context.Context) ([]catalog.CharacteristicOption, error) {
	return s.options(ctx, "chars_extra_options")
}

func (s *CatalogSource) definitions(ctx context.Context, table string) ([]catalog.CharacteristicDef, error) {
	// table is one of the fixed names above
	query := `SELECT id, name, value, COALESCE(sort_kind, '') FROM ` + table + ` ORDER BY id`
	return collect(ctx, s.pool, query, func(row pgx.Rows) (catalog.CharacteristicDef, error) {
		var d catalog.CharacteristicDef
		err := row.Scan(&d.ID, &d.Name, &d.Value, &d.SortKind)
		return d, err
	})
}

func (s *CatalogSource) options(ctx context.Context, table string) ([]catalog.CharacteristicOption, error) {
	query := `SELECT id, parent_id, name FROM ` + table + ` ORDER BY id`
	return collect(ctx, s.pool, query, func(row pgx.Rows) (catalog.CharacteristicOption, error) {
		var o catalog.CharacteristicOption
		err := row.Scan(&o.ID, &o.ParentID, &o.Name)
		return o, err
	})
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// collect runs query and scans every row with scan.
func collect[T any](ctx context.Context, q querier, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

func decodeJSON(raw []byte, dst *any) error {
	if len(raw) == 0 {
		*dst = nil
		return nil
	}
	return json.Unmarshal(raw, dst)
}
