package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/app"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/export"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storage"
)

var (
	exportQuery  queryFlags
	exportOut    string
	exportKey    string
	exportNoMeta bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered products to XLSX",
	Long: `Export every product matching a storefront filter, unpaginated, to an XLSX
workbook. A second sheet lists the facet counts unless --no-facets is set.

The workbook is written to --out, or stored under --key in the configured
storage when --out is not given.`,
	Example: `  catalog export -q "subcategory=5" --out lamps.xlsx
  catalog export -q "brands[]=1" --key exports/brand-1.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportQuery.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write the workbook to this file")
	exportCmd.Flags().StringVar(&exportKey, "key", "exports/products.xlsx", "storage key used when --out is not set")
	exportCmd.Flags().BoolVar(&exportNoMeta, "no-facets", false, "omit the facet counts sheet")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	req, err := exportQuery.request()
	if err != nil {
		return err
	}

	svc, closeFn, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	views, err := svc.Listing(ctx, req)
	if err != nil {
		return err
	}
	var content []byte
	if exportNoMeta {
		content, err = export.Workbook(views, nil)
	} else {
		meta, metaErr := svc.FilterMeta(ctx, req)
		if metaErr != nil {
			return metaErr
		}
		content, err = export.Workbook(views, &meta)
	}
	if err != nil {
		return err
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		logger.Info().Str("file", exportOut).Int("products", len(views)).Msg("Export written")
		return nil
	}

	if cfg == nil {
		return fmt.Errorf("--out is required without a valid config")
	}
	store, err := app.OpenStorage(cfg.Storage)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, exportKey, content, &storage.Metadata{
		ContentType: export.ContentType,
		CreatedBy:   "catalog-cli",
		Custom:      map[string]string{"query": exportQuery.query},
	}); err != nil {
		return fmt.Errorf("store export: %w", err)
	}
	logger.Info().
		Str("key", exportKey).
		Str("base_path", store.BasePath()).
		Int("products", len(views)).
		Msg("Export stored")
	return nil
}
