package main

import (
	"github.com/spf13/cobra"
)

var metaQuery queryFlags

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Print facet counts for a filter",
	Long: `Compute the filter metadata of a storefront filter: the number of matching
products and, for every facet value, how many products would match with that
value selected. The output is the GET /api/products/filter-meta body.`,
	Example: `  catalog meta --fixture ./config/catalog.example.yaml -q "subcategory=5&brands[]=1"`,
	Args:    cobra.NoArgs,
	RunE:    runMeta,
}

func init() {
	rootCmd.AddCommand(metaCmd)
	metaQuery.register(metaCmd)
}

func runMeta(cmd *cobra.Command, args []string) error {
	req, err := metaQuery.request()
	if err != nil {
		return err
	}

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	meta, err := svc.FilterMeta(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), meta)
}
