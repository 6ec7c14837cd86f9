package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	filterQuery  queryFlags
	filterOutput string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List one page of filtered products",
	Long: `Apply a storefront filter to the catalog and print the requested page of
products, exactly as GET /api/products/filter would return it.`,
	Example: `  catalog filter --fixture ./config/catalog.example.yaml -q "subcategory=5&sort=price_asc"
  catalog filter -q "brands[]=1&brands[]=2&page=2" --output json`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterQuery.register(filterCmd)
	filterCmd.Flags().StringVar(&filterOutput, "output", "table", "Output format: table or json")
}

func runFilter(cmd *cobra.Command, args []string) error {
	req, err := filterQuery.request()
	if err != nil {
		return err
	}

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	page, err := svc.Products(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if filterOutput == "json" {
		return writeJSON(out, page)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tSUBSUBCATEGORY\tPRICE\tRATING")
	for _, p := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.1f\n",
			p.ID, p.Name, p.Brand.Name, p.Subsubcategory.Name, p.FinalPrice, p.Rating)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPage %d of %d (%d products)\n", page.Page, page.TotalPages, page.Total)
	return nil
}
