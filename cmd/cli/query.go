package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/handlers"
)

// queryFlags are the filter flags shared by filter, meta and export.
type queryFlags struct {
	query string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.query, "query", "q", "",
		`filter in storefront query syntax, e.g. "subcategory=5&brands[]=1&sort=price_asc"`)
}

// request parses the query the same way the HTTP API does.
func (q *queryFlags) request() (filter.Request, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(q.query, "?"))
	if err != nil {
		return filter.Request{}, fmt.Errorf("invalid query: %w", err)
	}
	return handlers.ParseFilterRequest(values, handlers.QueryOptions{})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
