package handlers

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
)

// ValidationError reports a malformed query parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// QueryOptions controls request parsing.
type QueryOptions struct {
	// RequireSubcategory rejects requests without a subcategory.
	RequireSubcategory bool
}

var characteristicParam = regexp.MustCompile(`^characteristics\[([^\[\]]+)\](\[\d*\])?$`)

// ParseFilterRequest converts storefront query parameters into a filter
// request. Absent parameters stay unconstrained. Set parameters accept
// repeated values, bracketed keys and comma separated lists.
func ParseFilterRequest(q url.Values, opts QueryOptions) (filter.Request, error) {
	var req filter.Request
	var err error

	if req.Subcategory, err = optionalID(q, "subcategory"); err != nil {
		return filter.Request{}, err
	}
	if opts.RequireSubcategory && req.Subcategory == nil {
		return filter.Request{}, &ValidationError{Field: "subcategory", Reason: "required"}
	}
	if req.Subsubcategory, err = optionalID(q, "subsubcategory"); err != nil {
		return filter.Request{}, err
	}
	if req.Subsubcategories, err = idSet(q, "subsubcategories"); err != nil {
		return filter.Request{}, err
	}
	if req.Brands, err = idSet(q, "brands"); err != nil {
		return filter.Request{}, err
	}
	if req.MinPrice, err = optionalPrice(q, "min_price"); err != nil {
		return filter.Request{}, err
	}
	if req.MaxPrice, err = optionalPrice(q, "max_price"); err != nil {
		return filter.Request{}, err
	}
	req.Rating = truthy(q.Get("rating"))
	if req.Characteristics, err = characteristics(q); err != nil {
		return filter.Request{}, err
	}

	req.Sort = strings.TrimSpace(q.Get("sort"))

	req.Page = 1
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Request{}, &ValidationError{Field: "page", Value: raw, Reason: "not an integer"}
		}
		if page > 1 {
			req.Page = page
		}
	}

	return req, nil
}

func optionalID(q url.Values, field string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ValidationError{Field: field, Value: raw, Reason: "not an integer id"}
	}
	return &id, nil
}

func optionalPrice(q url.Values, field string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	return &v, nil
}

// idSet collects the values of field and field[]. It returns nil when the
// parameter carries no ids.
func idSet(q url.Values, field string) ([]int64, error) {
	values := append(append([]string{}, q[field]...), q[field+"[]"]...)
	return parseIDs(field, values)
}

func parseIDs(field string, values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			id, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, &ValidationError{Field: field, Value: tok, Reason: "not an integer id"}
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// characteristics collects characteristics[slug], characteristics[slug][]
// and characteristics[slug][n] parameters.
func characteristics(q url.Values) (map[string][]int64, error) {
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out map[string][]int64
	for _, key := range keys {
		m := characteristicParam.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		slug := strings.TrimSpace(m[1])
		ids, err := parseIDs("characteristics["+slug+"]", q[key])
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string][]int64)
		}
		out[slug] = append(out[slug], ids...)
	}
	return out, nil
}

// truthy interprets a presence flag. Empty, "0", "false", "no" and "off"
// are false; any other value is true.
func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
