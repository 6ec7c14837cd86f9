package filter

import (
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// leadingNumber returns the first number appearing in name.
func leadingNumber(name string) (float64, bool) {
	m := numberPattern.FindString(name)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// facetSorter orders facet values. A collator is not safe for concurrent
// use, so each aggregation creates its own sorter.
type facetSorter struct {
	col *collate.Collator
}

func newFacetSorter() *facetSorter {
	return &facetSorter{col: collate.New(language.English, collate.Loose)}
}

// sort orders items with zero counts last. Within each group items are
// ordered by name ignoring case and accents, or, for numeric facets, by the
// number in the name first; names without a number follow numbered ones.
// Remaining ties fall back to id.
func (s *facetSorter) sort(items []FacetItem, numeric bool) {
	var nums []float64
	var hasNum []bool
	if numeric {
		nums = make([]float64, len(items))
		hasNum = make([]bool, len(items))
		for i := range items {
			nums[i], hasNum[i] = leadingNumber(items[i].Name)
		}
	}

	sort.Sort(&facetOrder{items: items, nums: nums, hasNum: hasNum, numeric: numeric, col: s.col})
}

type facetOrder struct {
	items   []FacetItem
	nums    []float64
	hasNum  []bool
	numeric bool
	col     *collate.Collator
}

func (o *facetOrder) Len() int { return len(o.items) }

func (o *facetOrder) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	if o.numeric {
		o.nums[i], o.nums[j] = o.nums[j], o.nums[i]
		o.hasNum[i], o.hasNum[j] = o.hasNum[j], o.hasNum[i]
	}
}

func (o *facetOrder) Less(i, j int) bool {
	a, b := o.items[i], o.items[j]
	if (a.Count == 0) != (b.Count == 0) {
		return b.Count == 0
	}
	if o.numeric {
		if o.hasNum[i] != o.hasNum[j] {
			return o.hasNum[i]
		}
		if o.hasNum[i] && o.nums[i] != o.nums[j] {
			return o.nums[i] < o.nums[j]
		}
	}
	if c := o.col.CompareString(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}
