package domain

import (
	"strconv"
	"strings"
)

// Criteria is the raw, untrusted search input as it arrives on the query
// string. Every field is optional; numeric fields are kept as strings so
// that parsing policy lives in one place (BuildFilter).
type Criteria struct {
	Destination string
	AdultCount  string
	ChildCount  string
	Facilities  []string
	Types       []string
	StarRating  string
	MaxPrice    string
	SortOption  string
	Page        string
}

// Filter is the typed, datastore-agnostic set of constraints produced
// from Criteria. Absent constraints are nil/empty and impose nothing;
// the storage layer translates the rest into its native query language.
type Filter struct {
	Destination   string // case-insensitive literal substring of city OR country
	MinAdultCount *int
	MinChildCount *int
	Facilities    []string // stored set must contain all of these
	Types         []string // stored type must be one of these
	StarRating    *int
	MaxPrice      *int
}

// BuildFilter translates Criteria into a Filter. It is pure and never
// fails: unparsable numeric input drops the criterion instead of
// producing a bogus constraint, and single facility/type values are
// accepted alongside lists.
func BuildFilter(c Criteria) Filter {
	var f Filter

	if d := strings.TrimSpace(c.Destination); d != "" {
		f.Destination = d
	}
	if n, ok := parseCount(c.AdultCount); ok {
		f.MinAdultCount = &n
	}
	if n, ok := parseCount(c.ChildCount); ok {
		f.MinChildCount = &n
	}
	f.Facilities = normalizeList(c.Facilities)
	f.Types = normalizeList(c.Types)
	if n, ok := parseCount(c.StarRating); ok {
		f.StarRating = &n
	}
	if n, ok := parseCount(c.MaxPrice); ok {
		f.MaxPrice = &n
	}
	return f
}

// parseCount accepts non-negative integers only; anything else means
// "criterion absent".
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func normalizeList(vs []string) []string {
	var out []string
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type SortOption string

// Wire values kept compatible with the frontend's sort selector.
const (
	SortDefault        SortOption = ""
	SortStarRatingDesc SortOption = "starRating"
	SortPriceAsc       SortOption = "pricePerNightAsc"
	SortPriceDesc      SortOption = "pricePerNightDesc"
)

// ParseSort maps unknown values to the datastore's natural order.
func ParseSort(s string) SortOption {
	switch SortOption(s) {
	case SortStarRatingDesc, SortPriceAsc, SortPriceDesc:
		return SortOption(s)
	}
	return SortDefault
}

const PageSize = 5

type PageQuery struct {
	Page int
	Size int
}

// NewPageQuery coerces the raw page value to a 1-based page number.
// Unparsable or sub-1 pages become page 1, never a negative offset.
func NewPageQuery(raw string) PageQuery {
	p := 1
	if n, ok := parseCount(raw); ok && n >= 1 {
		p = n
	}
	return PageQuery{Page: p, Size: PageSize}
}

func (p PageQuery) Skip() int64 { return int64(p.Page-1) * int64(p.Size) }

type HotelsPage struct {
	Items []Hotel
	Total int64
	Page  int
	Pages int
}

// PageCount is ceil(total/size); zero matches yield zero pages.
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
