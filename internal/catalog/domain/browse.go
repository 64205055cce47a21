package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type PriceRange string

const (
	PriceUnder200 PriceRange = "under-200"
	Price200To500 PriceRange = "200-500"
	Price500To800 PriceRange = "500-800"
	PriceOver800  PriceRange = "over-800"
)

var (
	d200 = decimal.NewFromInt(200)
	d500 = decimal.NewFromInt(500)
	d800 = decimal.NewFromInt(800)
)

func ParsePriceRange(s string) (PriceRange, bool) {
	r := PriceRange(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case PriceUnder200, Price200To500, Price500To800, PriceOver800:
		return r, true
	}
	return "", false
}

// Contains treats the inner bands as closed, so 500 falls in both 200-500 and 500-800.
func (r PriceRange) Contains(p decimal.Decimal) bool {
	switch r {
	case PriceUnder200:
		return p.LessThan(d200)
	case Price200To500:
		return p.GreaterThanOrEqual(d200) && p.LessThanOrEqual(d500)
	case Price500To800:
		return p.GreaterThanOrEqual(d500) && p.LessThanOrEqual(d800)
	case PriceOver800:
		return p.GreaterThan(d800)
	}
	return false
}

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortNewest    SortOrder = "newest"

	// SortBestSelling orders by review count, highest first.
	SortBestSelling SortOrder = "best-selling"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case "":
		return SortFeatured, true
	case SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortBestSelling:
		return o, true
	case "popular":
		return SortBestSelling, true
	}
	return "", false
}

// Filter narrows a product listing. Empty dimensions match everything; values
// within one dimension are OR-ed and dimensions are AND-ed.
type Filter struct {
	Category    string
	Brands      []string
	Storages    []string
	PriceRanges []PriceRange
	Sort        SortOrder
}

func (f Filter) Match(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.Storages) > 0 && (p.Storage == nil || !slices.Contains(f.Storages, *p.Storage)) {
		return false
	}
	if len(f.PriceRanges) > 0 && !slices.ContainsFunc(f.PriceRanges, func(r PriceRange) bool {
		return r.Contains(p.Price)
	}) {
		return false
	}
	return true
}

// Facets lists the distinct filter values present in the catalog, in first-seen order.
type Facets struct {
	Brands   []string
	Storages []string
}
