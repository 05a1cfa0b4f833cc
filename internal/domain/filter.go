package domain

import "strings"

// SortKey selects the ordering of a catalog query
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPriceAsc   SortKey = "price-asc"
	SortByPriceDesc  SortKey = "price-desc"
	SortByRatingDesc SortKey = "rating-desc"
)

// ParseSortKey maps a sort token to a SortKey. The storefront's older tokens
// (price-low, price-high, rating) are accepted as aliases.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, true
	case "price-asc", "price-low":
		return SortByPriceAsc, true
	case "price-desc", "price-high":
		return SortByPriceDesc, true
	case "rating-desc", "rating":
		return SortByRatingDesc, true
	default:
		return "", false
	}
}

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies in [Min, Max]
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

// FilterSpec describes a catalog query. Empty Colors or Sizes place no
// constraint on that facet.
type FilterSpec struct {
	Colors      []string   `json:"colors"`
	Sizes       []string   `json:"sizes"`
	PriceRange  PriceRange `json:"price_range"`
	SortKey     SortKey    `json:"sort"`
	OnlyInStock bool       `json:"only_in_stock"`
	OnlyNew     bool       `json:"only_new"`
	OnlyLimited bool       `json:"only_limited"`
}

// DefaultFilterSpec is the storefront's initial filter state
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		PriceRange: PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
		SortKey:    SortByName,
	}
}

// Facets are the filter options available for a product collection
type Facets struct {
	Colors     []string   `json:"colors"`
	Sizes      []string   `json:"sizes"`
	PriceRange PriceRange `json:"price_range"`
	InStock    int        `json:"in_stock"`
	OutOfStock int        `json:"out_of_stock"`
}

// StockStatus is the availability label shown for a product
type StockStatus string

const (
	StockInStock StockStatus = "in_stock"
	StockLow     StockStatus = "low_stock"
	StockSoldOut StockStatus = "sold_out"
)
