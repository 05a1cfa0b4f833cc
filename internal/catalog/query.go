// Package catalog filters, sorts and derives facets over a product
// collection. Every function is pure: inputs are never mutated and no state
// is kept between calls, so they are safe for concurrent use.
package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Pesokrava/storefront/internal/domain"
)

type options struct {
	locale language.Tag
}

// Option configures a query
type Option func(*options)

// WithLocale sets the locale used when sorting by name
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// Query returns the products that satisfy spec, ordered by spec.SortKey.
// Ties keep their relative order from the input. An empty result is valid.
func Query(products []domain.Product, spec domain.FilterSpec, opts ...Option) []domain.Product {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	colors := toSet(spec.Colors)
	sizes := toSet(spec.Sizes)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec, colors, sizes) {
			result = append(result, p)
		}
	}

	sortProducts(result, spec.SortKey, o.locale)
	return result
}

// Matches reports whether a single product satisfies spec
func Matches(p domain.Product, spec domain.FilterSpec) bool {
	return matches(p, spec, toSet(spec.Colors), toSet(spec.Sizes))
}

func matches(p domain.Product, spec domain.FilterSpec, colors, sizes map[string]struct{}) bool {
	if len(colors) > 0 && !anyIn(p.Colors, colors) {
		return false
	}
	if len(sizes) > 0 && !anyIn(p.Sizes, sizes) {
		return false
	}
	if !spec.PriceRange.Contains(p.Price) {
		return false
	}
	if spec.OnlyInStock && p.Stock == 0 {
		return false
	}
	if spec.OnlyNew && !p.IsNew {
		return false
	}
	if spec.OnlyLimited && !p.IsLimited {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, key domain.SortKey, locale language.Tag) {
	var cmpFn func(a, b domain.Product) int

	switch key {
	case domain.SortByPriceAsc:
		cmpFn = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortByPriceDesc:
		cmpFn = func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortByRatingDesc:
		cmpFn = func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		// collate.Collator keeps internal buffers and must not be shared
		col := collate.New(locale)
		cmpFn = func(a, b domain.Product) int { return col.CompareString(a.Name, b.Name) }
	}

	slices.SortStableFunc(products, cmpFn)
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// ByCategory returns the products of one category in feed order
func ByCategory(products []domain.Product, category domain.Category) []domain.Product {
	result := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// FindByID returns the product with the given id
func FindByID(products []domain.Product, id string) (domain.Product, bool) {
	i := slices.IndexFunc(products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, false
	}
	return products[i], true
}
