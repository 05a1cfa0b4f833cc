package catalog

import "github.com/Pesokrava/storefront/internal/domain"

// DeriveFacets collects the filter options of a product collection: distinct
// colors and sizes in first-seen order, the observed price bounds and stock
// counts. Callers pass the unfiltered collection so options never shrink as
// filters narrow the results.
func DeriveFacets(products []domain.Product) domain.Facets {
	facets := domain.Facets{
		Colors: make([]string, 0),
		Sizes:  make([]string, 0),
	}

	seenColors := make(map[string]struct{})
	seenSizes := make(map[string]struct{})

	for i, p := range products {
		for _, c := range p.Colors {
			if _, ok := seenColors[c]; !ok {
				seenColors[c] = struct{}{}
				facets.Colors = append(facets.Colors, c)
			}
		}
		for _, s := range p.Sizes {
			if _, ok := seenSizes[s]; !ok {
				seenSizes[s] = struct{}{}
				facets.Sizes = append(facets.Sizes, s)
			}
		}

		if i == 0 || p.Price < facets.PriceRange.Min {
			facets.PriceRange.Min = p.Price
		}
		if i == 0 || p.Price > facets.PriceRange.Max {
			facets.PriceRange.Max = p.Price
		}

		if p.InStock() {
			facets.InStock++
		} else {
			facets.OutOfStock++
		}
	}

	return facets
}
