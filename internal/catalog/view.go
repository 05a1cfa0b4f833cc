package catalog

import (
	"math"

	"github.com/Pesokrava/storefront/internal/domain"
)

// LowStockThreshold is the stock level below which remaining units are shown
const LowStockThreshold = 10

// Badge labels shown on product cards
const (
	BadgeNew        = "NEW"
	BadgeLimited    = "LIMITED"
	BadgeBestseller = "BESTSELLER"
)

// DiscountPercent returns round((originalPrice - price) / originalPrice * 100).
// The second result is false when the product has no meaningful original price.
func DiscountPercent(p domain.Product) (int, bool) {
	if p.OriginalPrice == nil {
		return 0, false
	}
	original := *p.OriginalPrice
	if original <= 0 || original <= p.Price {
		return 0, false
	}
	return int(math.Round((original - p.Price) / original * 100)), true
}

// StockStatus classifies availability
func StockStatus(p domain.Product) domain.StockStatus {
	switch {
	case p.Stock <= 0:
		return domain.StockSoldOut
	case p.Stock < LowStockThreshold:
		return domain.StockLow
	default:
		return domain.StockInStock
	}
}

// Badges returns the card badges in display order
func Badges(p domain.Product) []string {
	badges := make([]string, 0, 3)
	if p.IsNew {
		badges = append(badges, BadgeNew)
	}
	if p.IsLimited {
		badges = append(badges, BadgeLimited)
	}
	if p.IsBestseller {
		badges = append(badges, BadgeBestseller)
	}
	return badges
}

// ProductView is a product decorated with its display values
type ProductView struct {
	domain.Product
	DiscountPercent *int               `json:"discount_percent,omitempty"`
	StockStatus     domain.StockStatus `json:"stock_status"`
	Badges          []string           `json:"badges"`
}

// NewView decorates a product for display
func NewView(p domain.Product) ProductView {
	v := ProductView{
		Product:     p,
		StockStatus: StockStatus(p),
		Badges:      Badges(p),
	}
	if pct, ok := DiscountPercent(p); ok {
		v.DiscountPercent = &pct
	}
	return v
}

// NewViews decorates every product, preserving order
func NewViews(products []domain.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = NewView(p)
	}
	return views
}
