package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
)

// Line is a cart line as presented to the shopper
type Line struct {
	domain.LineItem
	Subtotal decimal.Decimal `json:"subtotal"`
	Selected bool            `json:"selected"`
}

// Snapshot is a consistent view of the cart and its derived values
type Snapshot struct {
	Lines         []Line          `json:"items"`
	IsOpen        bool            `json:"is_open"`
	TotalItems    int             `json:"total_items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	SelectedCount int             `json:"selected_count"`
	SelectedTotal decimal.Decimal `json:"selected_total"`
}

// IsEmpty reports whether the cart has no lines
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Line returns the line with the given key
func (s Snapshot) Line(key domain.LineKey) (Line, bool) {
	for _, l := range s.Lines {
		if l.LineKey == key {
			return l, true
		}
	}
	return Line{}, false
}
