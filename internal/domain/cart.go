package domain

import "fmt"

// LineKey is the composite identity of a cart line
type LineKey struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// String renders the key as productID/size/color
func (k LineKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.ProductID, k.Size, k.Color)
}

// LineItem is one product variant in the cart. Name, Price and Image are
// captured when the line is first added.
type LineItem struct {
	LineKey
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}
