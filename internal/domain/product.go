package domain

import "context"

// Category is the fixed set of storefront collections a product belongs to
type Category string

const (
	CategoryStreetwear  Category = "streetwear"
	CategoryDrops       Category = "drops"
	CategoryAccessories Category = "accessories"
)

// Categories lists every valid category in display order
var Categories = []Category{CategoryStreetwear, CategoryDrops, CategoryAccessories}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is an immutable catalog entry supplied by the catalog feed
type Product struct {
	ID            string   `json:"id" yaml:"id" validate:"required,max=64"`
	Name          string   `json:"name" yaml:"name" validate:"required,min=1,max=255"`
	Description   string   `json:"description" yaml:"description"`
	Price         float64  `json:"price" yaml:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price,omitempty" yaml:"original_price,omitempty" validate:"omitempty,gt=0"`
	Rating        float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" yaml:"reviews" validate:"gte=0"`
	Image         string   `json:"image" yaml:"image"`
	Colors        []string `json:"colors" yaml:"colors" validate:"required,min=1,dive,required"`
	Sizes         []string `json:"sizes" yaml:"sizes" validate:"required,min=1,dive,required"`
	Category      Category `json:"category" yaml:"category" validate:"required,oneof=streetwear drops accessories"`
	IsNew         bool     `json:"is_new" yaml:"is_new"`
	IsLimited     bool     `json:"is_limited" yaml:"is_limited"`
	IsBestseller  bool     `json:"is_bestseller" yaml:"is_bestseller"`
	Stock         int      `json:"stock" yaml:"stock" validate:"gte=0"`
}

// HasColor reports whether the product is offered in the given color
func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// HasSize reports whether the product is offered in the given size
func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// InStock reports whether the product can be purchased
func (p Product) InStock() bool {
	return p.Stock > 0
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ProductRepository is the read-only catalog feed
type ProductRepository interface {
	// ListAll returns the full catalog in feed order
	ListAll(ctx context.Context) ([]Product, error)
}
