package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/storefront/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Price         float64         `db:"price"`
	OriginalPrice sql.NullFloat64 `db:"original_price"`
	Rating        float64         `db:"rating"`
	Reviews       int             `db:"reviews"`
	Image         string          `db:"image"`
	Colors        pq.StringArray  `db:"colors"`
	Sizes         pq.StringArray  `db:"sizes"`
	Category      string          `db:"category"`
	IsNew         bool            `db:"is_new"`
	IsLimited     bool            `db:"is_limited"`
	IsBestseller  bool            `db:"is_bestseller"`
	Stock         int             `db:"stock"`
}

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Rating:       r.Rating,
		Reviews:      r.Reviews,
		Image:        r.Image,
		Colors:       []string(r.Colors),
		Sizes:        []string(r.Sizes),
		Category:     domain.Category(r.Category),
		IsNew:        r.IsNew,
		IsLimited:    r.IsLimited,
		IsBestseller: r.IsBestseller,
		Stock:        r.Stock,
	}
	if r.OriginalPrice.Valid {
		original := r.OriginalPrice.Float64
		p.OriginalPrice = &original
	}
	return p
}

// ListAll retrieves the full catalog in feed order
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, original_price, rating, reviews, image,
		       colors, sizes, category, is_new, is_limited, is_bestseller, stock
		FROM products
		ORDER BY position, id
	`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}

	return products, nil
}

// Count returns the number of products in the catalog
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM products`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}

	return count, nil
}

// ReplaceAll swaps the catalog for products in one transaction. Slice order
// becomes the feed order.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	query := `
		INSERT INTO products (
			id, position, name, description, price, original_price, rating, reviews, image,
			colors, sizes, category, is_new, is_limited, is_bestseller, stock, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
	`

	now := time.Now()
	for i, p := range products {
		var original sql.NullFloat64
		if p.OriginalPrice != nil {
			original = sql.NullFloat64{Float64: *p.OriginalPrice, Valid: true}
		}

		_, err := tx.ExecContext(
			ctx,
			query,
			p.ID,
			i,
			p.Name,
			p.Description,
			p.Price,
			original,
			p.Rating,
			p.Reviews,
			p.Image,
			pq.Array(p.Colors),
			pq.Array(p.Sizes),
			string(p.Category),
			p.IsNew,
			p.IsLimited,
			p.IsBestseller,
			p.Stock,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
