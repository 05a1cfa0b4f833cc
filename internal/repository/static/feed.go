// Package static serves the catalog from a YAML feed file, falling back to
// the feed embedded in the binary.
package static

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/validator"
)

//go:embed seed.yaml
var seedFeed []byte

type feed struct {
	Products []domain.Product `yaml:"products"`
}

// FeedRepository implements domain.ProductRepository over a YAML feed
type FeedRepository struct {
	path string
}

// NewFeedRepository creates a feed repository reading path on every load.
// An empty path serves the embedded seed feed.
func NewFeedRepository(path string) *FeedRepository {
	return &FeedRepository{path: path}
}

// Path returns the feed file path, empty for the embedded feed
func (r *FeedRepository) Path() string {
	return r.path
}

// ListAll reads and validates the whole feed
func (r *FeedRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := seedFeed
	if r.path != "" {
		var err error
		data, err = os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog feed %s: %w", r.path, err)
		}
	}

	return ParseFeed(data)
}

// SeedProducts returns the embedded feed
func SeedProducts() ([]domain.Product, error) {
	return ParseFeed(seedFeed)
}

// ParseFeed decodes a YAML feed and validates every product. Duplicate ids
// are rejected since product ids key cart lines.
func ParseFeed(data []byte) ([]domain.Product, error) {
	var f feed
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog feed: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Products))
	for i, p := range f.Products {
		if err := validator.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: product %d (%q): %v", domain.ErrInvalidInput, i, p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return f.Products, nil
}
