package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/storefront/internal/domain"
)

const catalogKey = "catalog:products"

// CatalogCache keeps a read-through copy of the catalog feed in Redis
type CatalogCache struct {
	client     redis.Cmdable
	catalogTTL time.Duration
}

// NewCatalogCache creates a new Redis catalog cache
func NewCatalogCache(client redis.Cmdable, catalogTTL time.Duration) *CatalogCache {
	return &CatalogCache{
		client:     client,
		catalogTTL: catalogTTL,
	}
}

// GetCatalog retrieves the cached feed. Returns domain.ErrNotFound on a miss.
func (c *CatalogCache) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	val, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(val, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// SetCatalog stores the feed with the configured TTL
func (c *CatalogCache) SetCatalog(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, catalogKey, data, c.catalogTTL).Err()
}

// InvalidateCatalog removes the cached feed
func (c *CatalogCache) InvalidateCatalog(ctx context.Context) error {
	err := c.client.Del(ctx, catalogKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
