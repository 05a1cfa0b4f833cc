package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"

	query "github.com/Pesokrava/storefront/internal/catalog"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// Cache defines the read-through cache for the catalog feed
type Cache interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	InvalidateCatalog(ctx context.Context) error
}

// Result is the outcome of a catalog query
type Result struct {
	Products []domain.Product
	Facets   domain.Facets
}

type snapshot struct {
	products   []domain.Product
	all        domain.Facets
	byCategory map[domain.Category]domain.Facets
	loadedAt   time.Time
}

// Service serves catalog queries from an in-memory snapshot of the feed
type Service struct {
	repo   domain.ProductRepository
	cache  Cache
	locale language.Tag
	logger *logger.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// NewService creates a new catalog service. cache may be nil.
func NewService(repo domain.ProductRepository, cache Cache, locale language.Tag, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		locale: locale,
		logger: log,
	}
}

// Load fetches the feed, through the cache when one is configured, and
// replaces the snapshot
func (s *Service) Load(ctx context.Context) error {
	products, fromCache, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	snap := buildSnapshot(products)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"products":   len(products),
		"from_cache": fromCache,
	}).Info("Catalog loaded")

	return nil
}

// Reload drops the cached feed and loads it again from the source
func (s *Service) Reload(ctx context.Context) error {
	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx); err != nil {
			s.logger.Warnf("Failed to invalidate catalog cache: %v", err)
		}
	}

	return s.Load(ctx)
}

func (s *Service) fetch(ctx context.Context) ([]domain.Product, bool, error) {
	if s.cache != nil {
		products, err := s.cache.GetCatalog(ctx)
		if err == nil {
			s.logger.Debug("Cache hit for catalog feed")
			return products, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warnf("Failed to read catalog cache: %v", err)
		} else {
			s.logger.Debug("Cache miss for catalog feed")
		}
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load catalog feed", err)
		return nil, false, fmt.Errorf("load catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, products); err != nil {
			s.logger.Warnf("Failed to cache catalog feed: %v", err)
		}
	}

	return products, false, nil
}

func buildSnapshot(products []domain.Product) *snapshot {
	snap := &snapshot{
		products:   products,
		all:        query.DeriveFacets(products),
		byCategory: make(map[domain.Category]domain.Facets, len(domain.Categories)),
		loadedAt:   time.Now(),
	}
	for _, c := range domain.Categories {
		snap.byCategory[c] = query.DeriveFacets(query.ByCategory(products, c))
	}
	return snap
}

func (s *Service) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return s.snap, nil
}

// Query filters and sorts the catalog, or one category of it when category
// is set. Facets always describe the unfiltered collection.
func (s *Service) Query(category domain.Category, spec domain.FilterSpec) (Result, error) {
	snap, err := s.current()
	if err != nil {
		return Result{}, err
	}

	products, facets, err := snap.scope(category)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Products: query.Query(products, spec, query.WithLocale(s.locale)),
		Facets:   facets,
	}, nil
}

// Facets returns the filter options for the catalog or one category
func (s *Service) Facets(category domain.Category) (domain.Facets, error) {
	snap, err := s.current()
	if err != nil {
		return domain.Facets{}, err
	}

	_, facets, err := snap.scope(category)
	return facets, err
}

// GetByID retrieves a product from the snapshot
func (s *Service) GetByID(id string) (domain.Product, error) {
	snap, err := s.current()
	if err != nil {
		return domain.Product{}, err
	}

	p, ok := query.FindByID(snap.products, id)
	if !ok {
		s.logger.Debugf("Product not found: %s", id)
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// Count returns the number of products in the snapshot
func (s *Service) Count() int {
	snap, err := s.current()
	if err != nil {
		return 0
	}
	return len(snap.products)
}

// LoadedAt returns when the snapshot was built, zero before the first load
func (s *Service) LoadedAt() time.Time {
	snap, err := s.current()
	if err != nil {
		return time.Time{}
	}
	return snap.loadedAt
}

func (snap *snapshot) scope(category domain.Category) ([]domain.Product, domain.Facets, error) {
	if category == "" {
		return snap.products, snap.all, nil
	}
	if !category.Valid() {
		return nil, domain.Facets{}, fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalidInput)
	}
	return query.ByCategory(snap.products, category), snap.byCategory[category], nil
}
