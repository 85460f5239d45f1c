package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
)

// CacheWarmingService pre-loads the catalog through the caching repositories
// so the first visitor after an invalidation does not pay for the database round trip.
type CacheWarmingService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	services   repositories.ServiceCategoryRepository
	team       repositories.TeamRepository
	cache      providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service; the repositories
// are expected to be the cached decorators.
func NewCacheWarmingService(
	products repositories.ProductRepository,
	categories repositories.CategoryRepository,
	services repositories.ServiceCategoryRepository,
	team repositories.TeamRepository,
	cache providers.CacheProvider,
) *CacheWarmingService {
	return &CacheWarmingService{
		products:   products,
		categories: categories,
		services:   services,
		team:       team,
		cache:      cache,
	}
}

// WarmCache warms every catalog list. Failures of one list do not stop the others.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Debug().Msg("starting cache warming")

	var errs []error
	if err := s.warmProducts(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.categories.List(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to warm categories: %w", err))
	}
	if _, err := s.services.List(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to warm services: %w", err))
	}
	if _, err := s.team.List(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to warm team: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Debug().Msg("cache warming completed")
	return nil
}

// warmProducts caches the unfiltered list and every product by id
func (s *CacheWarmingService) warmProducts(ctx context.Context) error {
	products, err := s.products.List(ctx, repositories.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to warm products: %w", err)
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.products.GetByIDs(ctx, ids); err != nil {
		return fmt.Errorf("failed to warm product details: %w", err)
	}
	return nil
}

// GetCacheStats reports whether the catalog list keys are currently cached
func (s *CacheWarmingService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	sampleKeys := []string{
		providers.CacheKeyProducts + "list::0:0",
		providers.CacheKeyCategories + "list",
		providers.CacheKeyServices + "list",
		providers.CacheKeyTeam + "list",
	}

	cached := make(map[string]bool, len(sampleKeys))
	cachedCount := 0
	for _, key := range sampleKeys {
		exists, err := s.cache.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache key %s: %w", key, err)
		}
		cached[key] = exists
		if exists {
			cachedCount++
		}
	}

	return map[string]interface{}{
		"keys":         cached,
		"cached_count": cachedCount,
		"sample_size":  len(sampleKeys),
	}, nil
}
