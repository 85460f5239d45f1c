package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	catalogByIDTTL = 300
	catalogListTTL = 180
)

// readThrough returns the cached value for key, or loads and caches it.
// A cache that fails to decode is treated as a miss.
func readThrough[T any](ctx context.Context, cache providers.CacheProvider, key string, ttl int, load func() (T, error)) (T, error) {
	if cached, err := cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			return value, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := cache.Set(ctx, key, data, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache catalog entry")
		}
	}
	return value, nil
}

func invalidate(ctx context.Context, cache providers.CacheProvider, prefix string) {
	if err := cache.DeletePattern(ctx, prefix+"*"); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate catalog cache")
	}
}

// CachedProductAdapter wraps a ProductRepository with read-through caching
type CachedProductAdapter struct {
	adapter repositories.ProductRepository
	cache   providers.CacheProvider
}

// NewCachedProductAdapter creates a new cached product adapter
func NewCachedProductAdapter(adapter repositories.ProductRepository, cache providers.CacheProvider) repositories.ProductRepository {
	return &CachedProductAdapter{adapter: adapter, cache: cache}
}

func productCacheKey(id string) string {
	return fmt.Sprintf("%sid:%s", providers.CacheKeyProducts, id)
}

func (a *CachedProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return readThrough(ctx, a.cache, productCacheKey(id), catalogByIDTTL, func() (*entities.Product, error) {
		return a.adapter.GetByID(ctx, id)
	})
}

// GetByIDs serves what it can from one MGET and loads the rest in a single query
func (a *CachedProductAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return []*entities.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productCacheKey(id)
	}

	cached, err := a.cache.GetMulti(ctx, keys)
	if err != nil {
		cached = map[string][]byte{}
	}

	products := make([]*entities.Product, 0, len(ids))
	missing := make([]string, 0)
	for i, id := range ids {
		if data, ok := cached[keys[i]]; ok {
			var product entities.Product
			if err := json.Unmarshal(data, &product); err == nil {
				products = append(products, &product)
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return products, nil
	}

	loaded, err := a.adapter.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	items := make(map[string][]byte, len(loaded))
	for _, product := range loaded {
		if data, err := json.Marshal(product); err == nil {
			items[productCacheKey(product.ID)] = data
		}
	}
	if err := a.cache.SetMulti(ctx, items, catalogByIDTTL); err != nil {
		log.Warn().Err(err).Msg("failed to batch cache products")
	}

	return append(products, loaded...), nil
}

func (a *CachedProductAdapter) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	key := fmt.Sprintf("%slist:%s:%d:%d", providers.CacheKeyProducts, filter.CategoryName, filter.Limit, filter.Offset)
	return readThrough(ctx, a.cache, key, catalogListTTL, func() ([]*entities.Product, error) {
		return a.adapter.List(ctx, filter)
	})
}

func (a *CachedProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	if err := a.adapter.Create(ctx, product); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyProducts)
	return nil
}

func (a *CachedProductAdapter) Update(ctx context.Context, product *entities.Product) error {
	if err := a.adapter.Update(ctx, product); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyProducts)
	return nil
}

func (a *CachedProductAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyProducts)
	return nil
}

// CachedCategoryAdapter wraps a CategoryRepository with read-through caching
type CachedCategoryAdapter struct {
	adapter repositories.CategoryRepository
	cache   providers.CacheProvider
}

// NewCachedCategoryAdapter creates a new cached category adapter
func NewCachedCategoryAdapter(adapter repositories.CategoryRepository, cache providers.CacheProvider) repositories.CategoryRepository {
	return &CachedCategoryAdapter{adapter: adapter, cache: cache}
}

func (a *CachedCategoryAdapter) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	key := providers.CacheKeyCategories + "id:" + id
	return readThrough(ctx, a.cache, key, catalogByIDTTL, func() (*entities.Category, error) {
		return a.adapter.GetByID(ctx, id)
	})
}

func (a *CachedCategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	return readThrough(ctx, a.cache, providers.CacheKeyCategories+"list", catalogListTTL, func() ([]*entities.Category, error) {
		return a.adapter.List(ctx)
	})
}

func (a *CachedCategoryAdapter) Create(ctx context.Context, category *entities.Category) error {
	if err := a.adapter.Create(ctx, category); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyCategories)
	return nil
}

func (a *CachedCategoryAdapter) Update(ctx context.Context, category *entities.Category) error {
	if err := a.adapter.Update(ctx, category); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyCategories)
	return nil
}

func (a *CachedCategoryAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyCategories)
	return nil
}

// CachedServiceCategoryAdapter wraps a ServiceCategoryRepository with read-through caching
type CachedServiceCategoryAdapter struct {
	adapter repositories.ServiceCategoryRepository
	cache   providers.CacheProvider
}

// NewCachedServiceCategoryAdapter creates a new cached service category adapter
func NewCachedServiceCategoryAdapter(adapter repositories.ServiceCategoryRepository, cache providers.CacheProvider) repositories.ServiceCategoryRepository {
	return &CachedServiceCategoryAdapter{adapter: adapter, cache: cache}
}

func (a *CachedServiceCategoryAdapter) GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	key := providers.CacheKeyServices + "id:" + id
	return readThrough(ctx, a.cache, key, catalogByIDTTL, func() (*entities.ServiceCategory, error) {
		return a.adapter.GetByID(ctx, id)
	})
}

func (a *CachedServiceCategoryAdapter) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return readThrough(ctx, a.cache, providers.CacheKeyServices+"list", catalogListTTL, func() ([]*entities.ServiceCategory, error) {
		return a.adapter.List(ctx)
	})
}

func (a *CachedServiceCategoryAdapter) Create(ctx context.Context, category *entities.ServiceCategory) error {
	return a.mutate(ctx, func() error { return a.adapter.Create(ctx, category) })
}

func (a *CachedServiceCategoryAdapter) Update(ctx context.Context, category *entities.ServiceCategory) error {
	return a.mutate(ctx, func() error { return a.adapter.Update(ctx, category) })
}

func (a *CachedServiceCategoryAdapter) Delete(ctx context.Context, id string) error {
	return a.mutate(ctx, func() error { return a.adapter.Delete(ctx, id) })
}

func (a *CachedServiceCategoryAdapter) AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error {
	return a.mutate(ctx, func() error { return a.adapter.AddItem(ctx, categoryID, item) })
}

func (a *CachedServiceCategoryAdapter) UpdateItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error {
	return a.mutate(ctx, func() error { return a.adapter.UpdateItem(ctx, categoryID, item) })
}

func (a *CachedServiceCategoryAdapter) DeleteItem(ctx context.Context, categoryID, itemID string) error {
	return a.mutate(ctx, func() error { return a.adapter.DeleteItem(ctx, categoryID, itemID) })
}

func (a *CachedServiceCategoryAdapter) mutate(ctx context.Context, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyServices)
	return nil
}

// CachedTeamAdapter wraps a TeamRepository with read-through caching
type CachedTeamAdapter struct {
	adapter repositories.TeamRepository
	cache   providers.CacheProvider
}

// NewCachedTeamAdapter creates a new cached team adapter
func NewCachedTeamAdapter(adapter repositories.TeamRepository, cache providers.CacheProvider) repositories.TeamRepository {
	return &CachedTeamAdapter{adapter: adapter, cache: cache}
}

func (a *CachedTeamAdapter) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	key := providers.CacheKeyTeam + "id:" + id
	return readThrough(ctx, a.cache, key, catalogByIDTTL, func() (*entities.TeamMember, error) {
		return a.adapter.GetByID(ctx, id)
	})
}

func (a *CachedTeamAdapter) List(ctx context.Context) ([]*entities.TeamMember, error) {
	return readThrough(ctx, a.cache, providers.CacheKeyTeam+"list", catalogListTTL, func() ([]*entities.TeamMember, error) {
		return a.adapter.List(ctx)
	})
}

func (a *CachedTeamAdapter) Create(ctx context.Context, member *entities.TeamMember) error {
	if err := a.adapter.Create(ctx, member); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyTeam)
	return nil
}

func (a *CachedTeamAdapter) Update(ctx context.Context, member *entities.TeamMember) error {
	if err := a.adapter.Update(ctx, member); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyTeam)
	return nil
}

func (a *CachedTeamAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, a.cache, providers.CacheKeyTeam)
	return nil
}
