package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// GetMulti retrieves the values that exist for keys; misses are absent from the map
	GetMulti(ctx context.Context, keys []string) (map[string][]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// SetMulti stores several values with the same expiration
	SetMulti(ctx context.Context, items map[string][]byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern such as "catalog:products:*"
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)
}

// Catalog cache key prefixes shared by the caching decorators and invalidation
const (
	CacheKeyProducts        = "catalog:products:"
	CacheKeyCategories      = "catalog:categories:"
	CacheKeyServices        = "catalog:services:"
	CacheKeyTeam            = "catalog:team:"
	CacheKeyHTTPResponses   = "http:cache:"
	CacheKeyCatalogWildcard = "catalog:*"
)
