package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
)

var errMiss = errors.New("cache miss")

// memoryCache is an in-memory providers.CacheProvider
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (c *memoryCache) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte)
	for _, k := range keys {
		if v, err := c.Get(ctx, k); err == nil {
			out[k] = v
		}
	}
	return out, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = append([]byte(nil), value...)
	c.sets++
	return nil
}

func (c *memoryCache) SetMulti(ctx context.Context, items map[string][]byte, expirationSeconds int) error {
	for k, v := range items {
		_ = c.Set(ctx, k, v, expirationSeconds)
	}
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.Get(ctx, key)
	return err == nil, nil
}

func (c *memoryCache) has(key string) bool {
	ok, _ := c.Exists(context.Background(), key)
	return ok
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}
