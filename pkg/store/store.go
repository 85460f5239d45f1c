// Package store keeps in-memory copies of fetched collections for the SDK's consumers.
package store

import (
	"context"
	"sync"
)

// Fetcher loads the whole collection
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Collection is a cached list that is re-fetched in full after every mutation.
// Readers never block on a fetch in progress.
type Collection[T any] struct {
	fetch Fetcher[T]

	mu      sync.RWMutex
	items   []T
	loading bool
	err     error
	loaded  bool

	refresh sync.Mutex
}

// NewCollection builds an empty collection backed by fetch
func NewCollection[T any](fetch Fetcher[T]) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Refresh replaces the items with a fresh fetch. On failure the previous items are kept.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.refresh.Lock()
	defer c.refresh.Unlock()

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.err = err
	if err != nil {
		return err
	}
	c.items = items
	c.loaded = true
	return nil
}

// Mutate runs fn and then re-fetches the collection. A failed fn skips the re-fetch.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		return err
	}
	return c.Refresh(ctx)
}

// Items returns a copy of the current items
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Find returns the first item matching pred
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether a fetch is in flight
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Loaded reports whether at least one fetch has succeeded
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Err returns the last fetch or mutation error, cleared by the next successful refresh
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}
