package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	items   []string
	fetches int
	fail    error
}

func (b *fakeBackend) fetch(context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	if b.fail != nil {
		return nil, b.fail
	}
	return append([]string(nil), b.items...), nil
}

func (b *fakeBackend) add(item string) func(context.Context) error {
	return func(context.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.items = append(b.items, item)
		return nil
	}
}

func TestCollection_MutateRefetches(t *testing.T) {
	backend := &fakeBackend{items: []string{"Hair"}}
	c := NewCollection(backend.fetch)

	assert.False(t, c.Loaded())
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Hair"}, c.Items())

	require.NoError(t, c.Mutate(context.Background(), backend.add("Nails")))

	assert.Equal(t, []string{"Hair", "Nails"}, c.Items())
	assert.Equal(t, 2, backend.fetches)
	assert.True(t, c.Loaded())
	assert.False(t, c.Loading())
}

func TestCollection_FailedMutationSkipsRefetch(t *testing.T) {
	backend := &fakeBackend{items: []string{"Hair"}}
	c := NewCollection(backend.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	boom := errors.New("forbidden")
	err := c.Mutate(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Err(), boom)
	assert.Equal(t, 1, backend.fetches)
}

func TestCollection_FailedRefreshKeepsItems(t *testing.T) {
	backend := &fakeBackend{items: []string{"Hair"}}
	c := NewCollection(backend.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	backend.fail = errors.New("offline")
	assert.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Hair"}, c.Items())
	assert.Error(t, c.Err())

	backend.fail = nil
	require.NoError(t, c.Refresh(context.Background()))
	assert.NoError(t, c.Err())
}

func TestCollection_Find(t *testing.T) {
	backend := &fakeBackend{items: []string{"Hair", "Nails"}}
	c := NewCollection(backend.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	got, ok := c.Find(func(s string) bool { return s == "Nails" })
	assert.True(t, ok)
	assert.Equal(t, "Nails", got)

	_, ok = c.Find(func(s string) bool { return s == "Spa" })
	assert.False(t, ok)
}

func TestCollection_ConcurrentReaders(t *testing.T) {
	var n atomic.Int32
	c := NewCollection(func(context.Context) ([]int, error) {
		v := int(n.Add(1))
		return []int{v, v}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			items := c.Items()
			if len(items) == 2 {
				assert.Equal(t, items[0], items[1])
			}
		}()
	}
	wg.Wait()

	assert.Len(t, c.Items(), 2)
	assert.EqualValues(t, 8, n.Load())
}
