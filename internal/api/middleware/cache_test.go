package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	cache := newMemoryCache()
	var calls int32
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(next)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/Product?category=Hair", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/Product?category=Hair", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"success":true}`, second.Body.String())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, cache.has("http:cache:/Product?category=Hair"))
}

func TestCacheMiddleware_KeysSurvivePatternInvalidation(t *testing.T) {
	cache := newMemoryCache()
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(okHandler(`{}`))

	for _, target := range []string{"/Product/p1", "/Product/search?q=oil", "/Team"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}
	require.NoError(t, cache.DeletePattern(context.Background(), "http:cache:/Product*"))

	assert.False(t, cache.has("http:cache:/Product/p1"))
	assert.False(t, cache.has("http:cache:/Product/search?q=oil"))
	assert.True(t, cache.has("http:cache:/Team"))
}

func TestCacheMiddleware_Skips(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"non GET", http.MethodPost, "/Product", http.StatusOK},
		{"uncached route", http.MethodGet, "/Appointment", http.StatusOK},
		{"prefix without segment boundary", http.MethodGet, "/Products", http.StatusOK},
		{"error responses", http.MethodGet, "/Category/missing", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cache := newMemoryCache()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{}`))
			})
			handler := middleware.NewCacheMiddleware(cache, nil).Middleware(next)

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.target, nil))
			assert.Zero(t, cache.sets)
		})
	}
}

func TestCacheKey_NormalizesQueryOrder(t *testing.T) {
	a := middleware.CacheKey(httptest.NewRequest(http.MethodGet, "/Product/search?q=oil&category=Hair", nil))
	b := middleware.CacheKey(httptest.NewRequest(http.MethodGet, "/Product/search?category=Hair&q=oil", nil))
	assert.Equal(t, a, b)
	assert.Equal(t, "http:cache:/Team", middleware.CacheKey(httptest.NewRequest(http.MethodGet, "/Team", nil)))
}

func TestCacheMiddleware_WriteDropsCachedResponses(t *testing.T) {
	cache := newMemoryCache()
	var mu sync.Mutex
	products := `["old"]`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /Product", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write([]byte(`{"data":` + products + `}`))
	})
	mux.HandleFunc("POST /Product", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		products = `["old","new"]`
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":"new"}`))
	})
	mux.Handle("GET /Team", okHandler(`{"data":[]}`))
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/Product", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/Team", nil))
	require.True(t, cache.has("http:cache:/Product"))

	created := httptest.NewRecorder()
	handler.ServeHTTP(created, httptest.NewRequest(http.MethodPost, "/Product", nil))
	require.Equal(t, http.StatusCreated, created.Code)

	refetch := httptest.NewRecorder()
	handler.ServeHTTP(refetch, httptest.NewRequest(http.MethodGet, "/Product", nil))
	assert.Equal(t, "MISS", refetch.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"data":["old","new"]}`, refetch.Body.String())
	assert.True(t, cache.has("http:cache:/Team"))
}

func TestCacheMiddleware_FailedWriteKeepsCache(t *testing.T) {
	cache := newMemoryCache()
	mux := http.NewServeMux()
	mux.Handle("GET /Category/{id}", okHandler(`{"data":{"id":"c1"}}`))
	mux.HandleFunc("PUT /Category/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/Category/c1", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/Category/c1", nil))

	assert.True(t, cache.has("http:cache:/Category/c1"))
}
