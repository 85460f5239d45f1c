package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
)

// CacheConfig holds cache configuration for specific routes
type CacheConfig struct {
	TTLSeconds int
	Enabled    bool
}

// CacheMiddleware caches public catalog GET responses in the cache provider
type CacheMiddleware struct {
	cache        providers.CacheProvider
	metrics      *observability.Metrics
	routeConfigs map[string]CacheConfig
	prefixes     []string
}

// DefaultCacheRoutes are the catalog reads worth caching. Keys are path prefixes.
func DefaultCacheRoutes() map[string]CacheConfig {
	return map[string]CacheConfig{
		"/Product/search": {TTLSeconds: 60, Enabled: true},
		"/Product":        {TTLSeconds: 300, Enabled: true},
		"/Category":       {TTLSeconds: 600, Enabled: true},
		"/OurServices":    {TTLSeconds: 600, Enabled: true},
		"/Team":           {TTLSeconds: 600, Enabled: true},
	}
}

// NewCacheMiddleware creates a new cache middleware over DefaultCacheRoutes
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics) *CacheMiddleware {
	return NewCacheMiddlewareWithConfig(cache, metrics, DefaultCacheRoutes())
}

// NewCacheMiddlewareWithConfig creates a cache middleware with custom route config
func NewCacheMiddlewareWithConfig(cache providers.CacheProvider, metrics *observability.Metrics, configs map[string]CacheConfig) *CacheMiddleware {
	prefixes := make([]string, 0, len(configs))
	for prefix := range configs {
		prefixes = append(prefixes, prefix)
	}
	// longest prefix wins
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	return &CacheMiddleware{
		cache:        cache,
		metrics:      metrics,
		routeConfigs: configs,
		prefixes:     prefixes,
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			m.serveWrite(w, r, next)
			return
		default:
			next.ServeHTTP(w, r)
			return
		}

		config := m.getRouteConfig(r.URL.Path)
		if !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		cacheKey := CacheKey(r)
		logger := log.Ctx(r.Context())

		if cached, err := m.cache.Get(r.Context(), cacheKey); err == nil {
			logger.Debug().Str("key", cacheKey).Msg("cache hit")
			observability.RecordCacheHit(r.Context(), m.metrics, cacheKey)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}

		logger.Debug().Str("key", cacheKey).Msg("cache miss")
		observability.RecordCacheMiss(r.Context(), m.metrics, cacheKey)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}

		next.ServeHTTP(recorder, r)

		// Only cache successful responses
		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(r.Context(), cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
				logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache response")
			}
		}
	})
}

// serveWrite runs a mutating request and, when it succeeds, drops every cached
// response under the resource root before the status reaches the client, so a
// re-fetch issued after the write is answered fresh by this process. Other
// replicas rely on the catalog event subscriber.
func (m *CacheMiddleware) serveWrite(w http.ResponseWriter, r *http.Request, next http.Handler) {
	root := resourceRoot(r.URL.Path)
	if !m.getRouteConfig(root).Enabled {
		next.ServeHTTP(w, r)
		return
	}

	pattern := providers.CacheKeyHTTPResponses + root + "*"
	sw := &statusWriter{ResponseWriter: w, onStatus: func(status int) {
		if status < 200 || status >= 300 {
			return
		}
		if err := m.cache.DeletePattern(r.Context(), pattern); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cached responses")
		}
	}}
	next.ServeHTTP(sw, r)
	sw.commit(http.StatusOK)
}

// resourceRoot returns the first path segment, "/Product/p1/x" -> "/Product"
func resourceRoot(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

// getRouteConfig matches path against the configured prefixes on segment boundaries
func (m *CacheMiddleware) getRouteConfig(path string) CacheConfig {
	for _, prefix := range m.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return m.routeConfigs[prefix]
		}
	}
	return CacheConfig{Enabled: false}
}

// CacheKey is "http:cache:<path>[?<query>]". Keys stay readable so catalog
// invalidation can drop them with a pattern such as "http:cache:/Product*".
func CacheKey(r *http.Request) string {
	key := providers.CacheKeyHTTPResponses + r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.Query().Encode()
	}
	return key
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}

// statusWriter calls onStatus once, before the status line is written
type statusWriter struct {
	http.ResponseWriter
	onStatus func(status int)
	done     bool
}

func (w *statusWriter) commit(status int) {
	if !w.done {
		w.done = true
		w.onStatus(status)
	}
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.commit(statusCode)
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(data []byte) (int, error) {
	w.commit(http.StatusOK)
	return w.ResponseWriter.Write(data)
}
