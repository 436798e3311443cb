package netsuite

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// CachedResponse is a response snapshot held by a Cache.
type CachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       any
	Raw        []byte
	Duration   time.Duration
	ExpiresAt  time.Time
}

// Cache stores response snapshots for the cache middleware.
type Cache interface {
	Get(key string) (*CachedResponse, bool)
	Set(key string, entry *CachedResponse, ttl time.Duration)
	Delete(key string)
	Clear()
}

// MemoryCache is a mutex-guarded in-memory Cache with lazy expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CachedResponse
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*CachedResponse)}
}

// Get returns the live entry for key, expiring it if its TTL has passed.
func (m *MemoryCache) Get(key string) (*CachedResponse, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		m.Delete(key)
		return nil, false
	}
	return entry, true
}

// Set stores entry under key for ttl.
func (m *MemoryCache) Set(key string, entry *CachedResponse, ttl time.Duration) {
	entry.ExpiresAt = time.Now().Add(ttl)
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

// Delete removes key.
func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear removes every entry.
func (m *MemoryCache) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]*CachedResponse)
	m.mu.Unlock()
}

// CacheMiddleware serves repeated GETs from cache for ttl, keyed by URL.
// Non-GET requests and error responses bypass the cache.
func CacheMiddleware(cache Cache, ttl time.Duration) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req *RequestContext, next Handler) (*ResponseContext, error) {
		if req.Method != http.MethodGet {
			return next(ctx, req)
		}

		if entry, ok := cache.Get(req.URL); ok {
			return &ResponseContext{
				StatusCode: entry.StatusCode,
				Headers:    entry.Headers,
				Body:       entry.Body,
				Raw:        entry.Raw,
				Duration:   entry.Duration,
			}, nil
		}

		resp, err := next(ctx, req)
		if err == nil && resp.StatusCode < 400 {
			cache.Set(req.URL, &CachedResponse{
				StatusCode: resp.StatusCode,
				Headers:    resp.Headers,
				Body:       resp.Body,
				Raw:        resp.Raw,
				Duration:   resp.Duration,
			}, ttl)
		}
		return resp, err
	})
}
