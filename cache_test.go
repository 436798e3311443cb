package netsuite

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("k", &CachedResponse{StatusCode: 200, Body: "v"}, time.Minute)
	entry, ok := cache.Get("k")
	if !ok || entry.Body != "v" {
		t.Fatalf("Expected cached entry, got %#v (ok=%v)", entry, ok)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("k", &CachedResponse{StatusCode: 200}, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get("k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCacheDeleteClear(t *testing.T) {
	cache := NewMemoryCache()

	cache.Set("a", &CachedResponse{}, time.Minute)
	cache.Set("b", &CachedResponse{}, time.Minute)
	cache.Delete("a")
	if _, ok := cache.Get("a"); ok {
		t.Error("Expected deleted entry to miss")
	}
	cache.Clear()
	if _, ok := cache.Get("b"); ok {
		t.Error("Expected cleared cache to miss")
	}
}

func TestCacheMiddlewareServesRepeatGets(t *testing.T) {
	calls := 0
	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		calls++
		return &ResponseContext{StatusCode: 200, Body: "fresh"}, nil
	}

	h := chain([]Middleware{CacheMiddleware(NewMemoryCache(), time.Minute)}, terminal)
	req := &RequestContext{URL: "https://example.com/x", Method: http.MethodGet}

	for i := 0; i < 3; i++ {
		resp, err := h(context.Background(), req)
		if err != nil {
			t.Fatalf("chain returned error: %v", err)
		}
		if resp.Body != "fresh" {
			t.Fatalf("Unexpected body %#v", resp.Body)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 terminal call for repeated GETs, got %d", calls)
	}
}

func TestCacheMiddlewarePreservesDuration(t *testing.T) {
	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		return &ResponseContext{StatusCode: 200, Duration: 40 * time.Millisecond}, nil
	}

	h := chain([]Middleware{CacheMiddleware(NewMemoryCache(), time.Minute)}, terminal)
	req := &RequestContext{URL: "https://example.com/x", Method: http.MethodGet}

	if _, err := h(context.Background(), req); err != nil {
		t.Fatalf("chain returned error: %v", err)
	}
	resp, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("chain returned error: %v", err)
	}
	if resp.Duration != 40*time.Millisecond {
		t.Errorf("Expected cached hit to report the original duration, got %v", resp.Duration)
	}
}

func TestCacheMiddlewareBypassesNonGet(t *testing.T) {
	calls := 0
	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		calls++
		return &ResponseContext{StatusCode: 200}, nil
	}

	h := chain([]Middleware{CacheMiddleware(NewMemoryCache(), time.Minute)}, terminal)
	req := &RequestContext{URL: "https://example.com/x", Method: http.MethodPost}

	for i := 0; i < 2; i++ {
		if _, err := h(context.Background(), req); err != nil {
			t.Fatalf("chain returned error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("Expected POSTs to bypass the cache, got %d terminal calls", calls)
	}
}

func TestCacheMiddlewareSkipsFailures(t *testing.T) {
	calls := 0
	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		calls++
		return nil, &Error{StatusCode: 500, Code: "HTTP_500"}
	}

	h := chain([]Middleware{CacheMiddleware(NewMemoryCache(), time.Minute)}, terminal)
	req := &RequestContext{URL: "https://example.com/x", Method: http.MethodGet}

	for i := 0; i < 2; i++ {
		if _, err := h(context.Background(), req); err == nil {
			t.Fatal("Expected error")
		}
	}
	if calls != 2 {
		t.Errorf("Expected failures not to be cached, got %d terminal calls", calls)
	}
}
