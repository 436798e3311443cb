package netsuite

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRateLimiterBucketEmpties(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("Expected token %d to be available", i)
		}
	}
	if rl.Allow() {
		t.Error("Expected empty bucket to deny")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow() {
		t.Fatal("Expected initial token")
	}
	if rl.Allow() {
		t.Fatal("Expected empty bucket")
	}
	time.Sleep(25 * time.Millisecond)
	if !rl.Allow() {
		t.Error("Expected bucket to refill over time")
	}
}

func TestRateLimiterRefillCapped(t *testing.T) {
	rl := NewRateLimiter(2, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	allowed := 0
	for rl.Allow() {
		allowed++
	}
	if allowed != 2 {
		t.Errorf("Expected refill capped at bucket size 2, got %d tokens", allowed)
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(1, 5*time.Millisecond)
	if !rl.Allow() {
		t.Fatal("Expected initial token")
	}

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if time.Since(start) < 4*time.Millisecond {
		t.Error("Expected Wait to block until a token refilled")
	}
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("Expected Wait to abort on context deadline")
	}
}

func TestRateLimitMiddlewarePacesCalls(t *testing.T) {
	calls := 0
	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		calls++
		return &ResponseContext{StatusCode: 200}, nil
	}

	rl := NewRateLimiter(2, 5*time.Millisecond)
	h := chain([]Middleware{RateLimitMiddleware(rl)}, terminal)
	req := &RequestContext{URL: "https://example.com", Method: http.MethodGet}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := h(context.Background(), req); err != nil {
			t.Fatalf("chain returned error: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("Expected 3 terminal calls, got %d", calls)
	}
	// The third call had to wait for a refill.
	if time.Since(start) < 4*time.Millisecond {
		t.Error("Expected the third call to be paced by the limiter")
	}
}
