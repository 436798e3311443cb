package netsuite

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket: maxTokens capacity, one token refilled per
// interval. NetSuite accounts run behind a concurrency governor, so pacing
// attempts client-side avoids burning the retry budget on 429-style
// rejections.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter creates a full bucket of maxTokens refilling one token per
// interval.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// Allow consumes a token if one is available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens <= 0 {
		return false
	}
	rl.tokens--
	return true
}

// Wait blocks until a token is available or ctx ends.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}
		wait := rl.refillInterval
		if wait <= 0 {
			wait = time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

func (rl *RateLimiter) refill() {
	if rl.refillInterval <= 0 {
		return
	}
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	tokensToAdd := int(elapsed / rl.refillInterval)
	if tokensToAdd == 0 {
		return
	}
	rl.tokens += tokensToAdd
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillInterval)
}

// RateLimitMiddleware paces attempts through rl, waiting for a token before
// proceeding. The wait is bounded by the attempt's context deadline.
func RateLimitMiddleware(rl *RateLimiter) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req *RequestContext, next Handler) (*ResponseContext, error) {
		if err := rl.Wait(ctx); err != nil {
			return nil, err
		}
		return next(ctx, req)
	})
}
