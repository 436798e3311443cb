package netsuite

import (
	"context"
	"time"

	"github.com/dturton/netsuite-sdk/internal/backoff"
)

// RetryOptions bound a retry loop. The zero value runs fn exactly once.
type RetryOptions struct {
	// MaxRetries is the number of retries after the first attempt, so fn
	// runs at most MaxRetries+1 times.
	MaxRetries int
	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the raw backoff; jitter may stretch the actual sleep
	// up to MaxDelay*1.25.
	MaxDelay time.Duration
	// Multiplier is the per-attempt delay growth factor.
	Multiplier float64
	// ShouldRetry decides whether err on the given attempt is worth
	// retrying. Defaults to DefaultRetryCondition.
	ShouldRetry RetryCondition
	// OnRetry observes each failure that will be retried.
	OnRetry func(err error, attempt int)
}

// DefaultRetryCondition retries structured Errors flagged retryable and,
// since an unrecognized failure is presumed transient, every other error.
func DefaultRetryCondition(err error, _ int) bool {
	return IsRetryable(err)
}

// WithRetry runs fn until it succeeds, the retry budget is spent, or the
// predicate rejects the failure. Delays grow exponentially with ±25% jitter
// and attempts are strictly sequential; the sleep aborts early if ctx ends.
func WithRetry[T any](ctx context.Context, fn func() (T, error), opts RetryOptions) (T, error) {
	cond := opts.ShouldRetry
	if cond == nil {
		cond = DefaultRetryCondition
	}

	var zero T
	strategy := backoff.Exponential{}

	for attempt := 0; ; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if attempt >= opts.MaxRetries || !cond(err, attempt) {
			return zero, err
		}
		if opts.OnRetry != nil {
			opts.OnRetry(err, attempt)
		}

		delay := strategy.Delay(attempt, opts.InitialDelay, opts.MaxDelay, opts.Multiplier)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}
}
