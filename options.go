package netsuite

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// WithHTTPClient sets the underlying HTTP client. Its connection pool is
// shared by every request the Client makes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.Timeout = d
	}
}

// WithMaxRetries overrides the retry budget per logical request.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.cfg.MaxRetries = n
	}
}

// WithRetryDelay sets the initial backoff delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.RetryDelay = d
	}
}

// WithMaxRetryDelay caps the backoff delay.
func WithMaxRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.MaxRetryDelay = d
	}
}

// WithBackoffMultiplier sets the per-attempt delay growth factor.
func WithBackoffMultiplier(f float64) Option {
	return func(c *Client) {
		c.cfg.BackoffMultiplier = f
	}
}

// WithRetryCondition replaces the default retryability predicate for every
// request; RequestOptions.RetryCondition still wins per call.
func WithRetryCondition(fn RetryCondition) Option {
	return func(c *Client) {
		c.retryCondition = fn
	}
}

// WithDefaultHeaders merges headers into every request the client sends.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if c.cfg.DefaultHeaders == nil {
			c.cfg.DefaultHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.cfg.DefaultHeaders[k] = v
		}
	}
}

// WithMiddleware appends middleware to the chain in registration order.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithZerolog routes client logs through a zerolog.Logger.
func WithZerolog(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = NewZerologLogger(l)
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector, e.g. one bound to a
// private registry.
func WithMetricsCollector(mc *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = mc
	}
}

// WithCache serves repeated GETs from an in-memory cache for ttl.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, CacheMiddleware(NewMemoryCache(), ttl))
	}
}

// WithCustomCache is WithCache with a caller-supplied Cache implementation.
func WithCustomCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, CacheMiddleware(cache, ttl))
	}
}

// WithRateLimiter throttles outgoing attempts through a token bucket,
// refilling one token per interval up to maxTokens.
func WithRateLimiter(maxTokens int, refillInterval time.Duration) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, RateLimitMiddleware(NewRateLimiter(maxTokens, refillInterval)))
	}
}

// WithPageSize sets the default SuiteQL page size, capped at the service
// ceiling of 1000.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithBaseURL overrides the SuiteTalk REST base URL derived from the
// account ID. Intended for tests and proxies.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.restBase = u
	}
}

// WithRestletBaseURL overrides the RESTlet hosting base URL derived from
// the account ID. Intended for tests and proxies.
func WithRestletBaseURL(u string) Option {
	return func(c *Client) {
		c.restletBase = u
	}
}

// validateOptions collects problems introduced by options, in addition to
// the Config checks.
func (c *Client) validateOptions() []string {
	var problems []string

	if c.httpClient == nil {
		problems = append(problems, "HTTP client cannot be nil")
	}
	for i, mw := range c.middleware {
		if mw == nil {
			problems = append(problems, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}
	if c.pageSize < 0 {
		problems = append(problems, "page size must be non-negative")
	}

	return problems
}
