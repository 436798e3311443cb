package netsuite

import (
	"context"
	"time"
)

// RequestContext is the mutable per-request state threaded through the
// middleware chain. It is owned by exactly one in-flight request; middleware
// may rewrite headers, body and metadata before the terminal handler runs.
type RequestContext struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    any
	// Meta carries values between middleware for the duration of one request.
	Meta map[string]any
}

// ResponseContext is the outcome of one physical attempt as seen by the
// middleware chain. Middleware may rewrite it on the way back out.
type ResponseContext struct {
	StatusCode int
	Headers    map[string]string
	Body       any
	Raw        []byte
	Duration   time.Duration
}

// Handler is the terminal operation of a middleware chain: it performs the
// actual network call for the given request.
type Handler func(ctx context.Context, req *RequestContext) (*ResponseContext, error)

// Middleware intercepts a request on its way to the terminal handler. An
// implementation may mutate req and call next, transform next's result
// before returning it, or return a response without calling next at all,
// short-circuiting the rest of the chain.
type Middleware interface {
	Handle(ctx context.Context, req *RequestContext, next Handler) (*ResponseContext, error)
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
type MiddlewareFunc func(ctx context.Context, req *RequestContext, next Handler) (*ResponseContext, error)

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, req *RequestContext, next Handler) (*ResponseContext, error) {
	return f(ctx, req, next)
}

// RetryCondition reports whether err is worth retrying on the given
// 0-based attempt number.
type RetryCondition func(err error, attempt int) bool

// Option configures a Client at construction time.
type Option func(*Client)

// Response is the transport's view of a completed request.
type Response struct {
	StatusCode int
	// Headers maps lower-cased header names to their first value.
	Headers map[string]string
	// Body is the decoded JSON payload (map, slice or scalar), the raw
	// string for non-JSON payloads, or nil for 204 and empty bodies.
	Body any
	// Raw is the unparsed response body; nil for 204 responses.
	Raw []byte
	// Elapsed is the wall time of the final successful attempt.
	Elapsed time.Duration
}

// ElapsedMillis returns the final attempt's duration in milliseconds.
func (r *Response) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// RequestOptions customizes a single Transport call. The zero value issues
// a GET with client-wide defaults.
type RequestOptions struct {
	// Method defaults to GET.
	Method  string
	Headers map[string]string
	// Body is attached only for POST, PUT and PATCH; other methods drop it.
	Body any
	// Timeout overrides the client timeout for each attempt of this call.
	Timeout time.Duration
	// MaxRetries overrides the client retry budget for this call.
	MaxRetries *int
	// RetryCondition overrides the default retryability predicate.
	RetryCondition RetryCondition
	// OnRetry is invoked before each retry with the failure and the
	// 0-based attempt that failed.
	OnRetry func(err error, attempt int)
}
