package netsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client is a NetSuite REST client layering request signing, retries with
// exponential backoff, an ordered middleware chain and structured error
// classification around the standard net/http client. It is safe for
// concurrent use; the underlying keep-alive pool is shared by all requests.
type Client struct {
	cfg            Config
	httpClient     *http.Client
	signer         *Signer
	middleware     []Middleware
	retryCondition RetryCondition
	logger         Logger
	metrics        *MetricsCollector
	pageSize       int

	// Test/proxy escape hatches; empty means derive from the account ID.
	restBase    string
	restletBase string
}

// New constructs a Client from cfg and options. Configuration problems are
// reported here, never at call time.
func New(cfg Config, options ...Option) (*Client, error) {
	cfg.applyDefaults()

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     NopLogger{},
		pageSize:   defaultPageSize,
	}

	for _, option := range options {
		option(c)
	}

	problems := c.cfg.validate()
	problems = append(problems, c.validateOptions()...)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	c.signer = newSigner(c.cfg)
	return c, nil
}

// Request performs one logical call against rawURL. Every physical attempt
// is signed fresh, run through the middleware chain and classified into a
// *Response or a structured *Error; retries follow the client's backoff
// policy unless opts overrides it.
func (c *Client) Request(ctx context.Context, rawURL string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	timeout := c.cfg.Timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	maxRetries := c.cfg.MaxRetries
	if opts.MaxRetries != nil {
		maxRetries = *opts.MaxRetries
	}
	condition := c.retryCondition
	if opts.RetryCondition != nil {
		condition = opts.RetryCondition
	}

	// A reader body can only be consumed once; buffer it up front so every
	// retried attempt transmits the same bytes.
	body := opts.Body
	if r, ok := body.(io.Reader); ok && methodAllowsBody(method) {
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, &Error{
				StatusCode: http.StatusBadRequest,
				Code:       CodeEncoding,
				Message:    "failed to read request body",
				URL:        rawURL,
				Method:     method,
				Cause:      err,
			}
		}
		body = buf
	}

	c.logger.Debug("sending request", "method", method, "url", rawURL)
	if c.metrics != nil {
		c.metrics.RecordRequestStart(method)
		defer c.metrics.RecordRequestEnd(method)
	}

	start := time.Now()
	resp, err := WithRetry(ctx, func() (*Response, error) {
		return c.attempt(ctx, rawURL, method, body, opts, timeout)
	}, RetryOptions{
		MaxRetries:   maxRetries,
		InitialDelay: c.cfg.RetryDelay,
		MaxDelay:     c.cfg.MaxRetryDelay,
		Multiplier:   c.cfg.BackoffMultiplier,
		ShouldRetry:  condition,
		OnRetry: func(err error, attempt int) {
			c.logger.Warn("retrying request",
				"method", method, "url", rawURL,
				"attempt", attempt+1, "maxRetries", maxRetries, "error", err)
			if c.metrics != nil {
				c.metrics.RecordRetry(method, attempt+1)
			}
			if opts.OnRetry != nil {
				opts.OnRetry(err, attempt)
			}
		},
	})
	duration := time.Since(start)

	if err != nil {
		apiErr := asError(err, rawURL, method)
		c.logger.Error("request failed",
			"method", method, "url", rawURL,
			"code", apiErr.Code, "status", apiErr.StatusCode,
			"durationMs", duration.Milliseconds())
		if c.metrics != nil {
			c.metrics.RecordError(apiErr.Code, method)
			c.metrics.RecordRequest(method, apiErr.StatusCode, duration)
		}
		return nil, apiErr
	}

	c.logger.Info("request completed",
		"method", method, "url", rawURL,
		"status", resp.StatusCode, "durationMs", duration.Milliseconds())
	if c.metrics != nil {
		c.metrics.RecordRequest(method, resp.StatusCode, duration)
	}
	return resp, nil
}

// attempt executes one physical attempt: fresh signature, header merge,
// middleware chain, classification.
func (c *Client) attempt(ctx context.Context, rawURL, method string, body any, opts *RequestOptions, timeout time.Duration) (*Response, error) {
	auth, err := c.signer.Headers(rawURL, method)
	if err != nil {
		return nil, &Error{
			StatusCode: 0,
			Code:       CodeNetworkError,
			Message:    err.Error(),
			URL:        rawURL,
			Method:     method,
			Cause:      err,
		}
	}

	// Precedence: built-ins < client defaults < auth < per-call. Per-call
	// headers overriding Authorization is the documented escape hatch.
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "netsuite-sdk/" + Version,
	}
	for k, v := range c.cfg.DefaultHeaders {
		headers[k] = v
	}
	for k, v := range auth {
		headers[k] = v
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	req := &RequestContext{
		URL:     rawURL,
		Method:  method,
		Headers: headers,
		Body:    body,
		Meta:    make(map[string]any),
	}

	terminal := func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
		return c.send(ctx, req, timeout)
	}

	rc, err := chain(c.middleware, terminal)(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: rc.StatusCode,
		Headers:    rc.Headers,
		Body:       rc.Body,
		Raw:        rc.Raw,
		Elapsed:    rc.Duration,
	}, nil
}

// send is the terminal handler: the actual network call plus outcome
// classification.
func (c *Client) send(ctx context.Context, req *RequestContext, timeout time.Duration) (*ResponseContext, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := requestBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &Error{
			StatusCode: 0,
			Code:       CodeNetworkError,
			Message:    err.Error(),
			URL:        req.URL,
			Method:     req.Method,
			Cause:      err,
		}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		return nil, classifyTransportError(err, req, timeout)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyTransportError(err, req, timeout)
	}

	if httpResp.StatusCode >= 400 {
		return nil, errorFromResponse(httpResp.StatusCode, raw, req.URL, req.Method)
	}

	rc := &ResponseContext{
		StatusCode: httpResp.StatusCode,
		Headers:    normalizeHeaders(httpResp.Header),
		Duration:   elapsed,
	}
	// 204 carries no body regardless of what the server wrote.
	if httpResp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return rc, nil
	}
	rc.Raw = raw
	var parsed any
	if json.Unmarshal(raw, &parsed) == nil {
		rc.Body = parsed
	} else {
		rc.Body = string(raw)
	}
	return rc, nil
}

// requestBody encodes req.Body for the wire, or nil when the method does
// not carry one. A GET or DELETE given a body silently drops it.
func requestBody(req *RequestContext) (io.Reader, error) {
	if req.Body == nil || !methodAllowsBody(req.Method) {
		return nil, nil
	}
	switch b := req.Body.(type) {
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, &Error{
				StatusCode: http.StatusBadRequest,
				Code:       CodeEncoding,
				Message:    "failed to encode request body",
				URL:        req.URL,
				Method:     req.Method,
				Cause:      err,
			}
		}
		return bytes.NewReader(buf), nil
	}
}

func methodAllowsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// classifyTransportError maps connection-level failures into the error
// taxonomy: timeouts become 504/TIMEOUT, everything else 0/NETWORK_ERROR.
func classifyTransportError(err error, req *RequestContext, timeout time.Duration) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{
			StatusCode: http.StatusGatewayTimeout,
			Code:       CodeTimeout,
			Message:    "request timed out after " + timeout.String(),
			URL:        req.URL,
			Method:     req.Method,
			Cause:      err,
		}
	}
	return &Error{
		StatusCode: 0,
		Code:       CodeNetworkError,
		Message:    err.Error(),
		URL:        req.URL,
		Method:     req.Method,
		Cause:      err,
	}
}

// asError guarantees the single-error-type contract at the transport
// boundary: anything that is not already a structured *Error is wrapped.
func asError(err error, url, method string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{
		StatusCode: 0,
		Code:       CodeNetworkError,
		Message:    err.Error(),
		URL:        url,
		Method:     method,
		Cause:      err,
	}
}

// normalizeHeaders flattens an http.Header into lower-cased names mapped to
// their first value.
func normalizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[strings.ToLower(k)] = vs[0]
		}
	}
	return out
}
