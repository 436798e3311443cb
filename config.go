package netsuite

import (
	"fmt"
	"time"
)

// Defaults applied by Config.applyDefaults.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryDelay        = time.Second
	DefaultMaxRetryDelay     = 10 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Config carries the credential set and transport defaults for a Client.
// It is consumed once at construction; later mutation has no effect.
type Config struct {
	// AccountID is the NetSuite account identifier. Sandbox identifiers
	// such as "1234567_SB1" are normalized for host names but sent
	// verbatim as the OAuth realm.
	AccountID string

	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string

	// Timeout bounds each physical attempt. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the retry budget per logical request. Defaults to 3.
	MaxRetries int
	// RetryDelay is the initial backoff delay. Defaults to 1s.
	RetryDelay time.Duration
	// MaxRetryDelay caps the backoff delay. Defaults to 10s.
	MaxRetryDelay time.Duration
	// BackoffMultiplier is the per-attempt delay growth factor. Defaults to 2.
	BackoffMultiplier float64

	// DefaultHeaders are merged into every request, below auth and
	// per-call headers in precedence.
	DefaultHeaders map[string]string
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.MaxRetryDelay == 0 {
		c.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if c.BackoffMultiplier == 0 {
		c.BackoffMultiplier = DefaultBackoffMultiplier
	}
}

// validate collects every configuration problem so a misconfigured client
// fails once, at construction, with the full list.
func (c *Config) validate() []string {
	var problems []string

	if c.AccountID == "" {
		problems = append(problems, "AccountID is required")
	}
	if c.ConsumerKey == "" {
		problems = append(problems, "ConsumerKey is required")
	}
	if c.ConsumerSecret == "" {
		problems = append(problems, "ConsumerSecret is required")
	}
	if c.TokenKey == "" {
		problems = append(problems, "TokenKey is required")
	}
	if c.TokenSecret == "" {
		problems = append(problems, "TokenSecret is required")
	}

	if c.Timeout <= 0 {
		problems = append(problems, "Timeout must be positive")
	}
	if c.MaxRetries < 0 {
		problems = append(problems, "MaxRetries must be non-negative")
	}
	if c.RetryDelay < 0 {
		problems = append(problems, "RetryDelay must be positive")
	}
	if c.MaxRetryDelay < c.RetryDelay {
		problems = append(problems, "MaxRetryDelay must be greater than or equal to RetryDelay")
	}
	if c.BackoffMultiplier < 1 {
		problems = append(problems, "BackoffMultiplier must be at least 1")
	}

	return problems
}

func validationError(problems []string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "configuration validation failed",
		Cause:   fmt.Errorf("validation errors: %v", problems),
	}
}
