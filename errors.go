package netsuite

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes assigned locally when the service did not supply one.
const (
	CodeTimeout      = "TIMEOUT"
	CodeNetworkError = "NETWORK_ERROR"
	CodeEncoding     = "ENCODING_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
)

// Error is the single structured error type every transport failure is
// converted into before it reaches the caller. No raw net/http errors
// escape the client.
type Error struct {
	// StatusCode is the HTTP status, 504 for synthesized timeouts, or 0
	// for connection-level failures that produced no response.
	StatusCode int
	// Code is the service-supplied error code, or a locally assigned one
	// such as TIMEOUT, NETWORK_ERROR or HTTP_<status>.
	Code    string
	Message string
	// Details holds the decoded error payload the service returned, when any.
	Details any
	URL     string
	Method  string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("netsuite: %s: %s", e.Code, e.Message)
	if e.Method != "" && e.URL != "" {
		msg = fmt.Sprintf("%s (%s %s)", msg, e.Method, e.URL)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches errors carrying the same code, so callers can compare against
// a template like &Error{Code: CodeTimeout} with errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Retryable reports whether the failure is worth retrying: server errors,
// timeouts and connection-level failures are; 4xx responses are not.
func (e *Error) Retryable() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == 0 && e.Code == CodeNetworkError ||
		e.StatusCode >= 500 ||
		e.Code == CodeTimeout
}

// IsAuthError reports whether the service rejected the request's credentials.
// Auth failures are never retried: re-signing does not repair a bad token.
func (e *Error) IsAuthError() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRetryable reports whether err is a transient failure. Errors outside the
// client's taxonomy are presumed transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}

// IsAuthError reports whether err is a 401/403 rejection.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorFromResponse builds the structured error for a non-2xx response.
// Message precedence over the decoded body: detail, title, message, then a
// generic "HTTP <status>". Code precedence: o:errorCode, errorCode, code,
// then "HTTP_<status>".
func errorFromResponse(status int, raw []byte, url, method string) *Error {
	e := &Error{
		StatusCode: status,
		Code:       fmt.Sprintf("HTTP_%d", status),
		Message:    fmt.Sprintf("HTTP %d", status),
		URL:        url,
		Method:     method,
	}

	var body map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return e
	}
	e.Details = body

	if msg := firstString(body, "detail", "title", "message"); msg != "" {
		e.Message = msg
	}
	if code := firstString(body, "o:errorCode", "errorCode", "code"); code != "" {
		e.Code = code
	}
	return e
}

// firstString returns the first of the named keys holding a non-empty string.
func firstString(doc map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
