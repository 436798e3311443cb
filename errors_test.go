package netsuite

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := &Error{
		StatusCode: 400,
		Code:       "INVALID_RECORD_TYPE",
		Message:    "Invalid record type.",
		URL:        "https://example.com/x",
		Method:     "GET",
	}
	want := "netsuite: INVALID_RECORD_TYPE: Invalid record type. (GET https://example.com/x)"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := &Error{Code: CodeNetworkError, Message: "boom", Cause: cause}

	if !errors.Is(e, cause) {
		t.Error("Expected errors.Is to reach the cause")
	}
	wrapped := fmt.Errorf("outer: %w", e)
	var apiErr *Error
	if !errors.As(wrapped, &apiErr) || apiErr.Code != CodeNetworkError {
		t.Error("Expected errors.As to find *Error through wrapping")
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	e := &Error{StatusCode: 504, Code: CodeTimeout}
	if !errors.Is(e, &Error{Code: CodeTimeout}) {
		t.Error("Expected Is to match on code")
	}
	if errors.Is(e, &Error{Code: CodeNetworkError}) {
		t.Error("Expected Is to reject a different code")
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name      string
		err       *Error
		retryable bool
		auth      bool
	}{
		{"500", &Error{StatusCode: 500, Code: "HTTP_500"}, true, false},
		{"503", &Error{StatusCode: 503, Code: "HTTP_503"}, true, false},
		{"timeout", &Error{StatusCode: 504, Code: CodeTimeout}, true, false},
		{"network", &Error{StatusCode: 0, Code: CodeNetworkError}, true, false},
		{"400", &Error{StatusCode: 400, Code: "HTTP_400"}, false, false},
		{"404", &Error{StatusCode: 404, Code: "HTTP_404"}, false, false},
		{"401", &Error{StatusCode: 401, Code: "HTTP_401"}, false, true},
		{"403", &Error{StatusCode: 403, Code: "HTTP_403"}, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Retryable(); got != tc.retryable {
				t.Errorf("Retryable() = %v, want %v", got, tc.retryable)
			}
			if got := tc.err.IsAuthError(); got != tc.auth {
				t.Errorf("IsAuthError() = %v, want %v", got, tc.auth)
			}
		})
	}
}

func TestErrorFromResponseMessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"D","title":"T","message":"M"}`, "D"},
		{"title next", `{"title":"T","message":"M"}`, "T"},
		{"message next", `{"message":"M"}`, "M"},
		{"generic fallback", `{}`, "HTTP 500"},
		{"non-json fallback", `<html>oops</html>`, "HTTP 500"},
		{"empty body", ``, "HTTP 500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := errorFromResponse(500, []byte(tc.body), "u", "GET")
			if e.Message != tc.want {
				t.Errorf("Message = %q, want %q", e.Message, tc.want)
			}
		})
	}
}

func TestErrorFromResponseCodePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"service code wins", `{"o:errorCode":"SSS_INVALID","errorCode":"E","code":"C"}`, "SSS_INVALID"},
		{"errorCode next", `{"errorCode":"E","code":"C"}`, "E"},
		{"code next", `{"code":"C"}`, "C"},
		{"synthesized fallback", `{}`, "HTTP_422"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := errorFromResponse(422, []byte(tc.body), "u", "POST")
			if e.Code != tc.want {
				t.Errorf("Code = %q, want %q", e.Code, tc.want)
			}
		})
	}
}

func TestErrorFromResponseKeepsDetails(t *testing.T) {
	e := errorFromResponse(400, []byte(`{"detail":"bad","extra":{"k":"v"}}`), "u", "GET")
	details, ok := e.Details.(map[string]any)
	if !ok {
		t.Fatalf("Expected decoded details, got %#v", e.Details)
	}
	if _, ok := details["extra"]; !ok {
		t.Error("Expected raw error payload to be preserved")
	}
}

func TestHelperPredicates(t *testing.T) {
	if !IsAuthError(&Error{StatusCode: 401, Code: "HTTP_401"}) {
		t.Error("IsAuthError(401) = false")
	}
	if IsAuthError(errors.New("other")) {
		t.Error("IsAuthError(plain error) = true")
	}
	if !IsNotFound(&Error{StatusCode: 404, Code: "HTTP_404"}) {
		t.Error("IsNotFound(404) = false")
	}
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) = true")
	}
}
