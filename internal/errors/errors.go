// Package errors provides the error taxonomy shared by the Dragon Ball API client
// and the MCP tool handlers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// UpstreamHTTPError indicates the upstream API answered with a non-2xx status.
type UpstreamHTTPError struct {
	StatusCode int
	URL        string
	Body       string // truncated response body, may be empty
}

func (e *UpstreamHTTPError) Error() string {
	msg := fmt.Sprintf("upstream API returned HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// NotFound reports whether the upstream answered 404.
func (e *UpstreamHTTPError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NewUpstreamHTTPError creates an UpstreamHTTPError.
func NewUpstreamHTTPError(statusCode int, url, body string) *UpstreamHTTPError {
	return &UpstreamHTTPError{
		StatusCode: statusCode,
		URL:        url,
		Body:       body,
	}
}

// TransportError indicates the request never produced a usable response:
// connection failures, timeouts, unreadable bodies or malformed JSON.
type TransportError struct {
	Op  string // "request", "read", "decode"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("transport error (%s) for %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("transport error (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError.
func NewTransportError(op, url string, err error) *TransportError {
	return &TransportError{
		Op:  op,
		URL: url,
		Err: err,
	}
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUpstreamHTTP returns true if err is or wraps an UpstreamHTTPError.
func IsUpstreamHTTP(err error) bool {
	var target *UpstreamHTTPError
	return errors.As(err, &target)
}

// IsTransport returns true if err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// StatusCode extracts the upstream HTTP status from err, or 0 if there is none.
func StatusCode(err error) int {
	var target *UpstreamHTTPError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

// Kind returns a short label for err suitable for metric labels and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return "validation"
	case IsUpstreamHTTP(err):
		return "upstream_http"
	case IsTransport(err):
		return "transport"
	default:
		return "internal"
	}
}
