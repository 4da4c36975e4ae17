package screener

import (
	"fmt"
	"net/http"
)

// Sentinel status codes carried by MalformedRequestError when no HTTP reply was received.
const (
	StatusTimeout = http.StatusRequestTimeout
	StatusUnknown = 0
)

// ValidationError reports a caller-supplied value outside its accepted set.
// It is always returned before any request is built.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

func newValidationError(field string, value interface{}, format string, a ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, a...)}
}

// MalformedRequestError is returned for a non-success reply or a failed transport call.
type MalformedRequestError struct {
	StatusCode int
	Body       string
	URL        string
	Payload    string
	Err        error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("Error: %d: %s\nRequest: %s\nPayload:\n%s", e.StatusCode, e.Body, e.URL, e.Payload)
}

// Unwrap returns the transport error, if any.
func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call timed out before a reply arrived.
func (e *MalformedRequestError) Timeout() bool { return e.StatusCode == StatusTimeout && e.Err != nil }
