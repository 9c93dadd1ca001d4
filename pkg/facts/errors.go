package facts

import (
	"errors"
	"fmt"
)

// RequestError is returned when a request never produced an HTTP response:
// unreachable host, refused connection, timeout or canceled context.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the collection answered with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int

	// Body is the leading part of the response body, for diagnostics only.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// DecodeError is returned when the list response is not a JSON array of facts.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding facts from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsUnreachable reports whether err came from a request that never reached
// the collection.
func IsUnreachable(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// *StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
