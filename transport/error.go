package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedContentType is the Cause when a 2xx response is not JSON.
	ErrUnexpectedContentType = errors.New("unexpected content type")
	// ErrBodyTooLarge is the Cause when a response exceeds the client's limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Error reports a failed exchange: network failure, non-2xx status, oversized
// body or a non-JSON response. Decode failures are never reported as Error.
type Error struct {
	Method     string
	URL        string
	RequestID  string
	StatusCode int // 0 when no response was received
	Status     string
	// Body is at most bodyExcerptLen bytes of the response body.
	Body string
	// Message is the API's "message" field when the body carried one.
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transport: %s %s", e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	switch {
	case e.Message != "":
		fmt.Fprintf(&b, ": %s", e.Message)
	case e.Cause != nil:
		fmt.Fprintf(&b, ": %v", e.Cause)
	case e.Body != "":
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Temporary reports whether retrying the same request may succeed. Callers
// decide; the client itself never retries.
func (e *Error) Temporary() bool {
	switch {
	case e.StatusCode == 0:
		return e.Cause != nil && !errors.Is(e.Cause, context.Canceled)
	case e.StatusCode == 429, e.StatusCode >= 500:
		return true
	}
	return false
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

const bodyExcerptLen = 512

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodyExcerptLen {
		return s[:bodyExcerptLen] + "..."
	}
	return s
}
