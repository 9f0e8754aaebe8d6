package llm

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotConfigured is returned before any network call when no credential is set
	ErrNotConfigured = errors.New("provider not configured")

	// ErrEmptyResponse is returned when a 2xx response carries no usable text
	ErrEmptyResponse = errors.New("provider returned an empty response")
)

const maxErrorBodyChars = 300

// TimeoutError is returned when a provider call hits its deadline
type TimeoutError struct {
	Provider string
	After    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Provider, e.After)
}

// ProviderHTTPError is returned for non-2xx provider responses
type ProviderHTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.Status, truncate(e.Body, maxErrorBodyChars))
}

// Kind returns a short machine-readable label for a generation error
func Kind(err error) string {
	var timeoutErr *TimeoutError
	var httpErr *ProviderHTTPError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	default:
		return "transport_error"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
