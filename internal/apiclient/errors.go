package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport means the request never produced a usable response
	ErrTransport = errors.New("request failed")

	// ErrDecode means a response arrived but its body had the wrong shape
	ErrDecode = errors.New("unexpected response body")
)

// StatusError is a non-2xx response from the service
type StatusError struct {
	StatusCode int
	// Detail is the server's "detail" string, empty when absent or not a string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Unauthorized reports whether the service rejected the session
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// DetailOr returns the server detail, or fallback when there is none
func (e *StatusError) DetailOr(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// AsStatusError unwraps err to a *StatusError if it is one
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the service
func IsUnauthorized(err error) bool {
	statusErr, ok := AsStatusError(err)
	return ok && statusErr.Unauthorized()
}
