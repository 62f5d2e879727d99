package api

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned before any network call when an
// authenticated endpoint is used without a stored token.
var ErrNotAuthenticated = errors.New("not logged in")

// ErrSessionExpired is returned after the server rejects the token. The
// session is already cleared and expiry subscribers notified by the time
// callers see it.
var ErrSessionExpired = errors.New("session expired, log in again")

// TransportError is a non-2xx HTTP response or a failed request. Never
// retried; the caller decides whether to surface it.
type TransportError struct {
	Status string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-success envelope code. Message is taken verbatim from
// the envelope.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected with code %s", e.Code)
}
