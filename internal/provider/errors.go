package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable covers network failures and timeouts on any
	// outbound provider call.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse means the body was not valid JSON or was missing
	// the expected top-level field.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoEpisodesFound means the provider answered cleanly but listed no
	// episodes. Treated as a failure so the caller routes to fallback, not
	// as an empty success.
	ErrNoEpisodesFound = errors.New("no episodes found")

	// ErrNotFound means the search returned zero candidates.
	ErrNotFound = errors.New("anime not found on provider")
)

// StatusError is a non-2xx provider reply. It unwraps to
// ErrProviderUnavailable so callers branch on the taxonomy while logs keep
// the exact status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrProviderUnavailable }
