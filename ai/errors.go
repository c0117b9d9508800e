package ai

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means the provider API key is missing. A run aborts
// before any keyword is touched when it sees this.
var ErrNotConfigured = errors.New("ai: provider API key not configured")

// ProviderError covers transport, auth and rate-limit failures from the
// generation provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ai provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai provider error: %s", e.Message)
}

// ParseError means the provider answered but the payload could not be
// turned into a complete article. Raw keeps the payload for diagnostics.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai response unparsable: %s", e.Reason)
}
