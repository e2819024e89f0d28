// Package ai builds provider-specific AI backend requests and parses
// structured model output. Two backend variants exist: the native
// Gemini API with search grounding, and generic chat-completion-compatible
// HTTP APIs. The variant is resolved once from the provider record.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Configuration errors. These are surfaced to the user as actionable
// messages and never retried automatically.
var (
	// ErrNotConfigured means no active provider is selected.
	ErrNotConfigured = errors.New("no active AI provider configured")

	// ErrMissingAPIKey means the active provider has no credentials.
	ErrMissingAPIKey = errors.New("AI provider API key is not set")
)

// Structured-output errors. The parse detail is logged, not shown to users.
var (
	// ErrStructuredOutput means the model response was not valid JSON or
	// omitted required fields.
	ErrStructuredOutput = errors.New("model response is not the expected JSON structure")

	// ErrNotArray means a batch generation response was valid JSON but not a
	// top-level array.
	ErrNotArray = errors.New("model response is not a JSON array")
)

// TransportError is a network failure or non-success status from either
// backend. Surfaced with a retry affordance; never retried automatically.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("AI backend returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("AI backend request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsCancellation reports whether err is a cooperative cancellation rather
// than a failure. Cancellations are never surfaced to the user and never
// logged as errors.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
