package services

import (
	"context"
	"errors"
	"fmt"

	"maintenance-chatbot-backend/models"
)

// Classifier turns a free-text tenant complaint into a structured
// classification. The triage pipeline depends only on this interface;
// whether the keyword engine or the Gemini engine sits behind it is a
// startup-time deployment choice.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.RawClassification, error)
}

// ErrMissingAPIKey is returned when the Gemini classifier is constructed
// without a configured API key. This is a configuration error and is
// raised before any request is attempted.
var ErrMissingAPIKey = errors.New("gemini api key not configured")

// TransportError wraps a failed outbound call to the AI backend (network,
// auth, quota). It is surfaced to the caller rather than swallowed; the
// pipeline converts it into a processing_error decision.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ai transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
