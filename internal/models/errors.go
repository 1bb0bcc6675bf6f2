package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories, services and handlers.
// Handlers map these to HTTP status codes; callers check with errors.Is.
var (
	// ErrNotFound covers unknown order lines, dispatch notes and product codes.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when adding a catalogue entry or hidden part
	// whose key already exists. No remote write is attempted.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConcurrencyConflict means the catalogue version token went stale
	// between fetch and write. The caller must re-fetch and retry; the sync
	// engine never retries on its own.
	ErrConcurrencyConflict = errors.New("catalogue version conflict")

	// ErrRemoteUnavailable means the external catalogue store could not be
	// reached or refused the request for a non-conflict reason.
	ErrRemoteUnavailable = errors.New("catalogue store unavailable")

	// ErrNotConfigured means no write credential is configured for the
	// catalogue store. Read paths may still succeed via the public URL.
	ErrNotConfigured = errors.New("catalogue store not configured for writes")
)

// ValidationError reports invalid caller input (missing picker name, missing
// product code, empty order). No state changes when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
