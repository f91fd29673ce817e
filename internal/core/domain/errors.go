package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing required input.
	// Validation failures abort the operation before any processing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderNotConfigured indicates the search provider credential is missing.
	// The whole orchestration call fails before any provider request is made.
	ErrProviderNotConfigured = errors.New("search provider not configured")

	// ErrProviderFailed indicates a single search provider call failed.
	// It is absorbed per selection and never aborts a batch.
	ErrProviderFailed = errors.New("search provider request failed")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrNothingToSearch indicates every requested selection already has a
	// result for its current audience.
	ErrNothingToSearch = errors.New("all selected answers already have search results")
)

// ValidationError describes which input field failed validation.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %q: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
