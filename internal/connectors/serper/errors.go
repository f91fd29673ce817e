package serper

import (
	"errors"
	"fmt"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// ErrMissingAPIKey indicates the client was created without a credential.
var ErrMissingAPIKey = fmt.Errorf("serper: missing API key: %w", domain.ErrProviderNotConfigured)

// RateLimitError is returned for a 429 once any configured retries are spent.
type RateLimitError struct {
	RetryAfter time.Duration
	Attempts   int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("serper: rate limit exceeded after %d attempts (retry after %s)", e.Attempts, e.RetryAfter)
}

// Unwrap allows errors.Is(err, domain.ErrRateLimited).
func (e *RateLimitError) Unwrap() []error {
	return []error{domain.ErrRateLimited, domain.ErrProviderFailed}
}

// APIError represents a non-success Serper response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("serper: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap allows errors.Is(err, domain.ErrProviderFailed).
func (e *APIError) Unwrap() error {
	return domain.ErrProviderFailed
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates a rejected API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
