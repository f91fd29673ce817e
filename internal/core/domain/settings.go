package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults for provider and search settings.
const (
	DefaultSerperEndpoint = "https://google.serper.dev/search"
	DefaultSerperTimeout  = 15 * time.Second
	DefaultRatePerSecond  = 5.0
	DefaultConcurrency    = 4

	// MaxSerperRetries caps the opt-in retries on 429 responses.
	MaxSerperRetries = 5
)

// SerperSettings holds search provider configuration.
type SerperSettings struct {
	// APIKey is sent as X-API-KEY. Empty means the provider is unconfigured.
	APIKey string

	// Endpoint is the search API URL.
	Endpoint string

	// Timeout bounds each provider call.
	Timeout time.Duration

	// RatePerSecond throttles outbound requests.
	RatePerSecond float64

	// MaxRetries is how often a 429 response is retried. Zero, the default,
	// reports the first 429 as a provider failure.
	MaxRetries int
}

// IsConfigured returns true if a credential is present.
func (s SerperSettings) IsConfigured() bool {
	return s.APIKey != ""
}

// SearchSettings holds orchestration behaviour.
type SearchSettings struct {
	// Concurrency bounds parallel provider calls in one batch.
	Concurrency int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Serper SerperSettings
	Search SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The API key is left empty; it must be configured or supplied via environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Serper: SerperSettings{
			Endpoint:      DefaultSerperEndpoint,
			Timeout:       DefaultSerperTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Search: SearchSettings{
			Concurrency: DefaultConcurrency,
		},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.Serper.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("serper.endpoint", fmt.Sprintf("not an absolute http(s) URL: %q", s.Serper.Endpoint))
	}
	if s.Serper.Timeout <= 0 {
		return NewValidationError("serper.timeout_seconds", "must be positive")
	}
	if s.Serper.RatePerSecond <= 0 {
		return NewValidationError("serper.rate_per_second", "must be positive")
	}
	if s.Serper.MaxRetries < 0 || s.Serper.MaxRetries > MaxSerperRetries {
		return NewValidationError("serper.max_retries", fmt.Sprintf("must be between 0 and %d", MaxSerperRetries))
	}
	if s.Search.Concurrency < 1 {
		return NewValidationError("search.concurrency", "must be at least 1")
	}
	return nil
}
