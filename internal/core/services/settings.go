package services

import (
	"fmt"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySerperAPIKey   = "serper.api_key"
	keySerperEndpoint = "serper.endpoint"
	keySerperTimeout  = "serper.timeout_seconds"
	keySerperRate     = "serper.rate_per_second"
	keySerperRetries  = "serper.max_retries"
	keyConcurrency    = "search.concurrency"
)

// EnvAPIKey is the environment variable that overrides the stored API key.
//
//nolint:gosec // G101: Variable name, not a credential.
const EnvAPIKey = "SERPER_API_KEY"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// SetEnvLookup enables environment overrides (normally os.LookupEnv).
func (s *SettingsService) SetEnvLookup(lookup func(string) (string, bool)) {
	s.lookupEnv = lookup
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Serper: domain.SerperSettings{
			APIKey:        s.configStore.GetString(keySerperAPIKey),
			Endpoint:      s.getString(keySerperEndpoint, defaults.Serper.Endpoint),
			Timeout:       s.getSeconds(keySerperTimeout, defaults.Serper.Timeout),
			RatePerSecond: s.getFloat(keySerperRate, defaults.Serper.RatePerSecond),
			MaxRetries:    s.getInt(keySerperRetries, defaults.Serper.MaxRetries),
		},
		Search: domain.SearchSettings{
			Concurrency: s.getInt(keyConcurrency, defaults.Search.Concurrency),
		},
	}

	if s.lookupEnv != nil {
		if key, ok := s.lookupEnv(EnvAPIKey); ok && key != "" {
			settings.Serper.APIKey = key
		}
	}

	return settings, nil
}

// Save validates and persists application settings.
// The API key is not written; SetAPIKey stores it.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keySerperEndpoint, settings.Serper.Endpoint); err != nil {
		return fmt.Errorf("save serper endpoint: %w", err)
	}
	if err := s.configStore.Set(keySerperTimeout, int(settings.Serper.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save serper timeout: %w", err)
	}
	if err := s.configStore.Set(keySerperRate, settings.Serper.RatePerSecond); err != nil {
		return fmt.Errorf("save serper rate: %w", err)
	}
	if err := s.configStore.Set(keySerperRetries, settings.Serper.MaxRetries); err != nil {
		return fmt.Errorf("save serper retries: %w", err)
	}
	if err := s.configStore.Set(keyConcurrency, settings.Search.Concurrency); err != nil {
		return fmt.Errorf("save search concurrency: %w", err)
	}

	return nil
}

// SetAPIKey stores the provider credential.
func (s *SettingsService) SetAPIKey(key string) error {
	if key == "" {
		return domain.NewValidationError(keySerperAPIKey, "must not be empty")
	}
	if err := s.configStore.Set(keySerperAPIKey, key); err != nil {
		return fmt.Errorf("save serper api_key: %w", err)
	}
	return nil
}

// getString returns a config string or default if empty.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns a config int or default if zero.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val != 0 {
		return val
	}
	return defaultVal
}

// getSeconds reads an integer number of seconds.
func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if val := s.configStore.GetInt(key); val > 0 {
		return time.Duration(val) * time.Second
	}
	return defaultVal
}

// getFloat accepts TOML floats as well as integers.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}
