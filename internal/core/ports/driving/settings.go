package driving

import "github.com/dawsonl1/halda-serper/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults per key.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.AppSettings) error

	// SetAPIKey stores the provider credential.
	SetAPIKey(key string) error
}
