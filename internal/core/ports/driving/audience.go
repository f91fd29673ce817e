package driving

import (
	"context"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// AudienceService exposes the audience catalog.
type AudienceService interface {
	// List returns built-in audiences followed by unexpired custom ones.
	List(ctx context.Context) ([]domain.Audience, error)

	// Add registers a custom audience for domain.CustomAudienceTTL.
	Add(ctx context.Context, value, label string) (*domain.Audience, error)
}
