package driven

import (
	"context"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// AudienceStore persists custom audiences.
type AudienceStore interface {
	// Save stores or refreshes a custom audience keyed by value.
	Save(ctx context.Context, audience domain.Audience) error

	// List returns custom audiences in insertion order.
	List(ctx context.Context) ([]domain.Audience, error)

	// DeleteBefore removes audiences added before cutoff and returns the count.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}
