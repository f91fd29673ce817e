package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure AudienceService implements the interface.
var _ driving.AudienceService = (*AudienceService)(nil)

// AudienceService merges built-in audiences with short-lived custom ones.
type AudienceService struct {
	store driven.AudienceStore
	now   func() time.Time
}

// NewAudienceService creates a new audience service.
func NewAudienceService(store driven.AudienceStore) *AudienceService {
	return &AudienceService{store: store, now: time.Now}
}

// List returns built-in audiences followed by unexpired custom ones.
// Expired custom audiences are pruned from the store.
func (s *AudienceService) List(ctx context.Context) ([]domain.Audience, error) {
	now := s.now()
	if n, err := s.store.DeleteBefore(ctx, now.Add(-domain.CustomAudienceTTL)); err != nil {
		return nil, fmt.Errorf("prune audiences: %w", err)
	} else if n > 0 {
		logger.Debug("Pruned %d expired audiences", n)
	}

	custom, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audiences: %w", err)
	}

	all := domain.BuiltInAudiences()
	for _, a := range custom {
		if !a.Expired(now) && !domain.IsBuiltInAudience(a.Value) {
			all = append(all, a)
		}
	}
	return all, nil
}

// Add registers a custom audience. Adding a built-in value is a no-op.
func (s *AudienceService) Add(ctx context.Context, value, label string) (*domain.Audience, error) {
	value = strings.TrimSpace(value)
	label = strings.TrimSpace(label)
	if value == "" {
		return nil, domain.NewValidationError("value", "is required")
	}
	if label == "" {
		label = value
	}

	for _, a := range domain.BuiltInAudiences() {
		if a.Value == value {
			return &a, nil
		}
	}

	audience := domain.Audience{Value: value, Label: label, AddedAt: s.now()}
	if err := s.store.Save(ctx, audience); err != nil {
		return nil, fmt.Errorf("save audience: %w", err)
	}
	return &audience, nil
}
