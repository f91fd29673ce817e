package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// Ensure AudienceStore implements the interface.
var _ driven.AudienceStore = (*AudienceStore)(nil)

// AudienceStore is an in-memory implementation of driven.AudienceStore.
type AudienceStore struct {
	mu        sync.Mutex
	audiences []domain.Audience
}

// NewAudienceStore creates a new in-memory audience store.
func NewAudienceStore() *AudienceStore {
	return &AudienceStore{}
}

// Save stores an audience, refreshing AddedAt if the value already exists.
func (s *AudienceStore) Save(_ context.Context, audience domain.Audience) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.audiences {
		if a.Value == audience.Value {
			s.audiences[i] = audience
			return nil
		}
	}
	s.audiences = append(s.audiences, audience)
	return nil
}

// List returns audiences in insertion order.
func (s *AudienceStore) List(_ context.Context) ([]domain.Audience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Audience, len(s.audiences))
	copy(out, s.audiences)
	return out, nil
}

// DeleteBefore removes audiences added before cutoff.
func (s *AudienceStore) DeleteBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.audiences[:0]
	removed := 0
	for _, a := range s.audiences {
		if a.AddedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.audiences = kept
	return removed, nil
}
