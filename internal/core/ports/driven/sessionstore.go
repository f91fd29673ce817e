package driven

import (
	"context"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// SessionStore persists sessions together with their merged results.
type SessionStore interface {
	// Save stores or replaces a session, including all of its results.
	Save(ctx context.Context, session domain.Session) error

	// Get retrieves a session by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// List returns all sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes a session. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
