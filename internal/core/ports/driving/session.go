package driving

import (
	"context"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// StartRequest creates a session from raw text.
type StartRequest struct {
	SchoolName        string
	UniversityWebsite string
	RawText           string
}

// SessionService manages incremental search sessions.
type SessionService interface {
	// Start parses the text and persists a new session.
	Start(ctx context.Context, req StartRequest) (*domain.Session, error)

	// Run searches only selections not already satisfied and merges the results.
	// Returns domain.ErrNothingToSearch when every selection is satisfied.
	Run(ctx context.Context, sessionID string, selections []domain.Selection) (*domain.RunReport, error)

	// Rerun re-searches one stored result, bypassing the skip policy.
	// An empty override reruns the composed query with domain filtering.
	Rerun(ctx context.Context, sessionID string, key domain.ResultKey, queryOverride string) (*domain.SearchResult, error)

	// Pick promotes candidate index of a stored result to its primary URL.
	Pick(ctx context.Context, sessionID string, key domain.ResultKey, index int) (*domain.SearchResult, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// List returns all sessions.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error
}
