package driving

import (
	"context"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// SearchRequest is the input of one orchestration call.
type SearchRequest struct {
	SchoolName        string             `json:"schoolName" yaml:"schoolName"`
	UniversityWebsite string             `json:"universityWebsite,omitempty" yaml:"universityWebsite,omitempty"`
	Selections        []domain.Selection `json:"selections" yaml:"selections"`
}

// SearchOrchestrator runs one web search per selection.
type SearchOrchestrator interface {
	// Search returns one result per valid selection in input order.
	// Provider failures degrade single items; a missing credential or
	// invalid request fails the whole call.
	Search(ctx context.Context, req SearchRequest) ([]domain.SearchResult, error)
}
