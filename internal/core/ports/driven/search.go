package driven

import "context"

// SearchProvider runs one web search.
// Backed by the Serper API.
type SearchProvider interface {
	// Search returns organic hits in provider ranking order.
	Search(ctx context.Context, query string) ([]OrganicResult, error)

	// Name identifies the provider in logs.
	Name() string
}

// OrganicResult is one organic hit as returned by the provider.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
