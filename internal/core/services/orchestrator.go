package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.SearchOrchestrator = (*Orchestrator)(nil)

// Orchestrator runs one provider search per selection and shapes the hits
// into results. It is stateless between calls.
type Orchestrator struct {
	provider    driven.SearchProvider
	concurrency int
}

// NewOrchestrator creates a new orchestrator.
// The provider may be nil, in which case every Search fails with
// domain.ErrProviderNotConfigured.
func NewOrchestrator(provider driven.SearchProvider, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = domain.DefaultConcurrency
	}
	return &Orchestrator{
		provider:    provider,
		concurrency: concurrency,
	}
}

// Search returns one result per selection with a label, in input order.
func (o *Orchestrator) Search(ctx context.Context, req driving.SearchRequest) ([]domain.SearchResult, error) {
	logger.Section("Search Orchestration")

	if o.provider == nil {
		logger.Warn("No search provider configured")
		return nil, domain.ErrProviderNotConfigured
	}
	if strings.TrimSpace(req.SchoolName) == "" {
		return nil, domain.NewValidationError("schoolName", "is required")
	}
	if len(req.Selections) == 0 {
		return nil, domain.NewValidationError("selections", "no selected answers were provided")
	}

	var universityRoot string
	if site := strings.TrimSpace(req.UniversityWebsite); site != "" {
		if root, ok := DomainRoot(site); ok {
			universityRoot = root
		} else {
			logger.Warn("Could not derive domain root from %q, results will not be filtered", site)
		}
	}
	logger.Debug("School: %q, domain root: %q", req.SchoolName, universityRoot)

	selections := make([]domain.Selection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		if sel.Label == "" {
			logger.Debug("Skipping selection %s without label", sel.Key())
			continue
		}
		selections = append(selections, sel)
	}

	results := make([]domain.SearchResult, len(selections))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range selections {
		g.Go(func() error {
			results[i] = o.searchOne(ctx, req.SchoolName, universityRoot, selections[i])
			return nil
		})
	}
	// Items never return errors; failures are recorded in their result.
	_ = g.Wait()

	logger.Info("Searched %d selections (%d skipped without label)",
		len(selections), len(req.Selections)-len(selections))
	return results, nil
}

// searchOne runs the provider call for a single selection.
func (o *Orchestrator) searchOne(
	ctx context.Context, schoolName, universityRoot string, sel domain.Selection,
) domain.SearchResult {
	audience := strings.TrimSpace(sel.Audience)
	override := strings.TrimSpace(sel.QueryOverride)

	query := override
	enforceDomain := override == ""
	if enforceDomain {
		query = domain.ComposeQuery(schoolName, audience, sel.Label)
	}
	logger.Debug("%s: query=%q, domain filter=%t", sel.Key(), query, enforceDomain && universityRoot != "")

	hits, err := o.provider.Search(ctx, query)
	if err != nil {
		logger.Error("Search for %q failed: %v", sel.Label, fmt.Errorf("%w: %w", domain.ErrProviderFailed, err))
		return domain.SearchResult{
			QuestionCode: sel.QuestionCode,
			OptionCode:   sel.OptionCode,
			Label:        sel.Label,
			Options:      []domain.Candidate{},
		}
	}

	if enforceDomain && universityRoot != "" {
		hits = filterByDomain(hits, universityRoot)
	}

	candidates := topCandidates(hits, domain.MaxCandidates)
	var primary *string
	if len(candidates) > 0 {
		primary = &candidates[0].URL
	}
	logger.Debug("%s: %d candidates", sel.Key(), len(candidates))

	return domain.SearchResult{
		QuestionCode: sel.QuestionCode,
		OptionCode:   sel.OptionCode,
		Label:        sel.Label,
		Audience:     domain.StringPtr(audience),
		URL:          primary,
		Options:      candidates,
	}
}

// filterByDomain keeps hits whose link shares the university's domain root.
func filterByDomain(hits []driven.OrganicResult, root string) []driven.OrganicResult {
	kept := make([]driven.OrganicResult, 0, len(hits))
	for _, h := range hits {
		if r, ok := DomainRoot(h.Link); ok && r == root {
			kept = append(kept, h)
		}
	}
	return kept
}

// topCandidates keeps at most limit hits in provider order.
func topCandidates(hits []driven.OrganicResult, limit int) []domain.Candidate {
	if len(hits) > limit {
		hits = hits[:limit]
	}
	candidates := make([]domain.Candidate, len(hits))
	for i, h := range hits {
		candidates[i] = domain.Candidate{
			Title:   h.Title,
			URL:     h.Link,
			Snippet: h.Snippet,
		}
	}
	return candidates
}
