package services

import (
	"strings"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// MergeResults overlays fresh results onto prior ones by key.
// A fresh result replaces the prior entry in place; keys not yet present are
// appended in fresh order. Neither input is modified.
func MergeResults(prior, fresh []domain.SearchResult) []domain.SearchResult {
	merged := make([]domain.SearchResult, 0, len(prior)+len(fresh))
	position := make(map[domain.ResultKey]int, len(prior)+len(fresh))

	for _, group := range [][]domain.SearchResult{prior, fresh} {
		for _, r := range group {
			if i, ok := position[r.Key()]; ok {
				merged[i] = r
				continue
			}
			position[r.Key()] = len(merged)
			merged = append(merged, r)
		}
	}
	return merged
}

// PendingSelections splits candidates into those that need a provider call
// and those already satisfied by prior. A selection is satisfied when prior
// holds a result for its key searched with the same audience.
func PendingSelections(
	candidates []domain.Selection, prior []domain.SearchResult,
) (pending, skipped []domain.Selection) {
	byKey := IndexResults(prior)
	for _, sel := range candidates {
		existing, ok := byKey[sel.Key()]
		if ok && existing.AudienceValue() == strings.TrimSpace(sel.Audience) {
			skipped = append(skipped, sel)
			continue
		}
		pending = append(pending, sel)
	}
	return pending, skipped
}

// IndexResults maps results by key; later duplicates win.
func IndexResults(results []domain.SearchResult) map[domain.ResultKey]domain.SearchResult {
	byKey := make(map[domain.ResultKey]domain.SearchResult, len(results))
	for _, r := range results {
		byKey[r.Key()] = r
	}
	return byKey
}

// ResultKeys returns the keys of results in order.
func ResultKeys(results []domain.SearchResult) []domain.ResultKey {
	keys := make([]domain.ResultKey, len(results))
	for i, r := range results {
		keys[i] = r.Key()
	}
	return keys
}
