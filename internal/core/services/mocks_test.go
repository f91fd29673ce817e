package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// mockProvider returns canned hits per query and records every call.
type mockProvider struct {
	mu      sync.Mutex
	hits    map[string][]driven.OrganicResult
	fail    map[string]bool
	queries []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	block       chan struct{}
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		hits: make(map[string][]driven.OrganicResult),
		fail: make(map[string]bool),
	}
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Search(ctx context.Context, query string) ([]driven.OrganicResult, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.fail[query] {
		return nil, errors.New("upstream exploded")
	}
	return m.hits[query], nil
}

func (m *mockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func hit(link string) driven.OrganicResult {
	return driven.OrganicResult{Title: "title " + link, Link: link, Snippet: "snippet"}
}
