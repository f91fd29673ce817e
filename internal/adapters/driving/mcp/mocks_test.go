package mcp

import (
	"context"
	"testing"

	"github.com/dawsonl1/halda-serper/internal/adapters/driven/storage/memory"
	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/core/services"
)

// mockSearch records the last request and returns canned results.
type mockSearch struct {
	results []domain.SearchResult
	err     error
	lastReq driving.SearchRequest
}

func (m *mockSearch) Search(_ context.Context, req driving.SearchRequest) ([]domain.SearchResult, error) {
	m.lastReq = req
	return m.results, m.err
}

// stubProvider answers queries from a fixed map.
type stubProvider struct {
	hits map[string][]driven.OrganicResult
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(_ context.Context, query string) ([]driven.OrganicResult, error) {
	return p.hits[query], nil
}

const surveyText = "Q5: Which pages?\nQ5A: Tuition\nQ5B: Housing"

// newSessionServer wires real services over memory stores.
func newSessionServer(t *testing.T) *Server {
	t.Helper()
	provider := &stubProvider{hits: map[string][]driven.OrganicResult{
		"Acme U Tuition": {
			{Title: "Tuition", Link: "https://www.acme.edu/tuition"},
			{Title: "Blog", Link: "https://blog.example.com/acme"},
		},
		"Acme U graduate Housing": {{Title: "Grad housing", Link: "https://housing.acme.edu/grad"}},
		"acme dorms":              {{Title: "Dorm blog", Link: "https://blog.example.com/dorms"}},
	}}

	parser := services.NewQuestionParser()
	orchestrator := services.NewOrchestrator(provider, 2)

	server, err := NewServer(&Ports{
		Parser:    parser,
		Search:    orchestrator,
		Sessions:  services.NewSessionService(memory.NewSessionStore(), parser, orchestrator),
		Audiences: services.NewAudienceService(memory.NewAudienceStore()),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}
