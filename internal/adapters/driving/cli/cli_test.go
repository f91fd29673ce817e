package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dawsonl1/halda-serper/internal/adapters/driven/storage/memory"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/core/services"
	"github.com/dawsonl1/halda-serper/internal/extractors"
)

const surveyText = "Q1: Screener?\nQ1A: Yes\nQ5: Which pages?\nQ5A: Tuition\nQ5B: Housing\nQ6: Anything else?"

// stubProvider answers queries from a fixed map and records them.
type stubProvider struct {
	mu      sync.Mutex
	hits    map[string][]driven.OrganicResult
	queries []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(_ context.Context, query string) ([]driven.OrganicResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, query)
	return p.hits[query], nil
}

func (p *stubProvider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

// setupTestServices wires real services over memory stores and returns
// the provider stub.
func setupTestServices(t *testing.T) *stubProvider {
	t.Helper()

	provider := &stubProvider{hits: map[string][]driven.OrganicResult{
		"Acme U Tuition": {
			{Title: "Tuition and fees", Link: "https://www.acme.edu/tuition"},
			{Title: "Tuition blog", Link: "https://blog.example.com/acme"},
			{Title: "Bursar", Link: "https://bursar.acme.edu/rates"},
		},
		"Acme U graduate Housing": {{Title: "Graduate housing", Link: "https://housing.acme.edu/grad"}},
		"acme dorm reviews":       {{Title: "Dorm reviews", Link: "https://reviews.example.com/acme"}},
	}}

	parser := services.NewQuestionParser()
	orchestrator := services.NewOrchestrator(provider, 2)
	SetServices(Services{
		Parser:       parser,
		Orchestrator: orchestrator,
		Sessions:     services.NewSessionService(memory.NewSessionStore(), parser, orchestrator),
		Audiences:    services.NewAudienceService(memory.NewAudienceStore()),
		Settings:     services.NewSettingsService(memory.NewConfigStore()),
		Documents:    extractors.Default(),
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return provider
}

// executeCommand runs the root command with args and returns its output.
// Flags are reset first because cobra keeps their values between runs.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// startTestSession creates a session for Acme U and returns its id.
func startTestSession(t *testing.T) string {
	t.Helper()
	sess, err := sessionService.Start(context.Background(), driving.StartRequest{
		SchoolName:        "Acme U",
		UniversityWebsite: "https://www.acme.edu",
		RawText:           surveyText,
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return sess.ID
}
