// Command halda finds university pages for Q-coded survey answers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dawsonl1/halda-serper/internal/adapters/driven/config/file"
	"github.com/dawsonl1/halda-serper/internal/adapters/driven/storage/memory"
	"github.com/dawsonl1/halda-serper/internal/adapters/driven/storage/sqlite"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/cli"
	"github.com/dawsonl1/halda-serper/internal/connectors/serper"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/services"
	"github.com/dawsonl1/halda-serper/internal/extractors"
)

// version is set at build time via ldflags.
var version = "dev"

// Environment overrides.
const (
	envHome      = "HALDA_HOME"
	envEphemeral = "HALDA_EPHEMERAL"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	homeDir := os.Getenv(envHome)

	configStore, err := file.NewConfigStore(homeDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settingsService.SetEnvLookup(os.LookupEnv)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// A nil provider makes searches fail with ErrProviderNotConfigured
	// while parsing and settings commands keep working.
	var provider driven.SearchProvider
	client, err := serper.NewClient(settings.Serper)
	switch {
	case err == nil:
		provider = client
	case errors.Is(err, serper.ErrMissingAPIKey):
	default:
		return fmt.Errorf("create serper client: %w", err)
	}

	var (
		sessionStore  driven.SessionStore
		audienceStore driven.AudienceStore
	)
	if os.Getenv(envEphemeral) != "" {
		sessionStore = memory.NewSessionStore()
		audienceStore = memory.NewAudienceStore()
	} else {
		store, err := sqlite.NewStore(dataDir(configStore.Path()))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()
		sessionStore = store.SessionStore()
		audienceStore = store.AudienceStore()
	}

	parser := services.NewQuestionParser()
	orchestrator := services.NewOrchestrator(provider, settings.Search.Concurrency)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Parser:       parser,
		Orchestrator: orchestrator,
		Sessions:     services.NewSessionService(sessionStore, parser, orchestrator),
		Audiences:    services.NewAudienceService(audienceStore),
		Settings:     settingsService,
		Documents:    extractors.Default(),
	})
	return cli.Execute(ctx)
}

// dataDir places the database next to the config file.
func dataDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "data")
}
