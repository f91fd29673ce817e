// Package cli provides the halda command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose bool
	noColor bool
)

// Services injected by main.
var (
	questionParser     driving.QuestionParser
	searchOrchestrator driving.SearchOrchestrator
	sessionService     driving.SessionService
	audienceService    driving.AudienceService
	settingsService    driving.SettingsService
	documentReader     driven.DocumentReader
)

// Services groups the driving ports the commands depend on.
type Services struct {
	Parser       driving.QuestionParser
	Orchestrator driving.SearchOrchestrator
	Sessions     driving.SessionService
	Audiences    driving.AudienceService
	Settings     driving.SettingsService
	// Documents converts .docx and .html exports; nil reads files as text.
	Documents driven.DocumentReader
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	questionParser = s.Parser
	searchOrchestrator = s.Orchestrator
	sessionService = s.Sessions
	audienceService = s.Audiences
	settingsService = s.Settings
	documentReader = s.Documents
}

// SetVersion sets the version reported by `halda version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "halda",
	Short: "Find university pages for survey answers",
	Long: `Halda turns Q-coded survey text into questions and answer options,
then runs a web search for each selected answer and keeps the best
matching pages on the university's own website.

Typical flow:
  halda session new --school "Acme University" --website https://www.acme.edu survey.txt
  halda session run <id> Q5A Q5B=graduate
  halda session show <id> --copy`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		if noColor {
			disableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
