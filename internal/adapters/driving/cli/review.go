package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui"
)

var sessionReviewCmd = &cobra.Command{
	Use:   "review <session-id>",
	Short: "Review a session's results interactively",
	Long: `Opens a terminal UI over the session's results.

Controls:
  ↑/k, ↓/j  Navigate results
  enter     Show candidates, then pick one as the link
  r         Edit the query and search again
  esc       Back
  ?         Toggle help
  q         Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionReview,
}

func init() {
	sessionCmd.AddCommand(sessionReviewCmd)
}

func runSessionReview(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	// Fail before entering the alternate screen.
	if _, err := sessionService.Get(ctx, args[0]); err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	app, err := tui.NewApp(&tui.Ports{Sessions: sessionService}, args[0])
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
