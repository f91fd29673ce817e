package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

var audienceJSON bool

var audienceCmd = &cobra.Command{
	Use:   "audience",
	Short: "List or add search audiences",
	Long: `Audiences are inserted into composed queries between the school name and
the answer label, e.g. "Acme University graduate Tuition".

Custom audiences expire 24 hours after they are added.`,
}

var audienceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available audiences",
	Args:    cobra.NoArgs,
	RunE:    runAudienceList,
}

var audienceAddCmd = &cobra.Command{
	Use:   "add <value> [label]",
	Short: "Add a custom audience for 24 hours",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAudienceAdd,
}

func init() {
	audienceListCmd.Flags().BoolVar(&audienceJSON, "json", false, "output as JSON")
	audienceCmd.AddCommand(audienceListCmd, audienceAddCmd)
	rootCmd.AddCommand(audienceCmd)
}

func runAudienceList(cmd *cobra.Command, _ []string) error {
	if audienceService == nil {
		return errors.New("audience service not configured")
	}

	audiences, err := audienceService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("list audiences: %w", err)
	}

	if audienceJSON {
		return outputJSON(cmd, audiences)
	}

	now := time.Now()
	for _, a := range audiences {
		value := a.Value
		if value == "" {
			value = `""`
		}
		line := fmt.Sprintf("%-16s %s", value, a.Label)
		if a.IsCustom() {
			left := domain.CustomAudienceTTL - now.Sub(a.AddedAt)
			line += " " + styles.Muted.Render(fmt.Sprintf("(custom, expires in %s)", left.Round(time.Minute)))
		}
		cmd.Println(line)
	}
	return nil
}

func runAudienceAdd(cmd *cobra.Command, args []string) error {
	if audienceService == nil {
		return errors.New("audience service not configured")
	}

	label := ""
	if len(args) == 2 {
		label = args[1]
	}

	a, err := audienceService.Add(commandContext(cmd), args[0], label)
	if err != nil {
		return fmt.Errorf("add audience: %w", err)
	}

	if !a.IsCustom() {
		cmd.Printf("%q is a built-in audience (%s)\n", a.Value, a.Label)
		return nil
	}
	cmd.Printf("Added audience %q (%s)\n", a.Value, a.Label)
	return nil
}
