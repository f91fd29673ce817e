package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search provider and search behaviour.

The Serper API key may also be supplied through the SERPER_API_KEY
environment variable, which takes precedence over the stored key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  endpoint      Serper search endpoint URL
  timeout       per-request timeout in seconds
  rate          maximum provider requests per second
  retries       retries after a 429 response (0 = none)
  concurrency   parallel searches per run`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Store the Serper API key",
	Long:  `Prompts for the Serper API key without echoing it and stores it in the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsAPIKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsAPIKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(styles.Title.Render("Current Settings"))
	cmd.Println()

	cmd.Println(styles.Subtitle.Render("[Serper]"))
	if settings.Serper.IsConfigured() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Serper.APIKey))
	} else {
		cmd.Printf("  API Key: %s\n", styles.Warning.Render("(not set)"))
	}
	cmd.Printf("  Endpoint: %s\n", settings.Serper.Endpoint)
	cmd.Printf("  Timeout: %s\n", settings.Serper.Timeout)
	cmd.Printf("  Rate: %g req/s\n", settings.Serper.RatePerSecond)
	cmd.Printf("  Retries on 429: %d\n", settings.Serper.MaxRetries)
	cmd.Println()

	cmd.Println(styles.Subtitle.Render("[Search]"))
	cmd.Printf("  Concurrency: %d\n", settings.Search.Concurrency)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])
	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("%s %s = %s\n", styles.Success.Render("Saved"), key, value)
	return nil
}

func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case "endpoint":
		settings.Serper.Endpoint = value
	case "timeout":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return domain.NewValidationError("timeout", "must be a whole number of seconds")
		}
		settings.Serper.Timeout = time.Duration(seconds) * time.Second
	case "rate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.NewValidationError("rate", "must be a number")
		}
		settings.Serper.RatePerSecond = rate
	case "retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.NewValidationError("retries", "must be a whole number")
		}
		settings.Serper.MaxRetries = n
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.NewValidationError("concurrency", "must be a whole number")
		}
		settings.Search.Concurrency = n
	default:
		return fmt.Errorf("unknown setting %q (want endpoint, timeout, rate, retries or concurrency)", key)
	}
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Serper API key: ")
	key := readSecret(cmd)
	cmd.Println()
	if key == "" {
		return errors.New("no API key entered")
	}

	if err := settingsService.SetAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Println(styles.Success.Render("API key saved") + " " + maskAPIKey(key))
	return nil
}

// readSecret reads without echo from a terminal, otherwise a plain line.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(cmd *cobra.Command) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
