package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

var (
	parseJSON  bool
	parseWatch bool
)

// watchDebounce coalesces the burst of events editors emit on save.
var watchDebounce = 150 * time.Millisecond

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse Q-coded survey text into questions",
	Long: `Reads survey text where each line starts with a question code (Q5: ...)
or an option code (Q5A: ...) and prints the recognised questions.

Screener questions Q1-Q4 and Q10 are skipped together with their options.
Reads standard input when no file is given or the file is "-". Word (.docx)
and HTML exports are converted to text first.

Use --watch to re-parse the file every time it is saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output questions as JSON")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "re-parse the file when it changes")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if questionParser == nil {
		return errors.New("parser not configured")
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	if parseWatch {
		if path == "-" {
			return errors.New("--watch requires a file")
		}
		return watchAndParse(cmd, path)
	}

	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("rawText", "is required")
	}
	return printQuestions(cmd, questionParser.Parse(text))
}

// readInput reads path, or standard input for "-".
// Files go through the document reader when one is configured.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if documentReader == nil {
		return string(data), nil
	}
	return documentReader.Read(commandContext(cmd), path, data)
}

func printQuestions(cmd *cobra.Command, questions []domain.Question) error {
	if parseJSON {
		data, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal questions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(questions) == 0 {
		cmd.Println("No questions found.")
		return nil
	}

	for _, q := range questions {
		cmd.Printf("%s %s %s\n", styles.Code.Render(q.Code), q.Text, styles.Muted.Render("("+q.Type.String()+")"))
		for _, o := range q.Options {
			cmd.Printf("    %s %s\n", styles.Code.Render(o.Code), o.Label)
		}
	}
	return nil
}

// watchAndParse prints the questions once, then again after every write
// until the command context is cancelled.
func watchAndParse(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	reparse := func() {
		text, err := readInput(cmd, abs)
		if err != nil {
			logger.Warn("Re-parse skipped: %v", err)
			return
		}
		cmd.Println(styles.Muted.Render("--- " + time.Now().Format(time.TimeOnly) + " " + filepath.Base(abs)))
		if err := printQuestions(cmd, questionParser.Parse(text)); err != nil {
			logger.Error("Print questions: %v", err)
		}
	}
	reparse()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("Watch event: %s", event)
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			reparse()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}
