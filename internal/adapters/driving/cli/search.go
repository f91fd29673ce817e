package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

var (
	searchFile    string
	searchSchool  string
	searchWebsite string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search --file selections.yaml",
	Short: "Run a one-off search for a list of selections",
	Long: `Runs one web search per selection without creating a session.

The file is YAML or JSON with the fields schoolName, universityWebsite
and selections. Each selection names its questionCode, optionCode and
label, and may set audience and queryOverride:

  schoolName: Acme University
  universityWebsite: https://www.acme.edu
  selections:
    - {questionCode: Q5, optionCode: Q5A, label: Tuition, audience: graduate}
    - {questionCode: Q5, optionCode: Q5B, label: Housing}

--school and --website override the values in the file.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "selections file (YAML or JSON, - for stdin)")
	searchCmd.Flags().StringVar(&searchSchool, "school", "", "school name")
	searchCmd.Flags().StringVar(&searchWebsite, "website", "", "university website used to filter results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	_ = searchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchOrchestrator == nil {
		return errors.New("search service not configured")
	}

	raw, err := readInput(cmd, searchFile)
	if err != nil {
		return err
	}
	req, err := decodeSearchRequest([]byte(raw))
	if err != nil {
		return err
	}
	if searchSchool != "" {
		req.SchoolName = searchSchool
	}
	if searchWebsite != "" {
		req.UniversityWebsite = searchWebsite
	}

	results, err := searchOrchestrator.Search(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	printResults(cmd, results, nil)
	return nil
}

// decodeSearchRequest accepts YAML, which includes JSON.
func decodeSearchRequest(data []byte) (driving.SearchRequest, error) {
	var req driving.SearchRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decode selections: %w", err)
	}
	return req, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printResults renders each result with its candidates. Keys in highlight
// are marked as new.
func printResults(cmd *cobra.Command, results []domain.SearchResult, highlight map[domain.ResultKey]bool) {
	if len(results) == 0 {
		cmd.Println("No results.")
		return
	}

	for _, r := range results {
		header := styles.Code.Render(r.OptionCode) + " " + r.Label
		if a := r.AudienceValue(); a != "" {
			header += " " + styles.Muted.Render("["+a+"]")
		}
		if highlight[r.Key()] {
			header += " " + styles.Success.Render("new")
		}
		cmd.Println(header)

		if r.URL == nil {
			cmd.Println("    " + styles.Warning.Render(domain.NoResultsText))
			continue
		}
		for i, c := range r.Options {
			marker := " "
			if c.URL == r.URLValue() {
				marker = "*"
			}
			cmd.Printf("  %s %d. %s\n", marker, i+1, styles.URL.Render(c.URL))
			if c.Title != "" {
				cmd.Printf("       %s\n", styles.Muted.Render(c.Title))
			}
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
