package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

var (
	sessionSchool   string
	sessionWebsite  string
	sessionJSON     bool
	sessionCopy     bool
	sessionAudience string
	sessionAll      bool
	sessionQuery    string
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage search sessions",
	Long: `A session holds the parsed questions for one school and the merged
results of every search run against them. Re-running a selection whose
audience has not changed is skipped.`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new [file|-]",
	Short: "Parse survey text and start a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionNew,
}

var sessionRunCmd = &cobra.Command{
	Use:   "run <session-id> [option[=audience]]...",
	Short: "Search the selected answer options",
	Long: `Searches each selected option once. An option may carry its own
audience (Q5A=graduate), which takes precedence over --audience. When two
questions share an option code, prefix the question code (Q6/Q6A).

Options that already have a result for the same audience are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSessionRun,
}

var sessionRerunCmd = &cobra.Command{
	Use:   "rerun <session-id> <option>",
	Short: "Search one stored result again",
	Long: `Runs exactly one search for a stored result and replaces it.

With --query the text is sent as-is and results are not restricted to the
university website. Without it the original query is used.`,
	Args: cobra.ExactArgs(2),
	RunE: runSessionRerun,
}

var sessionPickCmd = &cobra.Command{
	Use:   "pick <session-id> <option> <n>",
	Short: "Choose candidate n as the link for a result",
	Args:  cobra.ExactArgs(3),
	RunE:  runSessionPick,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's questions and results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions",
	Args:    cobra.NoArgs,
	RunE:    runSessionList,
}

var sessionRemoveCmd = &cobra.Command{
	Use:     "rm <session-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE:    runSessionRemove,
}

func init() {
	sessionNewCmd.Flags().StringVar(&sessionSchool, "school", "", "school name (required)")
	sessionNewCmd.Flags().StringVar(&sessionWebsite, "website", "", "university website used to filter results")
	_ = sessionNewCmd.MarkFlagRequired("school")

	sessionRunCmd.Flags().StringVarP(&sessionAudience, "audience", "a", "", "audience for options without their own")
	sessionRunCmd.Flags().BoolVar(&sessionAll, "all", false, "select every option of every question")

	sessionRerunCmd.Flags().StringVarP(&sessionQuery, "query", "q", "", "literal query to send instead of the default")

	sessionShowCmd.Flags().BoolVar(&sessionCopy, "copy", false, "print one 'label: url' line per result")

	for _, c := range []*cobra.Command{sessionNewCmd, sessionRunCmd, sessionRerunCmd, sessionShowCmd, sessionListCmd} {
		c.Flags().BoolVar(&sessionJSON, "json", false, "output as JSON")
	}

	sessionCmd.AddCommand(sessionNewCmd, sessionRunCmd, sessionRerunCmd, sessionPickCmd,
		sessionShowCmd, sessionListCmd, sessionRemoveCmd)
	rootCmd.AddCommand(sessionCmd)
}

func requireSessions() error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	return nil
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	sess, err := sessionService.Start(commandContext(cmd), driving.StartRequest{
		SchoolName:        sessionSchool,
		UniversityWebsite: sessionWebsite,
		RawText:           text,
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	if sessionJSON {
		return outputJSON(cmd, sess)
	}
	cmd.Printf("%s %s\n", styles.Title.Render("Session"), sess.ID)
	return printQuestions(cmd, sess.Questions)
}

func runSessionRun(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	sess, err := sessionService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	selections, err := buildSelections(sess, args[1:], sessionAudience, sessionAll)
	if err != nil {
		return err
	}

	report, err := sessionService.Run(ctx, sess.ID, selections)
	if errors.Is(err, domain.ErrNothingToSearch) {
		cmd.Println(styles.Muted.Render("All selected answers already have search results."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if sessionJSON {
		return outputJSON(cmd, report)
	}
	fresh := make(map[domain.ResultKey]bool, len(report.NewKeys))
	for _, k := range report.NewKeys {
		fresh[k] = true
	}
	printResults(cmd, report.Results, fresh)
	cmd.Println()
	cmd.Println(styles.Muted.Render(fmt.Sprintf("Searched %d, skipped %d already up to date.",
		report.Searched, report.Skipped)))
	return nil
}

// buildSelections turns "Q5A", "Q5A=graduate" or "Q6/Q6A=graduate" tokens
// into selections.
func buildSelections(sess *domain.Session, tokens []string, questionAudience string, all bool) ([]domain.Selection, error) {
	var selections []domain.Selection
	seen := make(map[domain.ResultKey]bool)

	add := func(questionCode, optionCode, answerAudience string) error {
		sel, ok := sess.Select(questionCode, optionCode, answerAudience, questionAudience)
		if !ok {
			return fmt.Errorf("unknown option %q: %w", formatOptionRef(questionCode, optionCode), domain.ErrNotFound)
		}
		key := domain.ResultKey{QuestionCode: sel.QuestionCode, OptionCode: sel.OptionCode}
		if seen[key] {
			return nil
		}
		seen[key] = true
		selections = append(selections, sel)
		return nil
	}

	for _, token := range tokens {
		ref, audience, _ := strings.Cut(token, "=")
		questionCode, optionCode := parseOptionRef(ref)
		if err := add(questionCode, optionCode, audience); err != nil {
			return nil, err
		}
	}

	if all {
		for _, q := range sess.Questions {
			for _, o := range q.Options {
				if err := add(q.Code, o.Code, ""); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(selections) == 0 {
		return nil, errors.New("no options selected: pass option codes or --all")
	}
	return selections, nil
}

// parseOptionRef splits "Q6/Q6A" into its question and option codes.
// A bare "Q6A" has no question code.
func parseOptionRef(ref string) (questionCode, optionCode string) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if q, o, ok := strings.Cut(ref, "/"); ok {
		return strings.TrimSpace(q), strings.TrimSpace(o)
	}
	return "", ref
}

func formatOptionRef(questionCode, optionCode string) string {
	if questionCode == "" {
		return optionCode
	}
	return questionCode + "/" + optionCode
}

// resultKey finds the stored result for an option reference.
func resultKey(sess *domain.Session, ref string) (domain.ResultKey, error) {
	questionCode, optionCode := parseOptionRef(ref)
	if r, ok := sess.ResultForOption(questionCode, optionCode); ok {
		return r.Key(), nil
	}
	return domain.ResultKey{}, fmt.Errorf("no result for %q: %w", formatOptionRef(questionCode, optionCode), domain.ErrNotFound)
}

func runSessionRerun(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	sess, err := sessionService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	key, err := resultKey(sess, args[1])
	if err != nil {
		return err
	}

	query := strings.TrimSpace(sessionQuery)
	if query == "" {
		query, _ = sess.DefaultQuery(key)
	}
	cmd.Println(styles.Muted.Render("Query: " + query))

	result, err := sessionService.Rerun(ctx, sess.ID, key, sessionQuery)
	if err != nil {
		return fmt.Errorf("rerun failed: %w", err)
	}

	if sessionJSON {
		return outputJSON(cmd, result)
	}
	printResults(cmd, []domain.SearchResult{*result}, nil)
	return nil
}

func runSessionPick(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	n, err := strconv.Atoi(args[2])
	if err != nil || n < 1 {
		return fmt.Errorf("candidate must be a positive number, got %q", args[2])
	}

	sess, err := sessionService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	key, err := resultKey(sess, args[1])
	if err != nil {
		return err
	}

	result, err := sessionService.Pick(ctx, sess.ID, key, n-1)
	if err != nil {
		return fmt.Errorf("pick failed: %w", err)
	}
	cmd.Println(styles.Success.Render("Selected") + " " + result.CopyLine())
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}

	sess, err := sessionService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	switch {
	case sessionJSON:
		return outputJSON(cmd, sess)
	case sessionCopy:
		cmd.Print(copyText(sess.Results))
		return nil
	}

	cmd.Printf("%s %s\n", styles.Title.Render(sess.SchoolName), styles.Muted.Render(sess.UniversityWebsite))
	cmd.Printf("%s %s\n\n", styles.Muted.Render("Session"), sess.ID)
	if err := printQuestions(cmd, sess.Questions); err != nil {
		return err
	}
	cmd.Println()
	cmd.Println(styles.Subtitle.Render("Results"))
	printResults(cmd, sess.Results, nil)
	return nil
}

// copyText renders one "label: url" line per result.
func copyText(results []domain.SearchResult) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.CopyLine())
		b.WriteByte('\n')
	}
	return b.String()
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if err := requireSessions(); err != nil {
		return err
	}

	sessions, err := sessionService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if sessionJSON {
		return outputJSON(cmd, sessions)
	}
	if len(sessions) == 0 {
		cmd.Println("No sessions.")
		return nil
	}
	for _, s := range sessions {
		cmd.Printf("%s  %s  %s\n", s.ID, s.SchoolName,
			styles.Muted.Render(fmt.Sprintf("%d questions, %d results, updated %s",
				len(s.Questions), len(s.Results), s.UpdatedAt.Local().Format("2006-01-02 15:04"))))
	}
	return nil
}

func runSessionRemove(cmd *cobra.Command, args []string) error {
	if err := requireSessions(); err != nil {
		return err
	}
	if err := sessionService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	cmd.Println("Deleted session " + args[0])
	return nil
}
