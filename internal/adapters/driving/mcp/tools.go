package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

// ParseInput is the input schema for the parse_questions tool.
type ParseInput struct {
	Text string `json:"text" jsonschema:"survey text with one Q-coded question or option per line"`
}

// ParseOutput is the output schema for the parse_questions tool.
type ParseOutput struct {
	Questions []domain.Question `json:"questions"`
	Count     int               `json:"count"`
}

// SelectionInput is one answer option to search for.
type SelectionInput struct {
	QuestionCode  string `json:"questionCode" jsonschema:"code of the owning question, e.g. Q5"`
	OptionCode    string `json:"optionCode" jsonschema:"code of the answer option, e.g. Q5A"`
	Label         string `json:"label" jsonschema:"answer text used in the query"`
	Audience      string `json:"audience,omitempty" jsonschema:"optional audience such as graduate or online"`
	QueryOverride string `json:"queryOverride,omitempty" jsonschema:"literal query; disables website filtering"`
}

// SearchInput is the input schema for the search_selected tool.
type SearchInput struct {
	SchoolName        string           `json:"schoolName" jsonschema:"school name placed at the start of each query"`
	UniversityWebsite string           `json:"universityWebsite,omitempty" jsonschema:"results are kept only from this site's domain"`
	Selections        []SelectionInput `json:"selections" jsonschema:"answer options to search for"`
}

// ResultOutput is one search result.
type ResultOutput struct {
	QuestionCode string             `json:"questionCode"`
	OptionCode   string             `json:"optionCode"`
	Label        string             `json:"label"`
	Audience     *string            `json:"audience"`
	URL          *string            `json:"url"`
	Options      []domain.Candidate `json:"options"`
	CopyLine     string             `json:"copyLine"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Results []ResultOutput `json:"results"`
	Count   int            `json:"count"`
}

// StartSessionInput is the input schema for the start_session tool.
type StartSessionInput struct {
	SchoolName        string `json:"schoolName" jsonschema:"school name placed at the start of each query"`
	UniversityWebsite string `json:"universityWebsite,omitempty" jsonschema:"results are kept only from this site's domain"`
	Text              string `json:"text" jsonschema:"Q-coded survey text"`
}

// StartSessionOutput is the output schema for the start_session tool.
type StartSessionOutput struct {
	SessionID string            `json:"sessionId"`
	Questions []domain.Question `json:"questions"`
}

// SessionSelection picks an option of a session question.
type SessionSelection struct {
	QuestionCode string `json:"questionCode,omitempty" jsonschema:"owning question; needed only when questions share an option code"`
	OptionCode   string `json:"optionCode" jsonschema:"option code, e.g. Q5A"`
	Audience     string `json:"audience,omitempty" jsonschema:"audience for this option; overrides the run audience"`
}

// RunSessionInput is the input schema for the run_session tool.
type RunSessionInput struct {
	SessionID  string             `json:"sessionId" jsonschema:"session returned by start_session"`
	Audience   string             `json:"audience,omitempty" jsonschema:"audience for options without their own"`
	Selections []SessionSelection `json:"selections" jsonschema:"options to search"`
}

// RunSessionOutput is the output schema for the run_session tool.
type RunSessionOutput struct {
	Results  []ResultOutput `json:"results"`
	Searched int            `json:"searched"`
	Skipped  int            `json:"skipped"`
	Message  string         `json:"message,omitempty"`
}

// RerunInput is the input schema for the rerun_result tool.
type RerunInput struct {
	SessionID    string `json:"sessionId" jsonschema:"session returned by start_session"`
	QuestionCode string `json:"questionCode,omitempty" jsonschema:"owning question; needed only when questions share an option code"`
	OptionCode   string `json:"optionCode" jsonschema:"option whose result is searched again"`
	Query        string `json:"query,omitempty" jsonschema:"literal query; empty reuses the original query"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_questions",
		Description: "Parse Q-coded survey text into questions and answer options",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_selected",
		Description: "Search the web for each selected answer and keep the top university pages",
	}, s.handleSearch)

	if s.ports.Sessions == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "start_session",
		Description: "Parse survey text and start a session that accumulates results across runs",
	}, s.handleStartSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_session",
		Description: "Search selected options of a session, skipping those already searched for the same audience",
	}, s.handleRunSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rerun_result",
		Description: "Search one stored session result again, optionally with a literal query",
	}, s.handleRerun)
}

func (s *Server) handleParse(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ParseOutput{}, domain.NewValidationError("rawText", "is required")
	}
	questions := s.ports.Parser.Parse(input.Text)
	return nil, ParseOutput{Questions: questions, Count: len(questions)}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req := driving.SearchRequest{
		SchoolName:        input.SchoolName,
		UniversityWebsite: input.UniversityWebsite,
		Selections:        make([]domain.Selection, len(input.Selections)),
	}
	for i, sel := range input.Selections {
		req.Selections[i] = domain.Selection(sel)
	}

	results, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	out := toResultOutputs(results)
	return nil, SearchOutput{Results: out, Count: len(out)}, nil
}

func (s *Server) handleStartSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StartSessionInput,
) (*mcp.CallToolResult, StartSessionOutput, error) {
	sess, err := s.ports.Sessions.Start(ctx, driving.StartRequest{
		SchoolName:        input.SchoolName,
		UniversityWebsite: input.UniversityWebsite,
		RawText:           input.Text,
	})
	if err != nil {
		return nil, StartSessionOutput{}, err
	}
	return nil, StartSessionOutput{SessionID: sess.ID, Questions: sess.Questions}, nil
}

func (s *Server) handleRunSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunSessionInput,
) (*mcp.CallToolResult, RunSessionOutput, error) {
	sess, err := s.ports.Sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, RunSessionOutput{}, err
	}

	selections := make([]domain.Selection, 0, len(input.Selections))
	for _, in := range input.Selections {
		sel, ok := sess.Select(in.QuestionCode, in.OptionCode, in.Audience, input.Audience)
		if !ok {
			return nil, RunSessionOutput{}, fmt.Errorf("unknown option %q: %w", optionRef(in.QuestionCode, in.OptionCode), domain.ErrNotFound)
		}
		selections = append(selections, sel)
	}

	report, err := s.ports.Sessions.Run(ctx, sess.ID, selections)
	if errors.Is(err, domain.ErrNothingToSearch) {
		return nil, RunSessionOutput{
			Results: toResultOutputs(sess.Results),
			Skipped: len(selections),
			Message: err.Error(),
		}, nil
	}
	if err != nil {
		return nil, RunSessionOutput{}, err
	}

	return nil, RunSessionOutput{
		Results:  toResultOutputs(report.Results),
		Searched: report.Searched,
		Skipped:  report.Skipped,
	}, nil
}

func (s *Server) handleRerun(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RerunInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	sess, err := s.ports.Sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, ResultOutput{}, err
	}
	r, ok := sess.ResultForOption(input.QuestionCode, input.OptionCode)
	if !ok {
		return nil, ResultOutput{}, fmt.Errorf("no result for %q: %w", optionRef(input.QuestionCode, input.OptionCode), domain.ErrNotFound)
	}

	result, err := s.ports.Sessions.Rerun(ctx, sess.ID, r.Key(), input.Query)
	if err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, toResultOutput(*result), nil
}

func optionRef(questionCode, optionCode string) string {
	if questionCode == "" {
		return optionCode
	}
	return questionCode + "/" + optionCode
}

func toResultOutputs(results []domain.SearchResult) []ResultOutput {
	out := make([]ResultOutput, len(results))
	for i, r := range results {
		out[i] = toResultOutput(r)
	}
	return out
}

func toResultOutput(r domain.SearchResult) ResultOutput {
	return ResultOutput{
		QuestionCode: r.QuestionCode,
		OptionCode:   r.OptionCode,
		Label:        r.Label,
		Audience:     r.Audience,
		URL:          r.URL,
		Options:      r.Options,
		CopyLine:     r.CopyLine(),
	}
}
