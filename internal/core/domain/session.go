package domain

import (
	"strings"
	"time"
)

// Session is a working set: one school, its parsed questions and the
// merged search results accumulated across runs.
type Session struct {
	// ID is the unique identifier for the session.
	ID string `json:"id"`

	// SchoolName prefixes every composed query.
	SchoolName string `json:"schoolName"`

	// UniversityWebsite provides the domain root for result filtering.
	// Empty disables filtering.
	UniversityWebsite string `json:"universityWebsite,omitempty"`

	// Questions is the parser output the session was started from.
	Questions []Question `json:"questions"`

	// Results is the merged result set, at most one per key.
	Results []SearchResult `json:"results"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when results were last merged.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Result returns the stored result for key.
func (s *Session) Result(key ResultKey) (*SearchResult, bool) {
	for i := range s.Results {
		if s.Results[i].Key() == key {
			return &s.Results[i], true
		}
	}
	return nil, false
}

// Select builds the selection for optionCode, optionally scoped to
// questionCode. The answer audience takes precedence over the question
// audience.
func (s *Session) Select(questionCode, optionCode, answerAudience, questionAudience string) (Selection, bool) {
	q, o, ok := FindOption(s.Questions, questionCode, optionCode)
	if !ok {
		return Selection{}, false
	}
	return Selection{
		QuestionCode: q.Code,
		OptionCode:   o.Code,
		Label:        o.Label,
		Audience:     strings.TrimSpace(ResolveAudience(answerAudience, questionAudience)),
	}, true
}

// ResultForOption returns the stored result whose option code matches.
// An empty questionCode matches any question.
func (s *Session) ResultForOption(questionCode, optionCode string) (*SearchResult, bool) {
	for i := range s.Results {
		if questionCode != "" && s.Results[i].QuestionCode != questionCode {
			continue
		}
		if s.Results[i].OptionCode == optionCode {
			return &s.Results[i], true
		}
	}
	return nil, false
}

// DefaultQuery returns the composed query a rerun of key would send
// without an override.
func (s *Session) DefaultQuery(key ResultKey) (string, bool) {
	r, ok := s.Result(key)
	if !ok {
		return "", false
	}
	return ComposeQuery(s.SchoolName, r.AudienceValue(), r.Label), true
}

// RunReport summarises one incremental search run against a session.
type RunReport struct {
	// Results is the merged set after the run.
	Results []SearchResult

	// NewKeys lists the keys touched by this run, in run order.
	NewKeys []ResultKey

	// Searched is the number of selections sent to the provider.
	Searched int

	// Skipped is the number of selections already satisfied.
	Skipped int
}
