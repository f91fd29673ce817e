package domain

import "strings"

// MaxCandidates is the size of the ranked candidate pool kept per result.
const MaxCandidates = 5

// NoResultsText is shown in place of a URL when a search found nothing.
const NoResultsText = "No results found."

// ResultKey identifies a result by question and option code.
type ResultKey struct {
	QuestionCode string
	OptionCode   string
}

// String renders the key as "question::option".
func (k ResultKey) String() string {
	return k.QuestionCode + "::" + k.OptionCode
}

// Selection is a caller's request to search for one answer option.
type Selection struct {
	QuestionCode string `json:"questionCode" yaml:"questionCode"`
	OptionCode   string `json:"optionCode" yaml:"optionCode"`
	Label        string `json:"label" yaml:"label"`

	// Audience qualifies the query. Empty means no audience constraint.
	Audience string `json:"audience,omitempty" yaml:"audience,omitempty"`

	// QueryOverride replaces the composed query and disables domain filtering.
	QueryOverride string `json:"queryOverride,omitempty" yaml:"queryOverride,omitempty"`
}

// Key returns the identity of the selection.
func (s Selection) Key() ResultKey {
	return ResultKey{QuestionCode: s.QuestionCode, OptionCode: s.OptionCode}
}

// HasOverride reports whether a non-blank query override is set.
func (s Selection) HasOverride() bool {
	return strings.TrimSpace(s.QueryOverride) != ""
}

// Candidate is one ranked search hit.
type Candidate struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResult is the reconciled outcome for one question/option key.
type SearchResult struct {
	QuestionCode string `json:"questionCode"`
	OptionCode   string `json:"optionCode"`
	Label        string `json:"label"`

	// Audience is nil when the search ran without an audience
	// or when the provider call failed.
	Audience *string `json:"audience"`

	// URL is the chosen top match, nil when there were no candidates.
	URL *string `json:"url"`

	// Options is the ranked candidate pool, at most MaxCandidates long.
	Options []Candidate `json:"options"`
}

// Key returns the identity of the result.
func (r SearchResult) Key() ResultKey {
	return ResultKey{QuestionCode: r.QuestionCode, OptionCode: r.OptionCode}
}

// AudienceValue returns the audience or "" when unset.
func (r SearchResult) AudienceValue() string {
	if r.Audience == nil {
		return ""
	}
	return *r.Audience
}

// URLValue returns the primary URL or "" when unset.
func (r SearchResult) URLValue() string {
	if r.URL == nil {
		return ""
	}
	return *r.URL
}

// CopyLine renders the result as "label: url" for pasting into documents.
func (r SearchResult) CopyLine() string {
	if r.URL == nil || *r.URL == "" {
		return r.Label + ": " + NoResultsText
	}
	return r.Label + ": " + *r.URL
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ComposeQuery joins the non-empty parts with spaces.
func ComposeQuery(schoolName, audience, label string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{schoolName, audience, label} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
