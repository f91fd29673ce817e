package list

import (
	"fmt"
	"strings"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/styles"
	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// CandidateList shows the ranked candidate pool of one result.
// The current primary URL is marked with a star.
type CandidateList struct {
	result   *domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
}

// NewCandidateList creates a new candidate list component.
func NewCandidateList(s *styles.Styles) *CandidateList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &CandidateList{styles: s, width: 80}
}

// SetResult shows the candidates of result with the cursor on its primary URL.
func (c *CandidateList) SetResult(result *domain.SearchResult) {
	c.result = result
	c.selected = 0
	if result == nil {
		return
	}
	for i, cand := range result.Options {
		if cand.URL == result.URLValue() {
			c.selected = i
			break
		}
	}
}

// View renders the candidate list.
func (c *CandidateList) View() string {
	if c.result == nil {
		return ""
	}
	header := c.styles.Subtitle.Render(fmt.Sprintf("%s  %s", c.result.OptionCode, c.result.Label))
	if len(c.result.Options) == 0 {
		return header + "\n\n" + c.styles.Error.Render(domain.NoResultsText)
	}

	lines := []string{header, ""}
	for i, cand := range c.result.Options {
		mark := "  "
		if cand.URL == c.result.URLValue() {
			mark = "* "
		}
		title := fmt.Sprintf("%d. %s%s", i+1, mark, truncate(cand.Title, c.width-10))
		if i == c.selected {
			title = c.styles.Selected.Render("> " + title)
		} else {
			title = c.styles.Normal.Render("  " + title)
		}
		lines = append(lines,
			title,
			"     "+c.styles.URL.Render(truncate(cand.URL, c.width-6)),
			"     "+c.styles.Muted.Render(truncate(cand.Snippet, c.width-6)),
		)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the cursor index.
func (c *CandidateList) Selected() int {
	return c.selected
}

// MoveUp moves the cursor up.
func (c *CandidateList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves the cursor down.
func (c *CandidateList) MoveDown() {
	if c.result != nil && c.selected < len(c.result.Options)-1 {
		c.selected++
	}
}

// SetWidth sets the component width.
func (c *CandidateList) SetWidth(width int) {
	c.width = width
}
