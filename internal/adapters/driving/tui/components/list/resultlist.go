// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/styles"
	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// ResultList displays session results in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results yet. Run `halda session run` first.")
	}

	lines := make([]string, 0, len(r.results)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	// Each result takes two lines.
	visible := max((r.height-4)/2, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("%s%-6s %s", indicator, result.OptionCode, truncate(result.Label, r.width-20))
	if index == r.selected {
		head = r.styles.Selected.Render(head)
	} else {
		head = r.styles.Normal.Render(head)
	}
	if a := result.AudienceValue(); a != "" {
		head += " " + r.styles.Audience.Render("["+a+"]")
	}

	var link string
	if u := result.URLValue(); u != "" {
		link = r.styles.URL.Render(truncate(u, r.width-8))
	} else {
		link = r.styles.Error.Render(domain.NoResultsText)
	}
	count := r.styles.Muted.Render(fmt.Sprintf("  (%d candidates)", len(result.Options)))

	return head + "\n         " + link + count
}

// SetResults replaces the list, keeping the cursor in range.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	if r.selected >= len(results) {
		r.selected = max(len(results)-1, 0)
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// truncate shortens s to at most n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	n = max(n, 10)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
