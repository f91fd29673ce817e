// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/styles"
)

// QueryInput edits the literal query used to rerun a result.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	initial   string
}

// NewQueryInput creates a new query input component.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "query"
	ti.CharLimit = 256
	ti.Width = 50

	return &QueryInput{textinput: ti, styles: s}
}

// Start focuses the input prefilled with the query a plain rerun would send.
func (q *QueryInput) Start(defaultQuery string) tea.Cmd {
	q.initial = defaultQuery
	q.textinput.SetValue(defaultQuery)
	q.textinput.CursorEnd()
	return q.textinput.Focus()
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Rerun: ")
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, q.styles.InputField.Render(q.textinput.View()))
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Override returns the query override to send. It is empty when the
// prefilled query was left untouched so the rerun keeps domain filtering.
func (q *QueryInput) Override() string {
	if q.textinput.Value() == q.initial {
		return ""
	}
	return q.textinput.Value()
}

// Stop blurs and clears the input.
func (q *QueryInput) Stop() {
	q.textinput.Blur()
	q.textinput.Reset()
	q.initial = ""
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.textinput.Width = max(width-12, 20)
}
