// Package review provides the session review view for the TUI.
// It lists a session's results, lets the user pick another candidate as the
// primary URL and reruns a result with an edited query.
package review

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/components/input"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/components/list"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/components/status"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/keymap"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/messages"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/styles"
	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

// ErrNoSessionService is returned when the view has no session service.
var ErrNoSessionService = errors.New("session service not available")

type mode int

const (
	modeResults mode = iota
	modeCandidates
	modeRerun
)

// View is the session review screen.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	results    *list.ResultList
	candidates *list.CandidateList
	query      *input.QueryInput
	statusbar  *status.Bar

	sessions  driving.SessionService
	sessionID string
	session   *domain.Session
	ctx       context.Context

	mode   mode
	width  int
	height int
	err    error
}

// NewView creates a review view for sessionID.
func NewView(s *styles.Styles, km *keymap.KeyMap, sessions driving.SessionService, sessionID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:     s,
		keymap:     km,
		results:    list.NewResultList(s),
		candidates: list.NewCandidateList(s),
		query:      input.NewQueryInput(s),
		statusbar:  status.NewBar(s, km),
		sessions:   sessions,
		sessionID:  sessionID,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the session.
func (v *View) Init() tea.Cmd {
	return v.loadSession()
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.session = msg.Session
		v.results.SetResults(msg.Session.Results)
		v.statusbar.SetResultCount(len(msg.Session.Results))
		if v.mode == modeResults && v.err == nil {
			v.statusbar.SetState(status.StateResults)
		}
		return v, nil

	case messages.CandidatePicked:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.mode = modeResults
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(msg.Result.CopyLine())
		return v, v.loadSession()

	case messages.RerunCompleted:
		if msg.Err != nil {
			v.mode = modeResults
			v.setError(msg.Err)
			return v, nil
		}
		v.mode = modeResults
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(msg.Result.CopyLine())
		return v, v.loadSession()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.mode == modeRerun {
		var cmd tea.Cmd
		v.query, cmd = v.query.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modeRerun:
		return v.handleRerunKey(msg)
	case modeCandidates:
		return v.handleCandidatesKey(msg)
	case modeResults:
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(msg.String(), v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(msg.String(), v.keymap.Select):
		if r := v.results.SelectedResult(); r != nil {
			v.candidates.SetResult(r)
			v.mode = modeCandidates
			v.clearError()
			v.statusbar.SetState(status.StateCandidates)
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Rerun):
		return v.startRerun()
	}

	v.results, _ = v.results.Update(msg)
	return v, nil
}

func (v *View) handleCandidatesKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		v.mode = modeResults
		v.statusbar.SetState(status.StateResults)
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.candidates.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.candidates.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.Select):
		r := v.results.SelectedResult()
		if r == nil || len(r.Options) == 0 {
			return v, nil
		}
		return v, v.pick(r.Key(), v.candidates.Selected())
	case msg.String() == "ctrl+c":
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func (v *View) handleRerunKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.query.Stop()
		v.mode = modeResults
		v.statusbar.SetState(status.StateResults)
		return v, nil
	case tea.KeyEnter:
		r := v.results.SelectedResult()
		if r == nil {
			return v, nil
		}
		override := v.query.Override()
		v.query.Stop()
		v.statusbar.SetState(status.StateSearching)
		return v, v.rerun(r.Key(), override)
	case tea.KeyCtrlC:
		return v, func() tea.Msg { return messages.Quit{} }
	}

	var cmd tea.Cmd
	v.query, cmd = v.query.Update(msg)
	return v, cmd
}

func (v *View) startRerun() (*View, tea.Cmd) {
	r := v.results.SelectedResult()
	if r == nil || v.session == nil {
		return v, nil
	}
	defaultQuery, _ := v.session.DefaultQuery(r.Key())
	v.mode = modeRerun
	v.clearError()
	v.statusbar.SetState(status.StateRerun)
	return v, v.query.Start(defaultQuery)
}

func (v *View) loadSession() tea.Cmd {
	sessions, ctx, id := v.sessions, v.ctx, v.sessionID
	return func() tea.Msg {
		if sessions == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		sess, err := sessions.Get(ctx, id)
		return messages.SessionLoaded{Session: sess, Err: err}
	}
}

func (v *View) pick(key domain.ResultKey, index int) tea.Cmd {
	sessions, ctx, id := v.sessions, v.ctx, v.sessionID
	return func() tea.Msg {
		if sessions == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		r, err := sessions.Pick(ctx, id, key, index)
		return messages.CandidatePicked{Result: r, Err: err}
	}
}

func (v *View) rerun(key domain.ResultKey, override string) tea.Cmd {
	sessions, ctx, id := v.sessions, v.ctx, v.sessionID
	return func() tea.Msg {
		if sessions == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		r, err := sessions.Rerun(ctx, id, key, override)
		return messages.RerunCompleted{Result: r, Err: err}
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) clearError() {
	v.err = nil
	v.statusbar.SetMessage("")
}

// View renders the review view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	title := "halda"
	if v.session != nil {
		title = v.session.SchoolName
		if v.session.UniversityWebsite != "" {
			title += "  " + v.styles.Muted.Render(v.session.UniversityWebsite)
		}
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	switch v.mode {
	case modeCandidates:
		sections = append(sections, v.styles.Border.Padding(0, 1).Render(v.candidates.View()))
	case modeRerun:
		sections = append(sections, v.results.View(), "", v.query.View())
	case modeResults:
		sections = append(sections, v.results.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.results.SetDimensions(width, height-6)
	v.candidates.SetWidth(width - 4)
	v.query.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Session returns the loaded session, nil before the first load.
func (v *View) Session() *domain.Session {
	return v.session
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InCandidates reports whether the candidate picker is open.
func (v *View) InCandidates() bool {
	return v.mode == modeCandidates
}

// InRerun reports whether the rerun query editor is open.
func (v *View) InRerun() bool {
	return v.mode == modeRerun
}

// State returns the status bar state.
func (v *View) State() status.State {
	return v.statusbar.State()
}
