package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawsonl1/halda-serper/internal/adapters/driven/storage/memory"
	"github.com/dawsonl1/halda-serper/internal/adapters/driving/tui/messages"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/core/services"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	parser := services.NewQuestionParser()
	sessions := services.NewSessionService(memory.NewSessionStore(), parser, services.NewOrchestrator(nil, 1))
	sess, err := sessions.Start(context.Background(), driving.StartRequest{
		SchoolName: "Acme U",
		RawText:    "Q5: Pages?\nQ5A: Tuition",
	})
	require.NoError(t, err)

	app, err := NewApp(&Ports{Sessions: sessions}, sess.ID)
	require.NoError(t, err)
	return app
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(&Ports{}, "id")
	assert.ErrorIs(t, err, ErrMissingSessionService)

	sessions := services.NewSessionService(memory.NewSessionStore(), services.NewQuestionParser(), nil)
	_, err = NewApp(&Ports{Sessions: sessions}, " ")
	assert.ErrorIs(t, err, ErrMissingSessionID)
}

func TestApp_InitAndResize(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
	assert.Equal(t, "Initialising...", app.View())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	require.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "rerun")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewReview, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSessionService)
}
