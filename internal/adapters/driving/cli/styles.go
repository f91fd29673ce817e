package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// palette mirrors the terminal theme used across halda output.
var palette = struct {
	Primary, Secondary, Muted, Success, Warning, Error lipgloss.Color
}{
	Primary:   lipgloss.Color("#7C3AED"),
	Secondary: lipgloss.Color("#06B6D4"),
	Muted:     lipgloss.Color("#6C7086"),
	Success:   lipgloss.Color("#A6E3A1"),
	Warning:   lipgloss.Color("#F9E2AF"),
	Error:     lipgloss.Color("#F38BA8"),
}

type outputStyles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Code     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	URL      lipgloss.Style
}

var styles = colourStyles()

func colourStyles() outputStyles {
	return outputStyles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(palette.Secondary),
		Code:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(palette.Muted),
		Success:  lipgloss.NewStyle().Foreground(palette.Success),
		Warning:  lipgloss.NewStyle().Foreground(palette.Warning),
		Error:    lipgloss.NewStyle().Foreground(palette.Error),
		URL:      lipgloss.NewStyle().Underline(true).Foreground(palette.Secondary),
	}
}

func disableColor() {
	plain := lipgloss.NewStyle()
	styles = outputStyles{
		Title: plain, Subtitle: plain, Code: plain, Muted: plain,
		Success: plain, Warning: plain, Error: plain, URL: plain,
	}
}
