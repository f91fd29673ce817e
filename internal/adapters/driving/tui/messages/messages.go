// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

// SessionLoaded carries the reviewed session back to the model.
type SessionLoaded struct {
	Session *domain.Session
	Err     error
}

// CandidatePicked reports the outcome of promoting a candidate.
type CandidatePicked struct {
	Result *domain.SearchResult
	Err    error
}

// RerunCompleted reports the outcome of re-searching one result.
type RerunCompleted struct {
	Result *domain.SearchResult
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReview is the session results view.
	ViewReview ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReview:
		return "review"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
