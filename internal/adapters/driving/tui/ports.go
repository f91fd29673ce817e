// Package tui provides an interactive terminal user interface for reviewing
// halda sessions. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Sessions loads sessions and applies picks and reruns.
	Sessions driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sessions == nil {
		return ErrMissingSessionService
	}
	return nil
}
