package mcp

import (
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
)

// Ports aggregates the driving ports exposed over MCP.
type Ports struct {
	// Parser turns Q-coded text into questions.
	Parser driving.QuestionParser

	// Search runs stateless searches.
	Search driving.SearchOrchestrator

	// Sessions enables the session tools and resources when set.
	Sessions driving.SessionService

	// Audiences enables the audiences resource when set.
	Audiences driving.AudienceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Parser == nil {
		return ErrMissingParser
	}
	if p.Search == nil {
		return ErrMissingSearch
	}
	return nil
}
