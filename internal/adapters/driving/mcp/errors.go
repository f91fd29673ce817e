// Package mcp provides an MCP (Model Context Protocol) server adapter for halda.
// It lets AI assistants parse survey text and run university page searches.
package mcp

import "errors"

var (
	// ErrMissingParser is returned when the question parser is not provided.
	ErrMissingParser = errors.New("mcp: question parser is required")

	// ErrMissingSearch is returned when the search orchestrator is not provided.
	ErrMissingSearch = errors.New("mcp: search orchestrator is required")
)
