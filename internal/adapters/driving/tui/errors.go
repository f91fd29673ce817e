package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingSessionID is returned when no session is selected for review.
var ErrMissingSessionID = errors.New("tui: session id is required")
