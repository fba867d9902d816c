package engine

import "errors"

// Error kinds callers branch on. Wrap with fmt.Errorf("op: %w", Err...) so
// errors.Is keeps working through the call chain.
var (
	// ErrInvalidInput marks malformed caller input (negative limit, empty
	// required field). Raised before any partial computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream marks a document store or completion service failure, so
	// callers can tell "no data" apart from "service down".
	ErrUpstream = errors.New("upstream unavailable")

	// ErrSessionBusy is returned when a mentor turn is attempted on a session
	// key that already has a turn in flight. Retry after the turn completes.
	ErrSessionBusy = errors.New("session busy")
)
