package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation marks a reference to a point or contour identity
	// that does not exist in the session.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrDegenerateGeometry marks an edit that would leave a contour with
	// fewer than two points.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNoSession marks a commit attempted with no glyph open.
	ErrNoSession = errors.New("no active edit session")
)

// CommandError reports a mutation the backend rejected. It carries the
// backend's message and never propagates as a panic across the tool
// boundary; tools inspect the command result instead.
type CommandError struct {
	Msg string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s", e.Msg)
}

// Failf builds a CommandError with a formatted message.
func Failf(format string, args ...any) error {
	return &CommandError{Msg: fmt.Sprintf(format, args...)}
}
