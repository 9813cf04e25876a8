package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists is returned when the destination path is occupied
	// and neither overwrite nor backup was requested.
	ErrDestinationExists = errors.New("destination exists; pass --overwrite or --backup")

	// ErrNoBackend is returned for a conversion plan no installed tool can
	// perform.
	ErrNoBackend = errors.New("no conversion backend supports this source/destination pair")

	// ErrEmptyOutput is returned when a backend exited successfully but
	// produced a missing or zero-byte file.
	ErrEmptyOutput = errors.New("backend produced an empty output file")

	// ErrBackupExhausted is returned when every numbered backup slot is
	// already taken.
	ErrBackupExhausted = errors.New("all backup slots are in use")
)

// ToolMissingError reports that an external tool could not be found on PATH.
type ToolMissingError struct {
	Tool string
	Hint string
}

func (e *ToolMissingError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s not found on PATH", e.Tool)
	}
	return fmt.Sprintf("%s not found on PATH (%s)", e.Tool, e.Hint)
}

// ToolExitError reports a nonzero exit from an external tool, carrying the
// tail of its stderr for diagnostics.
type ToolExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ToolExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.Code, e.Stderr)
}
