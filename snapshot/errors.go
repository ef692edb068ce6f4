package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCase indicates a case name is not in the catalog.
	ErrUnknownCase = errors.New("unknown snapshot case")
	// ErrBuildFailure indicates a fixture could not be built or launched.
	ErrBuildFailure = errors.New("fixture build failed")
	// ErrMissingGolden indicates a case has no golden file yet.
	ErrMissingGolden = errors.New("golden file missing")
	// ErrMismatch indicates normalized output differs from the golden.
	ErrMismatch = errors.New("output does not match golden")
	// ErrWriteFailure indicates a golden file could not be written.
	ErrWriteFailure = errors.New("golden write failed")
)

// BuildError is returned when a fixture never ran.
type BuildError struct {
	Case string
	// Command is the invocation that failed.
	Command string
	// ExitCode is the build tool's status, or -1 if it never started.
	ExitCode int
	// Reason is the tail of the build tool's diagnostics.
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Case, ErrBuildFailure)
	switch {
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	case e.ExitCode >= 0:
		msg += fmt.Sprintf(": %s exited with status %d", e.Command, e.ExitCode)
	}
	return msg
}

func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBuildFailure}
	}
	return []error{ErrBuildFailure, e.Err}
}

// MissingGoldenError is returned in check mode when no golden can be read.
type MissingGoldenError struct {
	Case string
	Path string
	// Err is set when the file exists but could not be read.
	Err error
}

func (e *MissingGoldenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s at %s: %v", e.Case, ErrMissingGolden, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s at %s (run with --overwrite to record it)", e.Case, ErrMissingGolden, e.Path)
}

func (e *MissingGoldenError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingGolden}
	}
	return []error{ErrMissingGolden, e.Err}
}

// MismatchError describes the first divergence between golden and actual
// output.
type MismatchError struct {
	Case string
	Path string
	// Line is the 1-based number of the first differing line.
	Line     int
	Expected string
	Actual   string
	// Diff is a unified diff from the golden to the actual output.
	Diff string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s at line %d: expected %q, got %q", e.Case, ErrMismatch, e.Line, e.Expected, e.Actual)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// WriteError is returned when a golden cannot be persisted.
type WriteError struct {
	Case string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s at %s: %v", e.Case, ErrWriteFailure, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}
