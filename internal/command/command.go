// Package command runs external tools for the xtask harness.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrLaunch indicates a tool could not be started at all.
var ErrLaunch = errors.New("launch command")

// Spec describes one tool invocation.
type Spec struct {
	Tool string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// String renders the invocation the way a shell user would type it.
func (s Spec) String() string {
	parts := append([]string{s.Tool}, s.Args...)
	return strings.Join(parts, " ")
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs tools synchronously.
type Executor interface {
	// Execute blocks until the process exits. A non-zero exit status is not
	// an error; errors are reserved for processes that never started.
	Execute(spec Spec) (Result, error)
}

// Exec runs tools with os/exec.
type Exec struct {
	// Stderr, when set, receives a copy of the child's stderr as it is written.
	Stderr io.Writer
}

// New returns an executor that mirrors child stderr to w.
func New(w io.Writer) *Exec {
	return &Exec{Stderr: w}
}

// Execute implements Executor.
func (e *Exec) Execute(spec Spec) (Result, error) {
	if strings.TrimSpace(spec.Tool) == "" {
		return Result{}, fmt.Errorf("%w: tool is required", ErrLaunch)
	}

	cmd := exec.Command(spec.Tool, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if e != nil && e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	}

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("%w %q: %w", ErrLaunch, spec.String(), err)
		}
		exitCode = exitErr.ExitCode()
	}

	return Result{
		ExitCode: exitCode,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
