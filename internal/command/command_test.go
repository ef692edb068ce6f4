package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteCapturesStdout(t *testing.T) {
	result, err := New(nil).Execute(Spec{Tool: "/bin/sh", Args: []string{"-c", "printf 'INFO hello\\n'"}})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got exit code %d", result.ExitCode)
	}
	if string(result.Stdout) != "INFO hello\n" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
}

func TestExecuteNonZeroExitIsNotAnError(t *testing.T) {
	result, err := New(nil).Execute(Spec{Tool: "/bin/sh", Args: []string{"-c", "echo panicked; exit 3"}})
	if err != nil {
		t.Fatalf("expected no error for non-zero exit, got %v", err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
	if string(result.Stdout) != "panicked\n" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
}

func TestExecuteAppliesDirAndEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), []byte("here"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	result, err := New(nil).Execute(Spec{
		Tool: "/bin/sh",
		Args: []string{"-c", `cat marker; printf " $DEFMT_LOG"`},
		Dir:  dir,
		Env:  []string{"DEFMT_LOG=trace"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(result.Stdout) != "here trace" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
}

func TestExecuteMirrorsStderr(t *testing.T) {
	var mirror bytes.Buffer
	result, err := New(&mirror).Execute(Spec{Tool: "/bin/sh", Args: []string{"-c", "echo oops >&2"}})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(result.Stderr) != "oops\n" {
		t.Fatalf("unexpected captured stderr %q", result.Stderr)
	}
	if mirror.String() != "oops\n" {
		t.Fatalf("unexpected mirrored stderr %q", mirror.String())
	}
}

func TestExecuteMissingTool(t *testing.T) {
	_, err := New(nil).Execute(Spec{Tool: filepath.Join(t.TempDir(), "no-such-cargo")})
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch, got %v", err)
	}
}

func TestExecuteEmptyTool(t *testing.T) {
	_, err := New(nil).Execute(Spec{})
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch, got %v", err)
	}
}

func TestSpecString(t *testing.T) {
	spec := Spec{Tool: "cargo", Args: []string{"-q", "rb", "log"}}
	if spec.String() != "cargo -q rb log" {
		t.Fatalf("unexpected string %q", spec.String())
	}
}
