package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogpeppe/go-internal/diff"
)

// Mode selects what the suite does with normalized output.
type Mode string

const (
	// ModeCheck compares output against the stored golden.
	ModeCheck Mode = "check"
	// ModeOverwrite records output as the new golden.
	ModeOverwrite Mode = "overwrite"
)

// GoldenStore reads and writes golden files beneath the snapshot tests directory.
type GoldenStore struct {
	Root string
}

// Path returns the absolute golden path for c.
func (s *GoldenStore) Path(c Case) string {
	return filepath.Join(s.Root, filepath.FromSlash(c.Golden()))
}

// Read returns the golden text for c, or a *MissingGoldenError.
func (s *GoldenStore) Read(c Case) (string, error) {
	path := s.Path(c)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingGoldenError{Case: c.Name, Path: path}
		}
		return "", &MissingGoldenError{Case: c.Name, Path: path, Err: err}
	}
	return string(data), nil
}

// Write stores text verbatim as the golden for c, creating parent
// directories. The file is replaced atomically via a temp file.
func (s *GoldenStore) Write(c Case, text string) error {
	path := s.Path(c)
	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return &WriteError{Case: c.Name, Path: path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp golden file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(name, 0o644)
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp golden file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename golden file: %w", err)
	}
	return nil
}

// Check compares actual against the golden for c. Comparison is exact:
// whitespace and the final newline are significant.
func (s *GoldenStore) Check(c Case, actual string) error {
	expected, err := s.Read(c)
	if err != nil {
		return err
	}
	if mismatch := compareText(expected, actual); mismatch != nil {
		mismatch.Case = c.Name
		mismatch.Path = s.Path(c)
		return mismatch
	}
	return nil
}

func compareText(expected, actual string) *MismatchError {
	if expected == actual {
		return nil
	}

	want := splitKeepNewlines(expected)
	got := splitKeepNewlines(actual)
	line := 0
	for line < len(want) && line < len(got) && want[line] == got[line] {
		line++
	}

	mismatch := &MismatchError{
		Line: line + 1,
		Diff: string(diff.Diff("golden", []byte(expected), "actual", []byte(actual))),
	}
	if line < len(want) {
		mismatch.Expected = want[line]
	}
	if line < len(got) {
		mismatch.Actual = got[line]
	}
	return mismatch
}

// splitKeepNewlines splits text into lines that keep their terminators, so a
// missing final newline is a visible difference.
func splitKeepNewlines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
