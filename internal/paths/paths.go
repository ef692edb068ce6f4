// Package paths resolves the repository layout xtask operates on.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRepoRootNotFound indicates no repository marker exists above a path.
var ErrRepoRootNotFound = errors.New("repository root not found")

// RootMarkers are the files whose presence identifies the repository root,
// checked in order at each directory level.
var RootMarkers = []string{"xtask.toml", "Cargo.toml", "go.mod"}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// RepoRoot walks up from start and returns the nearest directory holding
// xtask.toml. Without one, it falls back to the nearest Cargo.toml or go.mod.
func RepoRoot(start string) (string, error) {
	start, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for _, marker := range RootMarkers {
		if root, ok := findUp(start, marker); ok {
			return root, nil
		}
	}
	return "", fmt.Errorf("%w above %s", ErrRepoRootNotFound, start)
}

func findUp(dir, marker string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
