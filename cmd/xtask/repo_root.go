package main

import (
	"errors"
	"fmt"

	"github.com/amonks/xtask/internal/paths"
)

func resolveRepoRoot(path string) (string, error) {
	root, err := paths.RepoRoot(path)
	if err != nil {
		return "", formatRepoRootError(err)
	}
	return root, nil
}

func formatRepoRootError(err error) error {
	if errors.Is(err, paths.ErrRepoRootNotFound) {
		return fmt.Errorf("not in a repository (no xtask.toml, Cargo.toml or go.mod found): %w", err)
	}
	return err
}
