// Package main implements the xtask test harness CLI.
package main

import (
	"errors"
	"os"

	"github.com/amonks/xtask/internal/paths"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xtask",
	Short: "Test harness for the logging framework and its firmware crates",
	// Failing tests are reported by the commands themselves.
	SilenceUsage: true,
}

// getRepoPath returns the repository root for the current directory.
func getRepoPath() (string, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return "", err
	}

	return resolveRepoRoot(cwd)
}
