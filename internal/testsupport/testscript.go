// Package testsupport builds the xtask binary and prepares testscript
// environments for end-to-end tests.
package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	xtaskPath string
	buildErr  error
)

// fakeCargo stands in for cargo inside scripts. It runs in the snapshot
// tests directory:
//
//	-q build --bin NAME | -q test --test NAME   fails if broken/NAME exists
//	-q rb NAME | -q tt NAME                      prints output/NAME, or a default
//	                                             line, and exits with exit/NAME
const fakeCargo = `#!/bin/sh
case "$2" in
build|test)
	if [ -f "broken/$4" ]; then
		echo "error: could not compile '$4'" >&2
		exit 101
	fi
	exit 0
	;;
rb|tt)
	if [ -f "output/$3" ]; then
		cat "output/$3"
	else
		echo "0.000000 INFO $3 ($DEFMT_LOG)"
	fi
	if [ -f "exit/$3" ]; then
		exit "$(cat "exit/$3")"
	fi
	exit 0
	;;
esac
echo "unexpected cargo invocation: $*" >&2
exit 2
`

// BuildXtask builds the xtask binary once and returns its path.
func BuildXtask(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "xtask-bin-")
		if err != nil {
			buildErr = err
			return
		}

		xtaskPath = filepath.Join(binDir, "xtask")
		cmd := exec.Command("go", "build", "-o", xtaskPath, "./cmd/xtask")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build xtask: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return xtaskPath
}

// InstallFakeCargo writes the fake cargo script into dir and returns its path.
func InstallFakeCargo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bin dir: %w", err)
	}
	path := filepath.Join(dir, "cargo")
	if err := os.WriteFile(path, []byte(fakeCargo), 0o755); err != nil {
		return "", fmt.Errorf("write fake cargo: %w", err)
	}
	return path, nil
}

// SetupScriptEnv exposes the xtask binary as $XTASK and puts a fake cargo
// first on PATH.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("XTASK", BuildXtask(t))

	binDir := filepath.Join(env.WorkDir, ".bin")
	if _, err := InstallFakeCargo(binDir); err != nil {
		return err
	}
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
	return nil
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
