package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/amonks/xtask/internal/command"
	"github.com/google/go-cmp/cmp"
)

func TestRunnerBinInvocation(t *testing.T) {
	executor := newFakeExecutor(map[string]fakeFixture{"log": {stdout: "0.000000 INFO Hello!\n"}})
	runner := &Runner{Executor: executor, Tool: "cargo", Dir: "/repo/firmware/qemu", Env: []string{"DEFMT_LOG=trace"}}

	output, err := runner.Run(Case{Name: "log", Kind: KindBin})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if output.Stdout != "0.000000 INFO Hello!\n" || !output.Success() {
		t.Fatalf("unexpected output %+v", output)
	}

	want := []command.Spec{
		{Tool: "cargo", Args: []string{"-q", "build", "--bin", "log"}, Dir: "/repo/firmware/qemu", Env: []string{"DEFMT_LOG=trace"}},
		{Tool: "cargo", Args: []string{"-q", "rb", "log"}, Dir: "/repo/firmware/qemu", Env: []string{"DEFMT_LOG=trace"}},
	}
	if diff := cmp.Diff(want, executor.calls); diff != "" {
		t.Fatalf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerTestInvocationWithConfiguration(t *testing.T) {
	executor := newFakeExecutor(map[string]fakeFixture{"defmt-test": {stdout: "(1/1) running `ok`...\n"}})
	runner := &Runner{Executor: executor, Tool: "cargo", Target: "thumbv7m-none-eabi"}

	_, err := runner.Run(Case{Name: "defmt-test", Kind: KindTest, Features: []string{"alloc", "ip_in_core"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := [][]string{
		{"-q", "test", "--test", "defmt-test", "--no-run", "--features", "alloc,ip_in_core", "--target", "thumbv7m-none-eabi"},
		{"-q", "tt", "defmt-test", "--features", "alloc,ip_in_core", "--target", "thumbv7m-none-eabi"},
	}
	got := [][]string{executor.calls[0].Args, executor.calls[1].Args}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerCaseTargetOverridesDefault(t *testing.T) {
	executor := newFakeExecutor(nil)
	runner := &Runner{Executor: executor, Tool: "cargo", Target: "thumbv7m-none-eabi"}

	if _, err := runner.Run(Case{Name: "net", Kind: KindBin, Target: "thumbv6m-none-eabi"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"-q", "build", "--bin", "net", "--target", "thumbv6m-none-eabi"}
	if diff := cmp.Diff(want, executor.calls[0].Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerNonZeroExitIsCaptured(t *testing.T) {
	executor := newFakeExecutor(map[string]fakeFixture{
		"panic": {stdout: "ERROR panicked at 'explicit panic'\n", exitCode: 1},
	})
	runner := &Runner{Executor: executor, Tool: "cargo"}

	output, err := runner.Run(Case{Name: "panic", Kind: KindBin})
	if err != nil {
		t.Fatalf("expected captured output despite exit status, got %v", err)
	}
	if output.ExitCode != 1 || output.Success() {
		t.Fatalf("expected exit code 1, got %d", output.ExitCode)
	}
	if diff := cmp.Diff([]string{"ERROR panicked at 'explicit panic'"}, output.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerBuildFailure(t *testing.T) {
	stderr := strings.Repeat("warning: noise\n", 30) + "error[E0425]: cannot find value `x`\n"
	executor := newFakeExecutor(map[string]fakeFixture{"log": {buildExit: 101, buildStderr: stderr}})
	runner := &Runner{Executor: executor, Tool: "cargo"}

	_, err := runner.Run(Case{Name: "log", Kind: KindBin})
	if !errors.Is(err, ErrBuildFailure) {
		t.Fatalf("expected ErrBuildFailure, got %v", err)
	}
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected *BuildError, got %T", err)
	}
	if buildErr.ExitCode != 101 || buildErr.Command != "cargo -q build --bin log" {
		t.Fatalf("unexpected build error %+v", buildErr)
	}
	if !strings.HasSuffix(buildErr.Reason, "error[E0425]: cannot find value `x`") {
		t.Fatalf("expected reason to end with the compiler error, got %q", buildErr.Reason)
	}
	if got := strings.Count(buildErr.Reason, "\n") + 1; got != buildReasonLines {
		t.Fatalf("expected %d reason lines, got %d", buildReasonLines, got)
	}
	if len(executor.calls) != 1 {
		t.Fatalf("expected run step to be skipped, got %d calls", len(executor.calls))
	}
	if !strings.Contains(err.Error(), "exited with status 101") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunnerLaunchFailure(t *testing.T) {
	launchErr := fmt.Errorf("%w \"cargo\": executable file not found in $PATH", command.ErrLaunch)
	executor := newFakeExecutor(map[string]fakeFixture{"log": {launchErr: launchErr}})
	runner := &Runner{Executor: executor, Tool: "cargo"}

	_, err := runner.Run(Case{Name: "log", Kind: KindBin})
	if !errors.Is(err, ErrBuildFailure) || !errors.Is(err, command.ErrLaunch) {
		t.Fatalf("expected build failure wrapping launch error, got %v", err)
	}
	var buildErr *BuildError
	if !errors.As(err, &buildErr) || buildErr.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %+v", buildErr)
	}
}
