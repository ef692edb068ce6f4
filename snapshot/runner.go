package snapshot

import (
	"strings"

	"github.com/amonks/xtask/internal/command"
	internalstrings "github.com/amonks/xtask/internal/strings"
)

// buildReasonLines bounds how much build-tool stderr a BuildError carries.
const buildReasonLines = 20

// CapturedOutput is what a fixture printed before it exited.
type CapturedOutput struct {
	Stdout   string
	ExitCode int
}

// Lines splits the captured stdout into lines.
func (o CapturedOutput) Lines() []string {
	return internalstrings.SplitLines(internalstrings.NormalizeNewlines(o.Stdout))
}

// Success reports whether the fixture exited with status zero.
func (o CapturedOutput) Success() bool {
	return o.ExitCode == 0
}

// Runner builds and runs fixtures through an executor.
type Runner struct {
	Executor command.Executor
	// Tool is the build tool, usually cargo.
	Tool string
	// Dir is the snapshot tests directory, used as the working directory.
	Dir string
	// Target is applied to cases that do not declare their own.
	Target string
	// Env holds extra KEY=VALUE pairs for every invocation.
	Env []string
}

// Run builds c and then runs it, returning whatever it printed. A non-zero
// exit from the run step is reported in the output, not as an error; only a
// failed build or a tool that cannot be launched returns a *BuildError.
func (r *Runner) Run(c Case) (CapturedOutput, error) {
	build := r.spec(r.buildArgs(c))
	result, err := r.Executor.Execute(build)
	if err != nil {
		return CapturedOutput{}, launchError(c, build, err)
	}
	if !result.Success() {
		return CapturedOutput{}, &BuildError{
			Case:     c.Name,
			Command:  build.String(),
			ExitCode: result.ExitCode,
			Reason:   internalstrings.LastLines(string(result.Stderr), buildReasonLines),
		}
	}

	run := r.spec(r.runArgs(c))
	result, err = r.Executor.Execute(run)
	if err != nil {
		return CapturedOutput{}, launchError(c, run, err)
	}
	return CapturedOutput{Stdout: string(result.Stdout), ExitCode: result.ExitCode}, nil
}

func launchError(c Case, spec command.Spec, err error) *BuildError {
	return &BuildError{Case: c.Name, Command: spec.String(), ExitCode: -1, Err: err}
}

func (r *Runner) spec(args []string) command.Spec {
	return command.Spec{Tool: r.Tool, Args: args, Dir: r.Dir, Env: r.Env}
}

func (r *Runner) buildArgs(c Case) []string {
	var args []string
	if c.Kind == KindTest {
		args = []string{"-q", "test", "--test", c.Name, "--no-run"}
	} else {
		args = []string{"-q", "build", "--bin", c.Name}
	}
	return append(args, r.configArgs(c)...)
}

// runArgs uses the fixture crate's cargo aliases: rb runs a binary, tt runs
// a test harness.
func (r *Runner) runArgs(c Case) []string {
	alias := "rb"
	if c.Kind == KindTest {
		alias = "tt"
	}
	return append([]string{"-q", alias, c.Name}, r.configArgs(c)...)
}

func (r *Runner) configArgs(c Case) []string {
	var args []string
	if len(c.Features) > 0 {
		args = append(args, "--features", strings.Join(c.Features, ","))
	}
	target := c.Target
	if target == "" {
		target = r.Target
	}
	if target != "" {
		args = append(args, "--target", target)
	}
	return args
}
