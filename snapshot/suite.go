package snapshot

import (
	"errors"
	"strings"
)

// FixtureRunner builds and runs one fixture.
type FixtureRunner interface {
	Run(c Case) (CapturedOutput, error)
}

// Selection chooses which cases run and what happens to their output.
type Selection struct {
	// Case names a single case. Empty selects the whole catalog.
	Case string
	// Overwrite records output as the new goldens instead of checking it.
	Overwrite bool
}

// Mode returns the comparator mode implied by the selection.
func (s Selection) Mode() Mode {
	if s.Overwrite {
		return ModeOverwrite
	}
	return ModeCheck
}

// Result is the outcome of one case.
type Result struct {
	Case  string
	State State
	// ExitCode is the fixture's exit status. It is zero when the fixture never ran.
	ExitCode int
	// Err describes a failure and is nil for passed and recorded cases.
	Err error
}

// Failed reports whether the case counts against the run.
func (r Result) Failed() bool {
	return r.State.IsFailure()
}

// Diff returns the unified diff of a mismatched case.
func (r Result) Diff() string {
	var mismatch *MismatchError
	if errors.As(r.Err, &mismatch) {
		return mismatch.Diff
	}
	return ""
}

// Tally counts results by terminal state.
type Tally struct {
	Passed        int
	Mismatched    int
	MissingGolden int
	BuildFailed   int
	Recorded      int
	WriteFailed   int
}

// Count returns the number of results in state s.
func (t Tally) Count(s State) int {
	switch s {
	case StatePassed:
		return t.Passed
	case StateMismatched:
		return t.Mismatched
	case StateMissingGolden:
		return t.MissingGolden
	case StateBuildFailed:
		return t.BuildFailed
	case StateRecorded:
		return t.Recorded
	case StateWriteFailed:
		return t.WriteFailed
	default:
		return 0
	}
}

// Failures returns the number of failed results.
func (t Tally) Failures() int {
	return t.Mismatched + t.MissingGolden + t.BuildFailed + t.WriteFailed
}

// Total returns the number of results.
func (t Tally) Total() int {
	return t.Failures() + t.Passed + t.Recorded
}

func (t *Tally) add(s State) {
	switch s {
	case StatePassed:
		t.Passed++
	case StateMismatched:
		t.Mismatched++
	case StateMissingGolden:
		t.MissingGolden++
	case StateBuildFailed:
		t.BuildFailed++
	case StateRecorded:
		t.Recorded++
	case StateWriteFailed:
		t.WriteFailed++
	}
}

// Summary is the ordered outcome of a suite run.
type Summary struct {
	Mode    Mode
	Results []Result
	Tally   Tally
}

// Failed reports whether any case failed.
func (s Summary) Failed() bool {
	return s.Tally.Failures() > 0
}

// Err joins the errors of every failed case, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, result := range s.Results {
		if result.Failed() {
			errs = append(errs, result.Err)
		}
	}
	return errors.Join(errs...)
}

func (s *Summary) add(result Result) {
	s.Results = append(s.Results, result)
	s.Tally.add(result.State)
}

// Suite drives catalog cases through build, normalization and comparison.
type Suite struct {
	Catalog    *Catalog
	Runner     FixtureRunner
	Normalizer *Normalizer
	Goldens    *GoldenStore
	// Reporter receives progress as each case finishes. Nil discards it.
	Reporter Reporter
}

// Run executes the selected cases sequentially. Per-case failures are
// recorded in the summary and never stop the run. The only error returned is
// one wrapping ErrUnknownCase, before any fixture is built.
func (s *Suite) Run(sel Selection) (Summary, error) {
	mode := sel.Mode()
	cases := s.Catalog.Cases()
	if name := strings.TrimSpace(sel.Case); name != "" {
		c, err := s.Catalog.Lookup(name)
		if err != nil {
			return Summary{Mode: mode}, err
		}
		cases = []Case{c}
	}

	reporter := s.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	summary := Summary{Mode: mode, Results: make([]Result, 0, len(cases))}
	reporter.Begin(mode, len(cases))
	for _, c := range cases {
		result := s.runCase(c, mode)
		summary.add(result)
		reporter.CaseFinished(result)
	}
	reporter.End(summary)
	return summary, nil
}

func (s *Suite) runCase(c Case, mode Mode) Result {
	run := newCaseRun(c.Name)
	result := Result{Case: c.Name}

	run.advance(StateBuilding)
	output, err := s.Runner.Run(c)
	if err != nil {
		var buildErr *BuildError
		if !errors.As(err, &buildErr) {
			err = &BuildError{Case: c.Name, ExitCode: -1, Err: err}
		}
		run.advance(StateBuildFailed)
		return finish(run, result, err)
	}
	run.advance(StateBuilt)
	result.ExitCode = output.ExitCode

	normalized := s.Normalizer.Normalize(output.Stdout)

	if mode == ModeOverwrite {
		run.advance(StateOverwriting)
		if err := s.Goldens.Write(c, normalized); err != nil {
			run.advance(StateWriteFailed)
			return finish(run, result, err)
		}
		run.advance(StateRecorded)
		return finish(run, result, nil)
	}

	run.advance(StateComparing)
	err = s.Goldens.Check(c, normalized)
	switch {
	case err == nil:
		run.advance(StatePassed)
	case errors.Is(err, ErrMissingGolden):
		run.advance(StateMissingGolden)
	default:
		run.advance(StateMismatched)
	}
	return finish(run, result, err)
}

func finish(run *caseRun, result Result, err error) Result {
	result.State = run.state
	result.Err = err
	return result
}
