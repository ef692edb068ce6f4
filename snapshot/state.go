package snapshot

import "fmt"

// State is a step in a case's lifecycle.
type State string

const (
	StatePending     State = "pending"
	StateBuilding    State = "building"
	StateBuilt       State = "built"
	StateComparing   State = "comparing"
	StateOverwriting State = "overwriting"

	// StateBuildFailed means the fixture never ran.
	StateBuildFailed State = "build-failed"
	// StatePassed means normalized output matched the golden.
	StatePassed State = "passed"
	// StateMismatched means normalized output differed from the golden.
	StateMismatched State = "mismatched"
	// StateMissingGolden means no readable golden existed in check mode.
	StateMissingGolden State = "missing-golden"
	// StateRecorded means output was written as the new golden.
	StateRecorded State = "recorded"
	// StateWriteFailed means the golden could not be written.
	StateWriteFailed State = "write-failed"
)

// TerminalStates returns every final state in tally order.
func TerminalStates() []State {
	return []State{StatePassed, StateMismatched, StateMissingGolden, StateBuildFailed, StateRecorded, StateWriteFailed}
}

// IsTerminal reports whether the case is finished.
func (s State) IsTerminal() bool {
	switch s {
	case StatePassed, StateMismatched, StateMissingGolden, StateBuildFailed, StateRecorded, StateWriteFailed:
		return true
	default:
		return false
	}
}

// IsFailure reports whether a terminal state counts against the run.
func (s State) IsFailure() bool {
	switch s {
	case StateMismatched, StateMissingGolden, StateBuildFailed, StateWriteFailed:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateBuilding
	case StateBuilding:
		return to == StateBuilt || to == StateBuildFailed
	case StateBuilt:
		return to == StateComparing || to == StateOverwriting
	case StateComparing:
		return to == StatePassed || to == StateMismatched || to == StateMissingGolden
	case StateOverwriting:
		return to == StateRecorded || to == StateWriteFailed
	default:
		return false
	}
}

// caseRun tracks one case through its lifecycle.
type caseRun struct {
	name  string
	state State
}

func newCaseRun(name string) *caseRun {
	return &caseRun{name: name, state: StatePending}
}

func (r *caseRun) advance(to State) {
	if !isAllowedTransition(r.state, to) {
		panic(fmt.Sprintf("snapshot case %q: disallowed transition %s -> %s", r.name, r.state, to))
	}
	r.state = to
}
