package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/xtask/internal/command"
)

// fakeFixture scripts how one fixture behaves under fakeExecutor.
type fakeFixture struct {
	stdout      string
	exitCode    int
	buildExit   int
	buildStderr string
	launchErr   error
}

// fakeExecutor stands in for cargo. Build steps look like
// "-q build --bin NAME" or "-q test --test NAME"; run steps like "-q rb NAME".
type fakeExecutor struct {
	fixtures map[string]fakeFixture
	calls    []command.Spec
}

func newFakeExecutor(fixtures map[string]fakeFixture) *fakeExecutor {
	return &fakeExecutor{fixtures: fixtures}
}

func (f *fakeExecutor) Execute(spec command.Spec) (command.Result, error) {
	f.calls = append(f.calls, spec)

	if isBuildStep(spec) {
		fixture := f.fixtures[spec.Args[3]]
		if fixture.launchErr != nil {
			return command.Result{}, fixture.launchErr
		}
		return command.Result{ExitCode: fixture.buildExit, Stderr: []byte(fixture.buildStderr)}, nil
	}

	fixture, ok := f.fixtures[spec.Args[2]]
	if !ok {
		return command.Result{ExitCode: 101, Stderr: []byte("no such fixture")}, nil
	}
	return command.Result{ExitCode: fixture.exitCode, Stdout: []byte(fixture.stdout)}, nil
}

func isBuildStep(spec command.Spec) bool {
	return len(spec.Args) > 1 && (spec.Args[1] == "build" || spec.Args[1] == "test")
}

func (f *fakeExecutor) buildCount() int {
	count := 0
	for _, call := range f.calls {
		if isBuildStep(call) {
			count++
		}
	}
	return count
}

type testSuite struct {
	*Suite
	root     string
	executor *fakeExecutor
}

// newTestSuite wires a suite over catalog with goldens under a temp dir.
func newTestSuite(t *testing.T, catalog *Catalog, fixtures map[string]fakeFixture) *testSuite {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "firmware", "qemu")
	executor := newFakeExecutor(fixtures)
	return &testSuite{
		Suite: &Suite{
			Catalog:    catalog,
			Runner:     &Runner{Executor: executor, Tool: "cargo", Dir: dir},
			Normalizer: NewNormalizer(root, DefaultRules()...),
			Goldens:    &GoldenStore{Root: dir},
		},
		root:     root,
		executor: executor,
	}
}

func (s *testSuite) writeGolden(t *testing.T, c Case, text string) {
	t.Helper()
	path := s.Goldens.Path(c)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

func (s *testSuite) readGolden(t *testing.T, c Case) string {
	t.Helper()
	data, err := os.ReadFile(s.Goldens.Path(c))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

func mustNewCatalog(t *testing.T, cases ...Case) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(cases...)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func states(results []Result) []State {
	out := make([]State, len(results))
	for i, result := range results {
		out[i] = result.State
	}
	return out
}
