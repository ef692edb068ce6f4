// Package report merges results from the harness's test categories into a
// single verdict for the process.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTestsFailed indicates at least one category reported a failure.
var ErrTestsFailed = errors.New("some tests failed")

// Failure is one failed check within a category.
type Failure struct {
	Category string
	Err      error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Category, f.Err)
}

// Collector accumulates failures. The zero value is ready to use.
type Collector struct {
	failures []Failure
}

// Add records err under category. A nil err is ignored.
func (c *Collector) Add(category string, err error) {
	if err == nil {
		return
	}
	c.failures = append(c.failures, Failure{Category: category, Err: err})
}

// AddAll records each error under category.
func (c *Collector) AddAll(category string, errs ...error) {
	for _, err := range errs {
		c.Add(category, err)
	}
}

// Merge appends every failure collected by other.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.failures = append(c.failures, other.failures...)
}

// Failures returns the recorded failures in order.
func (c *Collector) Failures() []Failure {
	return append([]Failure(nil), c.failures...)
}

// Err returns a *FailedError listing every failure, or nil if there are none.
func (c *Collector) Err() error {
	if len(c.failures) == 0 {
		return nil
	}
	return &FailedError{Failures: c.Failures()}
}

// FailedError is the harness's overall failure. It exits the process with
// status 1.
type FailedError struct {
	Failures []Failure
}

func (e *FailedError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		lines = append(lines, "  "+failure.String())
	}
	return fmt.Sprintf("😔 %s:\n%s", ErrTestsFailed, strings.Join(lines, "\n"))
}

func (e *FailedError) Unwrap() []error {
	errs := []error{ErrTestsFailed}
	for _, failure := range e.Failures {
		errs = append(errs, failure.Err)
	}
	return errs
}

// ExitCode implements the exit status contract used by main.
func (e *FailedError) ExitCode() int {
	return 1
}
