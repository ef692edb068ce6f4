package snapshot

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/xtask/internal/strings"
	"github.com/amonks/xtask/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
)

// Category labels snapshot results among the harness's other test groups.
const Category = "qemu/snapshot"

const detailIndent = 4

// Reporter receives suite progress.
type Reporter interface {
	Begin(mode Mode, cases int)
	CaseFinished(Result)
	End(Summary)
}

type nopReporter struct{}

func (nopReporter) Begin(Mode, int)      {}
func (nopReporter) CaseFinished(Result) {}
func (nopReporter) End(Summary)         {}

// ConsoleReporter prints one line per finished case, followed by any diff
// or build diagnostics, and a tally table at the end.
type ConsoleReporter struct {
	writer      io.Writer
	headerStyle lipgloss.Style
	nameStyle   lipgloss.Style
	okStyle     lipgloss.Style
	failStyle   lipgloss.Style
	hunkStyle   lipgloss.Style
}

// NewConsoleReporter returns a reporter writing to w. Colors are used only
// when w is a terminal.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = io.Discard
	}
	renderer := lipgloss.NewRenderer(w)
	return &ConsoleReporter{
		writer:      w,
		headerStyle: renderer.NewStyle().Bold(true),
		nameStyle:   renderer.NewStyle().Bold(true),
		okStyle:     renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failStyle:   renderer.NewStyle().Foreground(lipgloss.Color("1")),
		hunkStyle:   renderer.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Begin prints the category banner.
func (r *ConsoleReporter) Begin(mode Mode, cases int) {
	banner := "🧪 " + Category
	if mode == ModeOverwrite {
		banner += " (overwrite)"
	}
	fmt.Fprintln(r.writer, r.headerStyle.Render(banner))
}

// CaseFinished prints the case's status line and failure details.
func (r *ConsoleReporter) CaseFinished(result Result) {
	style := r.okStyle
	if result.Failed() {
		style = r.failStyle
	}
	line := r.nameStyle.Render(result.Case) + ": " + style.Render(string(result.State))
	if note := statusNote(result); note != "" {
		line += " " + note
	}
	fmt.Fprintln(r.writer, line)

	if detail := r.detail(result); detail != "" {
		fmt.Fprint(r.writer, indent.String(detail, detailIndent))
		if !strings.HasSuffix(detail, "\n") {
			fmt.Fprintln(r.writer)
		}
	}
}

// End prints the tally.
func (r *ConsoleReporter) End(summary Summary) {
	table := ui.NewTableBuilder([]string{"Outcome", "Count"}, len(TerminalStates()))
	for _, state := range TerminalStates() {
		count := summary.Tally.Count(state)
		if count == 0 {
			continue
		}
		table.AddRow(string(state), strconv.Itoa(count))
	}
	fmt.Fprintln(r.writer)
	fmt.Fprint(r.writer, table.String())
}

func statusNote(result Result) string {
	var mismatch *MismatchError
	switch {
	case errors.As(result.Err, &mismatch):
		return fmt.Sprintf("at line %d", mismatch.Line)
	case result.State == StateMissingGolden:
		var missing *MissingGoldenError
		if errors.As(result.Err, &missing) && missing.Err == nil {
			return "(run with --overwrite to record " + missing.Path + ")"
		}
	}
	if result.ExitCode != 0 {
		return fmt.Sprintf("(exit status %d)", result.ExitCode)
	}
	return ""
}

func (r *ConsoleReporter) detail(result Result) string {
	if diff := result.Diff(); diff != "" {
		return r.colorDiff(diff)
	}

	var buildErr *BuildError
	if errors.As(result.Err, &buildErr) {
		detail := buildErr.Error()
		if buildErr.Reason != "" {
			detail += "\n" + buildErr.Reason
		}
		return detail
	}

	var missing *MissingGoldenError
	if errors.As(result.Err, &missing) && missing.Err == nil {
		return ""
	}
	if result.Err != nil {
		return result.Err.Error()
	}
	return ""
}

func (r *ConsoleReporter) colorDiff(diff string) string {
	lines := internalstrings.SplitLines(diff)
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = r.nameStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = r.hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = r.okStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = r.failStyle.Render(line)
		}
	}
	return internalstrings.JoinLines(lines, true)
}
