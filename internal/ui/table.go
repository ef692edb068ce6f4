// Package ui renders plain-text terminal layouts.
package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row ...string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as a left-aligned table with two
// spaces between columns. The last column is never padded.
func FormatTable(headers []string, rows [][]string) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, normalizeRow(headers))
	for _, row := range rows {
		all = append(all, normalizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if width := DisplayWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	var builder strings.Builder
	for _, row := range all {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			padding := 2
			if i < len(widths) {
				padding += widths[i] - DisplayWidth(cell)
			}
			builder.WriteString(strings.Repeat(" ", padding))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// DisplayWidth returns the terminal column width of value, ignoring ANSI
// color sequences.
func DisplayWidth(value string) int {
	return runewidth.StringWidth(ansi.Strip(value))
}

func normalizeRow(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(cell)
	}
	return normalized
}
