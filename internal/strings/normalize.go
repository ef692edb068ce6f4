package strings

import (
	"strings"
)

// NormalizeLowerTrimSpace trims surrounding whitespace and lowercases the input.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNewlines replaces CRLF and CR with LF.
func NormalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// SplitLines splits LF-terminated text into lines.
//
// A trailing newline terminates the last line instead of starting a new,
// empty one, so "a\nb\n" and "a\nb" both yield two lines. Use HasTrailingNewline
// to tell them apart.
func SplitLines(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(value, "\n"), "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	joined := strings.Join(lines, "\n")
	if trailingNewline {
		joined += "\n"
	}
	return joined
}

// HasTrailingNewline reports whether value ends with LF.
func HasTrailingNewline(value string) bool {
	return strings.HasSuffix(value, "\n")
}

// LastLines returns at most n trailing non-empty lines of value.
func LastLines(value string, n int) string {
	value = TrimTrailingNewlines(NormalizeNewlines(value))
	if value == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(value, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
