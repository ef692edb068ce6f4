package snapshot

import (
	"fmt"
	"regexp"
	"strings"

	internalstrings "github.com/amonks/xtask/internal/strings"
)

// Rule masks one class of volatile text.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles a masking rule. Rules apply within a single line, so
// the replacement may not contain a line break. The replacement may refer to
// capture groups as $1 or ${name}.
func NewRule(name, pattern, replacement string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("mask %q: %w", name, err)
	}
	if strings.ContainsAny(replacement, "\r\n") {
		return Rule{}, fmt.Errorf("mask %q: replacement must not contain line breaks", name)
	}
	return Rule{Name: name, Pattern: re, Replacement: replacement}, nil
}

// LiteralRule masks every occurrence of value.
func LiteralRule(name, value, replacement string) Rule {
	return Rule{
		Name:        name,
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(value)),
		Replacement: strings.ReplaceAll(replacement, "$", "$$"),
	}
}

func mustRule(name, pattern, replacement string) Rule {
	rule, err := NewRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return rule
}

// DefaultRules returns the built-in masks in application order.
//
// defmt device timestamps such as "0.000001" and hex values printed by the
// fixtures are deterministic under QEMU and stay unmasked.
func DefaultRules() []Rule {
	return []Rule{
		mustRule("cargo-registry", `(?:[A-Za-z]:)?[^\s:'"]*[/\\]\.cargo[/\\]registry[/\\]src[/\\][^/\\\s]+[/\\]`, "<CARGO_REGISTRY>/"),
		mustRule("rustc-sysroot", `/rustc/[0-9a-f]{40}/`, "/rustc/<HASH>/"),
		mustRule("timestamp", `\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?`, "<TIMESTAMP>"),
		mustRule("duration", `finished in \d+(?:\.\d+)?s`, "finished in <DURATION>"),
	}
}

// Normalizer applies an ordered list of rules to captured output.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer returns a normalizer that masks root, then applies rules in order.
// An empty root skips the root mask.
func NewNormalizer(root string, rules ...Rule) *Normalizer {
	all := make([]Rule, 0, len(rules)+1)
	if root = strings.TrimRight(root, `/\`); root != "" {
		all = append(all, LiteralRule("root", root, "<ROOT>"))
	}
	all = append(all, rules...)
	return &Normalizer{rules: all}
}

// Rules returns the rules in application order.
func (n *Normalizer) Rules() []Rule {
	return append([]Rule(nil), n.rules...)
}

// Normalize masks volatile fragments of text. Line endings become LF and the
// number of lines is unchanged.
func (n *Normalizer) Normalize(text string) string {
	text = internalstrings.NormalizeNewlines(text)
	lines := internalstrings.SplitLines(text)
	for i, line := range lines {
		for _, rule := range n.rules {
			line = rule.Pattern.ReplaceAllString(line, rule.Replacement)
		}
		lines[i] = line
	}
	return internalstrings.JoinLines(lines, internalstrings.HasTrailingNewline(text))
}
