package ui

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"Outcome", "Count"}, 2)
	builder.AddRow("passed", "14")
	builder.AddRow("build-failed", "1")

	want := "" +
		"Outcome       Count\n" +
		"passed        14\n" +
		"build-failed  1\n"
	if got := builder.String(); got != want {
		t.Fatalf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	got := FormatTable([]string{"COL"}, [][]string{{"Hello\nWorld\r\nAgain\tTab"}})

	want := "COL\nHello World Again Tab\n"
	if got != want {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableIgnoresANSICodes(t *testing.T) {
	got := FormatTable([]string{"A", "B"}, [][]string{{"\x1b[32mok\x1b[0m", "1"}})

	want := "A   B\n\x1b[32mok\x1b[0m  1\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := DisplayWidth("🧪"); got != 2 {
		t.Fatalf("expected width 2, got %d", got)
	}
	if got := DisplayWidth("é"); got != 1 {
		t.Fatalf("expected width 1, got %d", got)
	}
}
