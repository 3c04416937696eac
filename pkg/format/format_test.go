package format

import (
	"testing"

	"github.com/jsona-lang/jsona-go/pkg/cst"
)

func formatSrc(t *testing.T, src string, opts Options) string {
	t.Helper()
	root, _ := cst.Parse([]byte(src))
	return Format(root, opts)
}

func TestFormatCompactObjectStaysOneLine(t *testing.T) {
	got := formatSrc(t, `{"a": 1, "b": 2}`, Options{})
	want := `{"a": 1, "b": 2}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatMultilineObjectIndents(t *testing.T) {
	src := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	got := formatSrc(t, src, Options{})
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatTrailingCommaOption(t *testing.T) {
	src := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	got := formatSrc(t, src, Options{TrailingComma: true})
	want := "{\n  \"a\": 1,\n  \"b\": 2,\n}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatTrailingNewlineOption(t *testing.T) {
	got := formatSrc(t, `1`, Options{TrailingNewline: true})
	if got != "1\n" {
		t.Fatalf("got %q", got)
	}
	got2 := formatSrc(t, `1`, Options{})
	if got2 != "1" {
		t.Fatalf("expected no trailing newline by default, got %q", got2)
	}
}

func TestFormatArrayMultiline(t *testing.T) {
	src := "[\n  1,\n  2,\n  3\n]"
	got := formatSrc(t, src, Options{})
	want := "[\n  1,\n  2,\n  3\n]"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatAnnotationRendersAfterValue(t *testing.T) {
	got := formatSrc(t, `1 @required`, Options{})
	if got != "1 @required" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAnnotationWithValue(t *testing.T) {
	got := formatSrc(t, `1 @default(0)`, Options{})
	if got != "1 @default(0)" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	src := "{\n  \"a\": [1, 2, 3],\n  \"b\": {\"c\": 1}\n}"
	once := formatSrc(t, src, Options{})
	root, _ := cst.Parse([]byte(once))
	twice := Format(root, Options{})
	if once != twice {
		t.Fatalf("not idempotent:\n once:  %q\n twice: %q", once, twice)
	}
}

func TestFormatKeyDropsUnnecessaryQuotes(t *testing.T) {
	got := formatSrc(t, `{"foo_bar": 1}`, Options{FormatKey: true})
	if got != `{foo_bar: 1}` {
		t.Fatalf("got %q", got)
	}
}

func TestFormatKeyQuotesNonIdentifier(t *testing.T) {
	got := formatSrc(t, `{foo: 1}`, Options{FormatKey: true})
	if got != `{foo: 1}` {
		t.Fatalf("got %q", got)
	}
	got2 := formatSrc(t, `{"has space": 1}`, Options{FormatKey: true})
	if got2 != `{"has space": 1}` {
		t.Fatalf("got %q", got2)
	}
}

func TestFormatPreservesLineComment(t *testing.T) {
	src := "{\n  // note\n  \"a\": 1\n}"
	got := formatSrc(t, src, Options{})
	want := "{\n// note\n  \"a\": 1\n}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatCustomIndentString(t *testing.T) {
	src := "{\n\t\"a\": 1\n}"
	got := formatSrc(t, src, Options{IndentString: "\t"})
	want := "{\n\t\"a\": 1\n}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
