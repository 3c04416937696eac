package diagrender

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsona-lang/jsona-go/pkg/diag"
)

func TestRenderPlainNoColor(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Out: &buf}
	src := []byte("{ a: }\n")
	d := diag.New(diag.KindUnexpectedToken, "expected a value", diag.Range{Start: 5, End: 6, Line: 1, Col: 6})
	r.Render("test.jsona", src, []diag.Diagnostic{d})
	out := buf.String()
	if !strings.Contains(out, "test.jsona:1:6") {
		t.Fatalf("expected a location line, got %q", out)
	}
	if !strings.Contains(out, "expected a value") {
		t.Fatalf("expected the message, got %q", out)
	}
	if !strings.Contains(out, "{ a: }") {
		t.Fatalf("expected the source line rendered, got %q", out)
	}
}

func TestRenderIncludesPointerWhenSet(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Out: &buf}
	d := diag.New(diag.KindTypeMismatch, "expected integer", diag.Range{Start: 0, End: 1, Line: 1, Col: 1})
	d.Pointer = "/a/b"
	r.Render("test.jsona", []byte("1"), []diag.Diagnostic{d})
	if !strings.Contains(buf.String(), "/a/b") {
		t.Fatalf("expected the pointer in output, got %q", buf.String())
	}
}

func TestNewDisablesColorForNonTTY(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	if r.Color != nil {
		t.Fatal("expected no color hook for a non-file, non-tty writer")
	}
}
