// Package diagrender renders diag.Diagnostic values as a codespan-style
// report for a terminal: the filename, line and column, the offending
// source line, and a caret span underlining the diagnostic's range.
// Severity coloring is applied through a Color hook over the pieces of
// text that carry meaning, gated on whether the output stream is a TTY.
package diagrender

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jsona-lang/jsona-go/pkg/diag"
)

// Renderer prints diagnostics against a named source to Out.
type Renderer struct {
	Out io.Writer
	// Color, when non-nil, wraps a piece of rendered text (the severity
	// label and the caret underline) for display. A
	// nil Color prints plain text, same as running with output
	// redirected to a file.
	Color func(diag.Severity, string) string
}

// New returns a Renderer writing to out, with colored output enabled
// only when out is a terminal.
func New(out io.Writer) *Renderer {
	r := &Renderer{Out: out}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r.Color = defaultColor
	}
	return r
}

func defaultColor(sev diag.Severity, s string) string {
	switch sev {
	case diag.SeverityWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	}
}

func (r *Renderer) apply(sev diag.Severity, s string) string {
	if r.Color == nil {
		return s
	}
	return r.Color(sev, s)
}

// Render writes one codespan-style report per diagnostic in diags,
// each against filename and the source line it points into.
func (r *Renderer) Render(filename string, src []byte, diags []diag.Diagnostic) {
	lines := splitLines(src)
	for _, d := range diags {
		r.renderOne(filename, lines, d)
	}
}

func (r *Renderer) renderOne(filename string, lines []string, d diag.Diagnostic) {
	label := fmt.Sprintf("%s: %s", d.Severity, d.Kind)
	fmt.Fprintf(r.Out, "%s: %s\n", r.apply(d.Severity, label), d.Message)
	fmt.Fprintf(r.Out, "  --> %s:%d:%d\n", filename, d.Range.Line, d.Range.Col)
	if d.Range.Line < 1 || d.Range.Line > len(lines) {
		return
	}
	lineText := lines[d.Range.Line-1]
	gutter := fmt.Sprintf("%d", d.Range.Line)
	fmt.Fprintf(r.Out, "%s | %s\n", gutter, lineText)
	span := caretSpan(d)
	underline := strings.Repeat(" ", len(gutter)) + " | " + strings.Repeat(" ", max(d.Range.Col-1, 0)) + strings.Repeat("^", max(span, 1))
	fmt.Fprintln(r.Out, r.apply(d.Severity, underline))
	if d.Pointer != "" {
		fmt.Fprintf(r.Out, "%s | at %s\n", strings.Repeat(" ", len(gutter)), d.Pointer)
	}
}

func caretSpan(d diag.Diagnostic) int {
	n := d.Range.End - d.Range.Start
	if n <= 0 {
		return 1
	}
	return n
}

func splitLines(src []byte) []string {
	return strings.Split(string(src), "\n")
}
