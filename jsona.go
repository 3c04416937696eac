// Package jsona is the embedding host's entry point into the toolkit:
// synchronous operations over JSONA source text (Parse, ParseAST,
// StringifyAST, Format, CompileSchema, Validate, plus ValidateDOM over
// an already-built DOM), and the stable wire forms (Diagnostic, AST) an
// external collaborator (LSP, CLI, editor plugin) exchanges with it.
package jsona

import (
	"fmt"

	"github.com/jsona-lang/jsona-go/pkg/cst"
	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/dom"
	"github.com/jsona-lang/jsona-go/pkg/format"
	"github.com/jsona-lang/jsona-go/pkg/schema"
	"github.com/jsona-lang/jsona-go/pkg/validate"
)

// Range is the wire form of a source span: byte offsets plus the
// 1-based line/column of each end, the shape an editor needs to
// underline a diagnostic without recomputing line/column itself.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Position is one endpoint of a Range.
type Position struct {
	Index  int `json:"index"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// rangeFromDiag builds the wire Range for r. When src is available it
// derives both endpoints' line/column straight from byte offsets,
// which also backfills diagnostics (e.g. from pkg/validate) that never
// had a chance to compute their own Line/Col because the phase that
// raised them never saw the source text. Without src (ValidateDOM has
// no text, only an already-built DOM) it falls back to whatever the
// diagnostic's Range already carries for its start.
func rangeFromDiag(r diag.Range, src []byte) Range {
	if src != nil {
		startLine, startCol := diag.LineCol(src, r.Start)
		endLine, endCol := diag.LineCol(src, r.End)
		return Range{
			Start: Position{Index: r.Start, Line: startLine, Column: startCol},
			End:   Position{Index: r.End, Line: endLine, Column: endCol},
		}
	}
	return Range{
		Start: Position{Index: r.Start, Line: r.Line, Column: r.Col},
		End:   Position{Index: r.End, Line: r.Line, Column: r.Col},
	}
}

// Diagnostic is the stable wire form of diag.Diagnostic: a host talks
// to this package only in terms of Kind strings and Range spans, never
// the internal diag.Kind type, so the set of kinds can grow without
// breaking a host that switches on specific strings it knows about.
type Diagnostic struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Range    Range  `json:"range"`
	Pointer  string `json:"pointer,omitempty"`
	Severity string `json:"severity"`
}

func toDiagnostics(diags []diag.Diagnostic, src []byte) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			Kind:     string(d.Kind),
			Message:  d.Message,
			Range:    rangeFromDiag(d.Range, src),
			Pointer:  d.Pointer,
			Severity: d.Severity.String(),
		}
	}
	return out
}

// Key is a named slot's identifier in the AST interchange form: an
// object property's key or an annotation's name, each with its own
// source range distinct from its value's.
type Key struct {
	Name  string `json:"name"`
	Range Range  `json:"range"`
}

// Property pairs a Key with the Node it names, used for both object
// properties and annotations in the AST interchange form.
type Property struct {
	Type  Key  `json:"type"`
	Value Node `json:"value"`
}

// Node is the AST interchange form exchanged with ParseAST/StringifyAST:
// a plain, JSON-marshalable tree that drops CST trivia and the DOM's
// internal back-references, keeping only what a remote host needs to
// reconstruct or inspect a document.
type Node struct {
	Type        string     `json:"type"`
	Value       any        `json:"value,omitempty"`
	Items       []Node     `json:"items,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
	Annotations []Property `json:"annotations"`
	Range       Range      `json:"range"`
}

// Parse tokenizes and parses text, then builds a DOM over it. Lex,
// parse and DOM-build diagnostics are concatenated in pipeline order;
// a best-effort DOM is always returned, never nil, even when errors
// were reported (placeholder nodes stand in for what couldn't decode).
func Parse(text string) (*dom.Node, []Diagnostic) {
	src := []byte(text)
	root, parseDiags := cst.Parse(src)
	node, domDiags := dom.Build(root, src)
	all := append(append([]diag.Diagnostic{}, parseDiags...), domDiags...)
	return node, toDiagnostics(all, src)
}

// ParseAST is Parse, re-shaped into the AST interchange form for a
// host that wants a plain, language-agnostic tree rather than this
// module's own *dom.Node (e.g. to marshal across a wire boundary).
func ParseAST(text string) (*Node, []Diagnostic) {
	node, diags := Parse(text)
	src := []byte(text)
	return nodeToAST(node, src), diags
}

// StringifyAST renders an AST interchange Node back into JSONA source
// text. It round-trips node identity (type/value/items/properties/
// annotations) but not formatting: the output is produced by building
// a minimal value tree and running it through the default formatter,
// not by replaying original trivia, since the interchange form never
// carried trivia in the first place.
func StringifyAST(n *Node) string {
	return astToSource(n, format.Default())
}

// Format parses text, builds its CST, and pretty-prints it with opts.
// Per spec: the formatter bails with an error when the CST contains
// any Error node, unless Force is set in opts.
func Format(text string, opts format.Options) (string, error) {
	src := []byte(text)
	root, _ := cst.Parse(src)
	if root.ContainsErrors() && !opts.Force {
		return "", fmt.Errorf("jsona: refusing to format source with syntax errors (set Force to override)")
	}
	return format.Format(root, opts), nil
}

// CompileSchema parses text and compiles its DOM into a JSON Schema
// value. Diagnostics from lexing, parsing, DOM-build and compilation
// are all concatenated in pipeline order.
func CompileSchema(text string) (*schema.Schema, []Diagnostic) {
	src := []byte(text)
	root, parseDiags := cst.Parse(src)
	node, domDiags := dom.Build(root, src)
	s, compileDiags := schema.Compile(node)
	all := append(append(append([]diag.Diagnostic{}, parseDiags...), domDiags...), compileDiags...)
	return s, toDiagnostics(all, src)
}

// Validate parses text and validates its DOM against root, returning
// only validation diagnostics — a caller that also wants parse/DOM
// diagnostics should call Parse itself and pass its *dom.Node through
// ValidateDOM instead.
func Validate(text string, root *schema.Schema) []Diagnostic {
	src := []byte(text)
	cstRoot, _ := cst.Parse(src)
	node, _ := dom.Build(cstRoot, src)
	diags := validate.Validate(node, root)
	return toDiagnostics(diags, src)
}

// ValidateDOM validates an already-built DOM tree against root,
// skipping the parse step — the shape an LSP host uses since it keeps
// a document's DOM resident between edits instead of reparsing on
// every validate call.
func ValidateDOM(node *dom.Node, root *schema.Schema) []Diagnostic {
	diags := validate.Validate(node, root)
	return toDiagnostics(diags, nil)
}

func nodeToAST(n *dom.Node, src []byte) *Node {
	if n == nil {
		return nil
	}
	start, end := n.Range()
	out := &Node{
		Type:        n.Kind.String(),
		Range:       rangeFromDiag(diag.Range{Start: start, End: end}, src),
		Annotations: annotationsToAST(n, src),
	}
	switch n.Kind {
	case dom.KindArray:
		out.Items = make([]Node, len(n.Items))
		for i, it := range n.Items {
			out.Items[i] = *nodeToAST(it, src)
		}
	case dom.KindObject:
		keys := n.Object.Keys()
		out.Properties = make([]Property, 0, len(keys))
		n.Object.Iter(func(k string, v *dom.Node) {
			keyCST := n.Object.KeyCST(k)
			keyRange := Range{}
			if keyCST != nil {
				ks, ke := keyCST.Range()
				keyRange = rangeFromDiag(diag.Range{Start: ks, End: ke}, src)
			}
			out.Properties = append(out.Properties, Property{
				Type:  Key{Name: k, Range: keyRange},
				Value: *nodeToAST(v, src),
			})
		})
	default:
		out.Value = n.ToPlain()
	}
	return out
}

func annotationsToAST(n *dom.Node, src []byte) []Property {
	out := make([]Property, 0, len(n.Annotations))
	for _, a := range n.Annotations {
		keyRange := Range{}
		if a.CST != nil {
			s, e := a.CST.Range()
			keyRange = rangeFromDiag(diag.Range{Start: s, End: e}, src)
		}
		var value Node
		if a.Value != nil {
			value = *nodeToAST(a.Value, src)
		} else {
			value = Node{Type: "null"}
		}
		out = append(out, Property{Type: Key{Name: a.Name, Range: keyRange}, Value: value})
	}
	return out
}
