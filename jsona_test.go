package jsona

import (
	"testing"

	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/format"
	"github.com/jsona-lang/jsona-go/pkg/schema"
)

func TestParseReturnsDOMAndDiagnostics(t *testing.T) {
	node, diags := Parse(`{ a: 1, @note }`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if node.Kind.String() != "object" {
		t.Fatalf("expected object root, got %s", node.Kind)
	}
}

func TestParseAccumulatesDiagnosticsWithLineCol(t *testing.T) {
	_, diags := Parse(`{ a: }`)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for a missing value")
	}
	if diags[0].Range.Start.Line == 0 {
		t.Fatalf("expected a populated line number, got %+v", diags[0].Range)
	}
}

func TestParseASTRoundTripsThroughStringifyAST(t *testing.T) {
	ast, diags := ParseAST(`{"a": 1, "b": [1, 2, 3]}`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	out := StringifyAST(ast)
	reparsed, diags2 := Parse(out)
	if len(diags2) != 0 {
		t.Fatalf("unexpected diagnostics reparsing stringified AST: %+v", diags2)
	}
	v, ok := reparsed.Object.Get("b")
	if !ok || len(v.Items) != 3 {
		t.Fatalf("expected b to round-trip as a 3-element array, got %+v", v)
	}
}

func TestFormatRejectsSyntaxErrorsUnlessForced(t *testing.T) {
	if _, err := Format(`{ a: }`, format.Default()); err == nil {
		t.Fatal("expected an error formatting source with a syntax error")
	}
	opts := format.Default()
	opts.Force = true
	if _, err := Format(`{ a: }`, opts); err != nil {
		t.Fatalf("expected Force to override the bail, got %v", err)
	}
}

func TestCompileSchemaAndValidateEndToEnd(t *testing.T) {
	// @describe sits interior to the "value" object, before its first
	// entry, so it attaches to that object itself; @schema trails after
	// the comma closing "integer: 3", so it attaches to that value.
	s, diags := CompileSchema(`{ value: { @describe("A value") integer: 3, @schema({maximum: 10}) } }`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	valueSchema, ok := s.Properties["value"]
	if !ok {
		t.Fatal("expected a value property in the compiled schema")
	}
	if valueSchema.Description != "A value" {
		t.Fatalf("expected description to survive on the parent, got %q", valueSchema.Description)
	}
	integerSchema, ok := valueSchema.Properties["integer"]
	if !ok || integerSchema.Maximum == nil || *integerSchema.Maximum != 10 {
		t.Fatalf("expected integer.maximum == 10, got %+v", integerSchema)
	}

	diags2 := Validate(`{ value: { integer: 11 } }`, s)
	if len(diags2) != 1 || diags2[0].Kind != string(diag.KindConstraintFailed) {
		t.Fatalf("expected exactly one ConstraintFailed diagnostic, got %+v", diags2)
	}
}

func TestValidateDOMSkipsReparsing(t *testing.T) {
	node, _ := Parse(`{"a": "x"}`)
	s := &schema.Schema{
		Type:       schema.Types{schema.TypeObject},
		Properties: map[string]*schema.Schema{"a": {Type: schema.Types{schema.TypeInteger}}},
	}
	diags := ValidateDOM(node, s)
	if len(diags) != 1 || diags[0].Pointer != "/a" {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
}
