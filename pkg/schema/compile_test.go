package schema

import (
	"testing"

	"github.com/jsona-lang/jsona-go/pkg/cst"
	"github.com/jsona-lang/jsona-go/pkg/dom"
)

func compile(t *testing.T, src string) *Schema {
	t.Helper()
	root, cdiags := cst.Parse([]byte(src))
	for _, d := range cdiags {
		t.Logf("cst diag: %s", d)
	}
	n, ddiags := dom.Build(root, []byte(src))
	for _, d := range ddiags {
		t.Logf("dom diag: %s", d)
	}
	s, sdiags := Compile(n)
	for _, d := range sdiags {
		t.Logf("schema diag: %s", d)
	}
	return s
}

func TestCompileScalarInfersType(t *testing.T) {
	s := compile(t, `1`)
	if len(s.Type) != 1 || s.Type[0] != TypeInteger {
		t.Fatalf("unexpected type: %v", s.Type)
	}
	s2 := compile(t, `1.5`)
	if len(s2.Type) != 1 || s2.Type[0] != TypeNumber {
		t.Fatalf("unexpected type: %v", s2.Type)
	}
}

func TestCompileObjectRequiredByDefault(t *testing.T) {
	s := compile(t, `{"name": "x" @describe("the name"), "age": 1 @optional}`)
	if !s.HasType(TypeObject) {
		t.Fatalf("expected object type, got %v", s.Type)
	}
	name, ok := s.Properties["name"]
	if !ok {
		t.Fatal("expected name property")
	}
	if name.Description != "the name" {
		t.Fatalf("unexpected description: %q", name.Description)
	}
	if _, ok := s.Properties["age"]; !ok {
		t.Fatal("expected age property")
	}
	foundName, foundAge := false, false
	for _, r := range s.Required {
		if r == "name" {
			foundName = true
		}
		if r == "age" {
			foundAge = true
		}
	}
	if !foundName {
		t.Fatal("expected name in required")
	}
	if foundAge {
		t.Fatal("did not expect age in required, it's @optional")
	}
}

func TestCompileDefAndRef(t *testing.T) {
	s := compile(t, `{"a": {"x": 1} @def("Point"), "b": 1 @ref("Point")}`)
	a := s.Properties["a"]
	if a.Ref != "#/$defs/Point" {
		t.Fatalf("expected a to be a $ref, got %+v", a)
	}
	b := s.Properties["b"]
	if b.Ref != "#/$defs/Point" {
		t.Fatalf("expected b to be a $ref, got %+v", b)
	}
	def, ok := s.Defs["Point"]
	if !ok {
		t.Fatal("expected Point in $defs")
	}
	if !def.HasType(TypeObject) {
		t.Fatalf("expected Point to be an object schema, got %v", def.Type)
	}
	if _, ok := def.Properties["x"]; !ok {
		t.Fatal("expected Point.x property")
	}
}

func TestCompileUnknownRefReportsDiagnostic(t *testing.T) {
	root, _ := cst.Parse([]byte(`1 @ref("Missing")`))
	n, _ := dom.Build(root, []byte(`1 @ref("Missing")`))
	_, diags := Compile(n)
	found := false
	for _, d := range diags {
		if d.Kind == "UnresolvedRef" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an UnresolvedRef diagnostic")
	}
}

func TestCompilePattern(t *testing.T) {
	s := compile(t, `{"foo": 1 @pattern("^x_")}`)
	if len(s.Properties) != 0 {
		t.Fatalf("expected no plain properties, got %v", s.Properties)
	}
	child, ok := s.PatternProperties["^x_"]
	if !ok {
		t.Fatal("expected patternProperties[\"^x_\"]")
	}
	if !child.HasType(TypeInteger) {
		t.Fatalf("unexpected pattern child type: %v", child.Type)
	}
}

func TestCompileCompound(t *testing.T) {
	s := compile(t, `[1, "a"] @compound("oneOf")`)
	if len(s.Type) != 0 {
		t.Fatalf("expected no type on a compound schema, got %v", s.Type)
	}
	if len(s.OneOf) != 2 {
		t.Fatalf("expected 2 oneOf branches, got %d", len(s.OneOf))
	}
	if !s.OneOf[0].HasType(TypeInteger) || !s.OneOf[1].HasType(TypeString) {
		t.Fatalf("unexpected oneOf branch types: %+v", s.OneOf)
	}
}

func TestCompileArrayItemsSingleVsTuple(t *testing.T) {
	bare := compile(t, `[1]`)
	if len(bare.Items) != 1 {
		t.Fatalf("expected a single bare item schema, got %d", len(bare.Items))
	}
	tuple := compile(t, `[1, "a", true]`)
	if len(tuple.Items) != 3 {
		t.Fatalf("expected a 3-element positional tuple, got %d", len(tuple.Items))
	}
	if !tuple.Items[0].HasType(TypeInteger) || !tuple.Items[1].HasType(TypeString) || !tuple.Items[2].HasType(TypeBoolean) {
		t.Fatalf("unexpected tuple item types: %+v", tuple.Items)
	}
}

func TestCompileAnytype(t *testing.T) {
	s := compile(t, `{"a": 1} @anytype`)
	if len(s.Type) != 0 {
		t.Fatalf("expected @anytype to suppress type inference, got %v", s.Type)
	}
	if len(s.Properties) != 0 {
		t.Fatalf("expected @anytype to skip the object walk, got %v", s.Properties)
	}
}

func TestCompileSchemaAnnotationMerge(t *testing.T) {
	s := compile(t, `1 @schema({"description": "hi", "minimum": 0})`)
	if s.Description != "hi" {
		t.Fatalf("unexpected description: %q", s.Description)
	}
	if s.Minimum == nil || *s.Minimum != 0 {
		t.Fatalf("unexpected minimum: %+v", s.Minimum)
	}
	if len(s.Type) != 1 || s.Type[0] != TypeInteger {
		t.Fatalf("expected type to still be inferred, got %v", s.Type)
	}
}

func TestCompileDefault(t *testing.T) {
	s := compile(t, `5 @default`)
	if s.Default == nil || string(*s.Default) != "5" {
		t.Fatalf("unexpected default: %v", s.Default)
	}
}

func TestDocumentSchemaURL(t *testing.T) {
	root, _ := cst.Parse([]byte(`{} @jsonaschema("https://example.com/s.json")`))
	n, _ := dom.Build(root, []byte(`{} @jsonaschema("https://example.com/s.json")`))
	url, ok := DocumentSchemaURL(n)
	if !ok || url != "https://example.com/s.json" {
		t.Fatalf("unexpected schema url: %q %v", url, ok)
	}
	s, _ := Compile(n)
	if _, ok := s.Extra["jsonaschema"]; ok {
		t.Fatal("did not expect @jsonaschema to leak into the compiled schema")
	}
}
