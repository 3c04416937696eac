package cst

import "testing"

func TestParseRoundTripsExactText(t *testing.T) {
	srcs := []string{
		`{"a": 1, "b": [1, 2, 3]}`,
		"{\n  a: 1, // comment\n  b: [1,2,],\n}",
		`{} @describe("top") `,
		`[1, 2 @tag,]`,
		`"hello \n world"`,
	}
	for _, src := range srcs {
		root, _ := Parse([]byte(src))
		if got := root.Text(); got != src {
			t.Fatalf("round trip mismatch:\n got:  %q\n want: %q", got, src)
		}
	}
}

func TestParseObjectStructure(t *testing.T) {
	root, diags := Parse([]byte(`{"a": 1, "b": 2}`))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	obj := root.FirstChildNodeOfKind(KindObject)
	if obj == nil {
		t.Fatal("expected an Object node")
	}
	props := obj.ChildNodesOfKind(KindProperty)
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}
}

func TestParseRecoversFromMissingComma(t *testing.T) {
	root, diags := Parse([]byte(`{"a": 1 "b": 2}`))
	if len(diags) == 0 {
		t.Fatal("expected a missing-comma diagnostic")
	}
	obj := root.FirstChildNodeOfKind(KindObject)
	props := obj.ChildNodesOfKind(KindProperty)
	if len(props) != 2 {
		t.Fatalf("expected recovery to still find 2 properties, got %d", len(props))
	}
}

func TestParseAnnotationAttachesToValue(t *testing.T) {
	root, diags := Parse([]byte(`{"a": 1 @required}`))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	obj := root.FirstChildNodeOfKind(KindObject)
	prop := obj.ChildNodesOfKind(KindProperty)[0]
	val := prop.FirstChildNodeOfKind(KindValue)
	annos := val.FirstChildNodeOfKind(KindAnnotations)
	if annos == nil {
		t.Fatal("expected annotations attached to the property value")
	}
}

// At the document root there is no wrapping KindValue node (Parse
// calls parseValueContent directly): the root's trailing annotations
// and an object's interior annotations are both direct children of
// KindRoot / KindObject respectively, which is what these two tests
// pin down.

func TestParseTrailingAnnotationAttachesAfterClosedContainer(t *testing.T) {
	root, diags := Parse([]byte(`{} @describe("top")`))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	obj := root.FirstChildNodeOfKind(KindObject)
	if obj == nil {
		t.Fatal("expected an Object node")
	}
	if obj.FirstChildNodeOfKind(KindAnnotations) != nil {
		t.Fatal("did not expect the trailing annotation inside the closed object")
	}
	if root.FirstChildNodeOfKind(KindAnnotations) == nil {
		t.Fatal("expected @describe attached to the root as a trailing annotation")
	}
}

func TestParseLeadingAnnotationAttachesInsideContainer(t *testing.T) {
	root, diags := Parse([]byte(`{ @tag a: 1 }`))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	obj := root.FirstChildNodeOfKind(KindObject)
	if obj == nil {
		t.Fatal("expected an Object node")
	}
	if obj.FirstChildNodeOfKind(KindAnnotations) == nil {
		t.Fatal("expected @tag attached inside the object, as the container's own annotation")
	}
	if root.FirstChildNodeOfKind(KindAnnotations) != nil {
		t.Fatal("did not expect a root-level Annotations node for an interior-only annotation")
	}
}

func TestParseContainsErrorsOnMalformed(t *testing.T) {
	root, _ := Parse([]byte(`{,}`))
	if !root.ContainsErrors() {
		t.Fatal("expected the tree to report an error for a stray comma")
	}
}
