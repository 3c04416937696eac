package main

import (
	"testing"

	"github.com/jsona-lang/jsona-go"
)

func TestSplitPointerUnescapesTildeAndSlash(t *testing.T) {
	got := splitPointer("/a~1b/c~0d")
	want := []string{"a/b", "c~d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAstAtResolvesObjectAndArraySegments(t *testing.T) {
	root, diags := jsona.ParseAST(`{ "a": [1, 2, { "b": 3 }] }`)
	for _, d := range diags {
		if d.Severity == "error" {
			t.Fatalf("unexpected parse error: %s", d.Message)
		}
	}
	got, ok := astAt(root, "/a/2/b")
	if !ok {
		t.Fatal("expected pointer to resolve")
	}
	if got.Type != "number" {
		t.Fatalf("got type %q, want number", got.Type)
	}
	if v, ok := got.Value.(int64); !ok || v != 3 {
		t.Fatalf("got value %v, want int64(3)", got.Value)
	}
}

func TestAstAtMissingSegmentFails(t *testing.T) {
	root, _ := jsona.ParseAST(`{ "a": 1 }`)
	if _, ok := astAt(root, "/b"); ok {
		t.Fatal("expected pointer resolution to fail")
	}
}
