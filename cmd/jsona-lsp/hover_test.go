package main

import (
	"testing"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/pkg/dom"
)

func TestOffsetAtFindsLineAndColumn(t *testing.T) {
	content := "a\nbc\n"
	if got := offsetAt(content, 1, 1); got != 3 {
		t.Fatalf("got offset %d, want 3", got)
	}
}

func TestFindNodeAtOffsetReturnsMostSpecific(t *testing.T) {
	root, diags := jsona.Parse(`{ "a": [1, 2] }`)
	for _, d := range diags {
		if d.Severity == "error" {
			t.Fatalf("unexpected parse error: %s", d.Message)
		}
	}
	a, ok := root.Object.Get("a")
	if !ok {
		t.Fatal("expected key a to exist")
	}
	start, _ := a.Items[0].Range()
	got := findNodeAtOffset(root, start)
	if got == nil || got.Kind != dom.KindNumber {
		t.Fatalf("got %v, want the first array element", got)
	}
}

func TestBuildHoverTextIncludesTypeAndValue(t *testing.T) {
	root, _ := jsona.Parse(`"hello"`)
	text := buildHoverText(root)
	if text == "" {
		t.Fatal("expected non-empty hover text")
	}
}
