package main

import (
	"testing"

	"github.com/jsona-lang/jsona-go/pkg/format"
)

func TestApplyOptionOverridesSetsFields(t *testing.T) {
	opts := format.Default()
	err := applyOptionOverrides(&opts, map[string]string{
		"indentString":  "\t",
		"trailingComma": "true",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.IndentString != "\t" {
		t.Fatalf("got indent %q, want tab", opts.IndentString)
	}
	if !opts.TrailingComma {
		t.Fatal("expected TrailingComma to be set")
	}
}

func TestApplyOptionOverridesRejectsUnknownKey(t *testing.T) {
	opts := format.Default()
	if err := applyOptionOverrides(&opts, map[string]string{"bogus": "x"}); err == nil {
		t.Fatal("expected an error for an unknown option key")
	}
}

func TestOptionOptTypeFuncSplitsOnFirstEquals(t *testing.T) {
	m := map[string]string{}
	fn := optionOptTypeFunc(m)
	if _, err := fn(nil, "indentString=a=b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["indentString"] != "a=b" {
		t.Fatalf("got %q, want %q", m["indentString"], "a=b")
	}
}

func TestOptionOptTypeFuncRejectsMissingEquals(t *testing.T) {
	fn := optionOptTypeFunc(map[string]string{})
	if _, err := fn(nil, "noequals"); err == nil {
		t.Fatal("expected an error for a value with no '='")
	}
}
