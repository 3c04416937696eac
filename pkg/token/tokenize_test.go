package token

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeStructural(t *testing.T) {
	src := []byte(`{"a": [1, 2]}`)
	toks, diags := Tokenize(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []Kind{BraceOpen, DoubleQuoted, Colon, Whitespace, BracketOpen, Integer, Comma, Whitespace, Integer, BracketClose, BraceClose}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"123", Integer},
		{"-123", Integer},
		{"0x1F_2a", IntegerHex},
		{"0o17", IntegerOct},
		{"0b1010", IntegerBin},
		{"3.14", Float},
		{"-.14", Float},
		{"-3.", Float},
		{"1e10", Float},
	}
	for _, c := range cases {
		toks, diags := Tokenize([]byte(c.src))
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", c.src, diags)
		}
		if len(toks) != 1 || toks[0].Kind != c.kind {
			t.Fatalf("%s: got %v, want single %v", c.src, toks, c.kind)
		}
	}
}

func TestTokenizeZeroPaddingRejected(t *testing.T) {
	_, diags := Tokenize([]byte("0123"))
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for zero-padded integer")
	}
}

func TestTokenizeZeroAlone(t *testing.T) {
	for _, src := range []string{"0", "-0", "+0", "0.5"} {
		_, diags := Tokenize([]byte(src))
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", src, diags)
		}
	}
}

func TestTokenizeKeywordsAndIdent(t *testing.T) {
	toks, _ := Tokenize([]byte("null true false foo-bar"))
	want := []Kind{Null, Whitespace, True, Whitespace, False, Whitespace, Ident}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeAnnotation(t *testing.T) {
	toks, diags := Tokenize([]byte("@describe"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(toks) != 1 || toks[0].Kind != AtName {
		t.Fatalf("got %v, want single AtName", toks)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, diags := Tokenize([]byte("// line\n/* block */"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []Kind{LineComment, Newline, BlockComment}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, diags := Tokenize([]byte(`"abc`))
	if len(diags) != 1 || diags[0].Kind != "UnterminatedString" {
		t.Fatalf("expected one UnterminatedString diagnostic, got %v", diags)
	}
}

func TestTokenizeInvalidEscape(t *testing.T) {
	_, diags := Tokenize([]byte(`"a\qb"`))
	found := false
	for _, d := range diags {
		if d.Kind == "InvalidEscape" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InvalidEscape diagnostic, got %v", diags)
	}
}

func TestTokenizeUnexpectedChar(t *testing.T) {
	_, diags := Tokenize([]byte("#"))
	if len(diags) != 1 || diags[0].Kind != "UnexpectedChar" {
		t.Fatalf("expected one UnexpectedChar diagnostic, got %v", diags)
	}
}
