package jsonaglob

import "testing"

func TestMatch(t *testing.T) {
	cases := []struct {
		source, target string
		want            bool
	}{
		{"", "", true},
		{"abc", "abc", true},
		{"a*c", "abc", true},
		{"a?c", "abc", true},
		{"a*c", "abbc", true},
		{"*c", "abc", true},
		{"a*", "abc", true},
		{"?c", "bc", true},
		{"a?", "ab", true},
		{"abc", "adc", false},
		{"abc", "abcd", false},
		{"a?c", "abbc", false},
		{"*.jsona", "config.jsona", true},
		{"*.jsona", "config.json", false},
	}
	for _, c := range cases {
		if got := Match(c.source, c.target); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.source, c.target, got, c.want)
		}
	}
}

func TestMatchAny(t *testing.T) {
	if !MatchAny([]string{"*.yaml", "*.jsona"}, "x.jsona") {
		t.Fatal("expected a match against the second pattern")
	}
	if MatchAny(nil, "x.jsona") {
		t.Fatal("expected no match against an empty pattern set")
	}
}
