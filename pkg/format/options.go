package format

// Options controls Format's output. The zero value is not the
// default: use Default() for the documented defaults, since
// TrailingComma/TrailingNewline/FormatKey default to false while
// IndentString defaults to two spaces, not the empty string.
type Options struct {
	// IndentString is prepended once per nesting level in multi-line
	// output. Two spaces if unset.
	IndentString string
	// TrailingComma places a comma after the last element of a
	// multi-line array or object.
	TrailingComma bool
	// TrailingNewline ensures the output ends with exactly one newline.
	TrailingNewline bool
	// FormatKey, when true, drops quotes from object keys that match
	// the bare-identifier regex and re-quotes every other key with the
	// "best" quote style available (the quote character that needs no
	// escaping inside the key's text, preferring double).
	FormatKey bool
	// Force makes the top-level Format operation proceed even when the
	// source it's formatting contains a syntax error (a CST Error
	// node), instead of bailing with an error. Format itself always
	// renders whatever CST it's given; Force only affects the bail
	// check the jsona package's Format wrapper does before calling it.
	Force bool
}

// Default returns the documented zero-configuration behavior.
func Default() Options {
	return Options{IndentString: "  "}
}
