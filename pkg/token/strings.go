package token

import "github.com/jsona-lang/jsona-go/pkg/diag"

// checkComment flags stray control characters inside a comment token
// spanning src[start:end]. Tabs are always allowed; block comments
// additionally allow the newlines they may legitimately span.
func checkComment(src []byte, start, end int, multiline bool, diags *[]diag.Diagnostic) {
	for i := start; i < end; i++ {
		c := src[i]
		if c == '\t' {
			continue
		}
		if multiline && (c == '\n' || c == '\r') {
			continue
		}
		if isControl(c) {
			*diags = append(*diags, diag.New(diag.KindInvalidComment, "invalid character in comment", rangeOf(src, i, i+1)))
		}
	}
}

// checkStringContents flags stray control characters and invalid escape
// sequences inside a quoted literal spanning src[start:end] (including
// its delimiting quotes). Tabs and raw newlines are not flagged, for
// backtick and single/double-quoted literals alike: isControl excludes
// '\n' and '\r'.
func checkStringContents(src []byte, start, end int, backtick bool, diags *[]diag.Diagnostic) {
	for i := start; i < end; i++ {
		c := src[i]
		if c == '\t' {
			continue
		}
		if backtick && (c == '\n' || c == '\r') {
			continue
		}
		if isControl(c) {
			*diags = append(*diags, diag.New(diag.KindUnexpectedChar, "invalid character in string", rangeOf(src, i, i+1)))
		}
	}
	checkEscapes(src, start, end, diags)
}

// checkEscapes validates every backslash escape sequence in src[start:end]:
// \0 \b \t \n \f \r \" \' \` \\, \xHH, \uHHHH, \u{H...}, and an escaped
// line continuation. Anything else starting with a backslash is reported.
func checkEscapes(src []byte, start, end int, diags *[]diag.Diagnostic) {
	for i := start; i < end; i++ {
		if src[i] != '\\' || i+1 >= end {
			continue
		}
		switch src[i+1] {
		case '0', 'b', 't', 'n', 'f', 'r', '"', '\'', '`', '\\', '\n', '\r':
			i++
			continue
		case 'x':
			if i+3 < end && isHexDigitOrUnderscore(src[i+2]) && isHexDigitOrUnderscore(src[i+3]) {
				i += 3
				continue
			}
		case 'u':
			if i+2 < end && src[i+2] == '{' {
				j := i + 3
				for j < end && isHexDigitOrUnderscore(src[j]) {
					j++
				}
				if j < end && src[j] == '}' && j > i+3 {
					i = j
					continue
				}
			} else if i+5 < end &&
				isHexDigitOrUnderscore(src[i+2]) && isHexDigitOrUnderscore(src[i+3]) &&
				isHexDigitOrUnderscore(src[i+4]) && isHexDigitOrUnderscore(src[i+5]) {
				i += 5
				continue
			}
		}
		*diags = append(*diags, diag.New(diag.KindInvalidEscape, "invalid escape sequence", rangeOf(src, i, i+2)))
		i++
	}
}

func isHexDigitOrUnderscore(c byte) bool { return isHexDigit(c) || c == '_' }

func isControl(c byte) bool {
	return (c < 0x20 && c != '\t' && c != '\n' && c != '\r') || c == 0x7f
}
