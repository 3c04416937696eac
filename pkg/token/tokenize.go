package token

import (
	"github.com/jsona-lang/jsona-go/pkg/diag"
)

// Tokenize lexes src in full. It never stops at an unrecognized byte:
// that byte becomes a single-byte Error token and lexing resumes right
// after it, so every diagnostic is non-fatal and the caller always gets
// a token stream covering the whole input.
func Tokenize(src []byte) ([]Token, []diag.Diagnostic) {
	var toks []Token
	var diags []diag.Diagnostic
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			j := i + 1
			for j < n && (src[j] == ' ' || src[j] == '\t') {
				j++
			}
			toks = append(toks, Token{Whitespace, i, j})
			i = j
		case c == '\n' || c == '\r':
			j := i
			for j < n && (src[j] == '\n' || src[j] == '\r') {
				j++
			}
			toks = append(toks, Token{Newline, i, j})
			i = j
		case c == '/' && i+1 < n && src[i+1] == '/':
			j := i + 2
			for j < n && src[j] != '\n' {
				j++
			}
			checkComment(src, i, j, false, &diags)
			toks = append(toks, Token{LineComment, i, j})
			i = j
		case c == '/' && i+1 < n && src[i+1] == '*':
			j := i + 2
			for j+1 < n && !(src[j] == '*' && src[j+1] == '/') {
				j++
			}
			if j+1 < n {
				j += 2
			} else {
				j = n
				diags = append(diags, diag.New(diag.KindUnterminatedString, "unterminated block comment", rangeOf(src, i, j)))
			}
			checkComment(src, i, j, true, &diags)
			toks = append(toks, Token{BlockComment, i, j})
			i = j
		case c == '\'' || c == '"':
			j, ok := scanQuoted(src, i, c)
			if !ok {
				diags = append(diags, diag.New(diag.KindUnterminatedString, "unterminated string", rangeOf(src, i, j)))
			} else {
				checkStringContents(src, i, j, false, &diags)
			}
			kind := SingleQuoted
			if c == '"' {
				kind = DoubleQuoted
			}
			toks = append(toks, Token{kind, i, j})
			i = j
		case c == '`':
			j, ok := scanQuoted(src, i, c)
			if !ok {
				diags = append(diags, diag.New(diag.KindUnterminatedString, "unterminated string", rangeOf(src, i, j)))
			} else {
				checkStringContents(src, i, j, true, &diags)
			}
			toks = append(toks, Token{Backtick, i, j})
			i = j
		case c == '{':
			toks = append(toks, Token{BraceOpen, i, i + 1})
			i++
		case c == '}':
			toks = append(toks, Token{BraceClose, i, i + 1})
			i++
		case c == '[':
			toks = append(toks, Token{BracketOpen, i, i + 1})
			i++
		case c == ']':
			toks = append(toks, Token{BracketClose, i, i + 1})
			i++
		case c == '(':
			toks = append(toks, Token{ParenOpen, i, i + 1})
			i++
		case c == ')':
			toks = append(toks, Token{ParenClose, i, i + 1})
			i++
		case c == ',':
			toks = append(toks, Token{Comma, i, i + 1})
			i++
		case c == ':':
			toks = append(toks, Token{Colon, i, i + 1})
			i++
		case c == '.':
			// A bare '.' is structural unless it starts a float like ".5".
			if i+1 < n && isDigit(src[i+1]) {
				end, _ := scanNumber(src, i)
				toks = append(toks, Token{Float, i, end})
				i = end
			} else {
				toks = append(toks, Token{Period, i, i + 1})
				i++
			}
		case c == '@':
			j := i + 1
			for j < n && isIdentByte(src[j]) {
				j++
			}
			toks = append(toks, Token{AtName, i, j})
			if j == i+1 {
				diags = append(diags, diag.New(diag.KindUnexpectedChar, "invalid annotation key", rangeOf(src, i, j)))
			}
			i = j
		case c == '0' && i+1 < n && (src[i+1] == 'x' || src[i+1] == 'X'):
			i = scanBaseAndEmit(src, i, &toks, &diags, isHexDigit)
		case c == '0' && i+1 < n && (src[i+1] == 'o' || src[i+1] == 'O'):
			i = scanBaseAndEmit(src, i, &toks, &diags, func(c byte) bool { return c >= '0' && c <= '7' })
		case c == '0' && i+1 < n && (src[i+1] == 'b' || src[i+1] == 'B'):
			i = scanBaseAndEmit(src, i, &toks, &diags, func(c byte) bool { return c == '0' || c == '1' })
		case isDigit(c) || ((c == '+' || c == '-') && i+1 < n && (isDigit(src[i+1]) || src[i+1] == '.')):
			end, isFloat := scanNumber(src, i)
			text := string(src[i:end])
			kind := Integer
			if isFloat {
				kind = Float
			}
			if !validateUnderscores(text, isDigit) {
				diags = append(diags, diag.New(diag.KindInvalidNumber, "invalid underscores", rangeOf(src, i, end)))
			}
			intPart := text
			if idx := indexAny(intPart, ".eE"); idx >= 0 {
				intPart = intPart[:idx]
			}
			if hasLeadingZeroPadding(intPart) {
				diags = append(diags, diag.New(diag.KindInvalidNumber, "zero-padded numbers are not allowed", rangeOf(src, i, end)))
			}
			toks = append(toks, Token{kind, i, end})
			i = end
		case isIdentStartByte(c):
			j := i + 1
			for j < n && isIdentByte(src[j]) {
				j++
			}
			text := string(src[i:j])
			kind := identKeywordKind(text)
			toks = append(toks, Token{kind, i, j})
			i = j
		default:
			diags = append(diags, diag.New(diag.KindUnexpectedChar, "unexpected character", rangeOf(src, i, i+1)))
			toks = append(toks, Token{Error, i, i + 1})
			i++
		}
	}
	return toks, diags
}

func scanBaseAndEmit(src []byte, i int, toks *[]Token, diags *[]diag.Diagnostic, isDigitInBase func(byte) bool) int {
	end, kind := scanBasePrefixed(src, i)
	text := string(src[i:end])
	if !validateUnderscores(text[2:], isDigitInBase) {
		*diags = append(*diags, diag.New(diag.KindInvalidNumber, "invalid underscores", rangeOf(src, i, end)))
	}
	*toks = append(*toks, Token{kind, i, end})
	return end
}

func identKeywordKind(text string) Kind {
	switch text {
	case "null":
		return Null
	case "true":
		return True
	case "false":
		return False
	default:
		return Ident
	}
}

func isIdentStartByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '-'
}

func isIdentByte(c byte) bool {
	return isIdentStartByte(c) || isDigit(c)
}

func indexAny(s, chars string) int {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return i
			}
		}
	}
	return -1
}

func rangeOf(src []byte, start, end int) diag.Range {
	line, col := diag.LineCol(src, start)
	return diag.Range{Start: start, End: end, Line: line, Col: col}
}

// scanQuoted scans a quoted literal delimited by quote, honoring
// backslash escapes so an escaped quote doesn't end the literal early.
// It returns the offset right after the closing quote, or the input
// length and false if the literal runs off the end of src unterminated.
func scanQuoted(src []byte, i int, quote byte) (end int, ok bool) {
	n := len(src)
	j := i + 1
	for j < n {
		if src[j] == '\\' && j+1 < n {
			j += 2
			continue
		}
		if src[j] == quote {
			return j + 1, true
		}
		j++
	}
	return n, false
}
