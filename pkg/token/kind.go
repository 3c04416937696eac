package token

// Kind identifies the lexical class of a Token. Names and the set of
// kinds mirror the syntax kinds of the language this lexer reads: the
// same trivia/structural/value-start split, plus an explicit AtName for
// "@name" annotation markers and Error for anything the lexer can't
// place.
type Kind int

const (
	EOF Kind = iota

	// trivia
	Whitespace
	Newline
	LineComment
	BlockComment

	// structural
	BraceOpen
	BraceClose
	BracketOpen
	BracketClose
	ParenOpen
	ParenClose
	Comma
	Colon
	Period

	// value-start
	Null
	True
	False
	Integer
	IntegerHex
	IntegerOct
	IntegerBin
	Float
	SingleQuoted
	DoubleQuoted
	Backtick

	// identifiers and annotations
	Ident
	AtName

	Error
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case BracketOpen:
		return "BracketOpen"
	case BracketClose:
		return "BracketClose"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case Comma:
		return "Comma"
	case Colon:
		return "Colon"
	case Period:
		return "Period"
	case Null:
		return "Null"
	case True:
		return "True"
	case False:
		return "False"
	case Integer:
		return "Integer"
	case IntegerHex:
		return "IntegerHex"
	case IntegerOct:
		return "IntegerOct"
	case IntegerBin:
		return "IntegerBin"
	case Float:
		return "Float"
	case SingleQuoted:
		return "SingleQuoted"
	case DoubleQuoted:
		return "DoubleQuoted"
	case Backtick:
		return "Backtick"
	case Ident:
		return "Ident"
	case AtName:
		return "AtName"
	case Error:
		return "Error"
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind carry no syntactic
// meaning of their own (whitespace, newlines, comments) but must still
// be preserved verbatim in the CST to keep it lossless.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, LineComment, BlockComment:
		return true
	}
	return false
}

// IsKey reports whether a token of this kind can stand alone as an
// object or annotation-argument key.
func (k Kind) IsKey() bool {
	switch k {
	case Ident, Null, True, False, IntegerHex, IntegerOct, IntegerBin, Integer, Float, SingleQuoted, DoubleQuoted:
		return true
	}
	return false
}
