package cst

import (
	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/token"
)

// Parse lexes and parses src into a lossless CST. It never fails: a
// malformed value becomes a KindError node wrapping the offending
// token(s), diagnostics accumulate, and parsing resumes at the next
// recognizable boundary so the whole document always parses to
// completion. The returned diagnostics hold the lexing problems first,
// then the parsing problems, each group in source order.
func Parse(src []byte) (*Node, []diag.Diagnostic) {
	toks, diags := token.Tokenize(src)
	p := &parser{src: src, toks: toks, diags: diags, curIdx: -2}
	p.b.StartNode()
	p.parseValueContent()
	p.parseAnnotationsIfPresent()
	for {
		if _, ok := p.peek(); !ok {
			break
		}
		p.consumeAsError("expected end of input")
	}
	p.b.FinishNode(KindRoot)
	green := p.b.Finish()
	return Root(green), p.diags
}

type parser struct {
	src    []byte
	toks   []token.Token
	pos    int
	curIdx int // -2 = unknown, -1 = EOF, >=0 = index into toks
	b      Builder
	diags  []diag.Diagnostic
}

func (p *parser) fill() {
	if p.curIdx != -2 {
		return
	}
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if t.Kind.IsTrivia() {
			p.b.Token(t.Kind, t.Text(p.src))
			p.pos++
			continue
		}
		if t.Kind == token.Error {
			p.b.StartNode()
			p.b.Token(t.Kind, t.Text(p.src))
			p.b.FinishNode(KindError)
			p.pos++
			continue
		}
		p.curIdx = p.pos
		return
	}
	p.curIdx = -1
}

// peek returns the kind of the next significant token without
// consuming it, flushing any intervening trivia into the currently
// open node as a side effect (matching the reference parser, where
// scanning past trivia and recording it in the tree happen together).
func (p *parser) peek() (token.Kind, bool) {
	p.fill()
	if p.curIdx < 0 {
		return 0, false
	}
	return p.toks[p.curIdx].Kind, true
}

func (p *parser) currentRange() diag.Range {
	p.fill()
	if p.curIdx < 0 {
		return diagRangeAt(p.src, len(p.src))
	}
	t := p.toks[p.curIdx]
	line, col := diag.LineCol(p.src, t.Start)
	return diag.Range{Start: t.Start, End: t.End, Line: line, Col: col}
}

func diagRangeAt(src []byte, off int) diag.Range {
	line, col := diag.LineCol(src, off)
	return diag.Range{Start: off, End: off, Line: line, Col: col}
}

// consume appends the current token verbatim to the currently open
// node and advances past it.
func (p *parser) consume() {
	p.fill()
	if p.curIdx < 0 {
		return
	}
	t := p.toks[p.curIdx]
	p.b.Token(t.Kind, t.Text(p.src))
	p.pos = p.curIdx + 1
	p.curIdx = -2
}

// consumeAsError wraps the current token (or nothing, at EOF) in a
// KindError node with the given diagnostic message.
func (p *parser) consumeAsError(msg string) {
	p.errorAtCurrent(diag.KindUnexpectedToken, msg)
	p.fill()
	if p.curIdx < 0 {
		p.b.StartNode()
		p.b.FinishNode(KindError)
		return
	}
	p.b.StartNode()
	p.consume()
	p.b.FinishNode(KindError)
}

func (p *parser) errorAtCurrent(kind diag.Kind, msg string) {
	p.diags = append(p.diags, diag.New(kind, msg, p.currentRange()))
}

func (p *parser) pointError(kind diag.Kind, msg string) {
	// A "virtual" diagnostic pointing at the position right before the
	// current token, used when a delimiter is simply missing rather
	// than replaced by something unexpected.
	rng := p.currentRange()
	rng.End = rng.Start
	p.diags = append(p.diags, diag.New(kind, msg, rng))
}

func (p *parser) expect(kind token.Kind, msg string) bool {
	if k, ok := p.peek(); ok && k == kind {
		p.consume()
		return true
	}
	p.errorAtCurrent(diag.KindMissingDelimiter, msg)
	return false
}

// parseValueContent parses exactly one scalar/array/object into the
// currently open node, without any surrounding VALUE wrapper (the
// caller decides whether one is needed).
func (p *parser) parseValueContent() {
	k, ok := p.peek()
	if !ok {
		p.errorAtCurrent(diag.KindUnexpectedEOF, "expected a value")
		p.b.StartNode()
		p.b.FinishNode(KindError)
		return
	}
	switch k {
	case token.BraceOpen:
		p.parseObject()
	case token.BracketOpen:
		p.parseArray()
	case token.Null, token.True, token.False,
		token.Integer, token.IntegerHex, token.IntegerOct, token.IntegerBin,
		token.Float, token.SingleQuoted, token.DoubleQuoted, token.Backtick:
		p.b.StartNode()
		p.consume()
		p.b.FinishNode(KindScalar)
	case token.Comma:
		p.consumeAsError("expected a value")
	default:
		p.consumeAsError("expected a value")
	}
}

// parseValueWithAnnotations parses a value's content, an optional
// trailing comma, and any annotations trailing the value or the comma,
// all as children of the currently open KindValue node. It reports
// whether a comma was consumed, which callers use to decide if another
// comma is still needed before the next sibling.
func (p *parser) parseValueWithAnnotations() (hasComma bool) {
	p.parseValueContent()
	if k, ok := p.peek(); ok && k == token.Comma {
		p.consume()
		hasComma = true
	}
	p.parseAnnotationsIfPresent()
	return hasComma
}

func (p *parser) parseAnnotationsIfPresent() {
	if k, ok := p.peek(); !ok || k != token.AtName {
		return
	}
	p.b.StartNode()
	for {
		k, ok := p.peek()
		if !ok || k != token.AtName {
			break
		}
		p.b.StartNode()
		p.consume() // the @name token itself
		if k2, ok2 := p.peek(); ok2 && k2 == token.ParenOpen {
			p.consume()
			if k3, ok3 := p.peek(); ok3 && k3 == token.ParenClose {
				p.consume()
			} else {
				p.b.StartNode()
				p.parseValueContent()
				p.b.FinishNode(KindValue)
				p.expect(token.ParenClose, `expected ")"`)
			}
		}
		p.b.FinishNode(KindAnnotationProperty)
	}
	p.b.FinishNode(KindAnnotations)
}

func (p *parser) parseKey() {
	p.b.StartNode()
	if k, ok := p.peek(); ok && k.IsKey() {
		p.consume()
	} else {
		p.errorAtCurrent(diag.KindUnexpectedToken, "expected a key")
	}
	p.b.FinishNode(KindKey)
}

func (p *parser) parseObject() {
	p.b.StartNode()
	p.consume() // {
	p.parseAnnotationsIfPresent()
	needsComma := false
	for {
		k, ok := p.peek()
		if !ok {
			p.errorAtCurrent(diag.KindMissingDelimiter, `expected "}"`)
			break
		}
		switch {
		case k == token.BraceClose:
			p.consume()
			p.b.FinishNode(KindObject)
			return
		case k == token.Comma:
			if needsComma {
				needsComma = false
				p.consume()
			} else {
				p.consumeAsError(`unexpected ","`)
			}
		default:
			if needsComma {
				p.pointError(diag.KindMissingDelimiter, `expected ","`)
			}
			p.b.StartNode()
			p.parseKey()
			p.expect(token.Colon, `expected ":"`)
			p.b.StartNode()
			hasComma := p.parseValueWithAnnotations()
			p.b.FinishNode(KindValue)
			p.b.FinishNode(KindProperty)
			needsComma = !hasComma
		}
	}
	p.b.FinishNode(KindObject)
}

func (p *parser) parseArray() {
	p.b.StartNode()
	p.consume() // [
	p.parseAnnotationsIfPresent()
	needsComma := false
	for {
		k, ok := p.peek()
		if !ok {
			p.errorAtCurrent(diag.KindMissingDelimiter, `expected "]"`)
			break
		}
		switch {
		case k == token.BracketClose:
			p.consume()
			p.b.FinishNode(KindArray)
			return
		case k == token.Comma:
			if needsComma {
				needsComma = false
				p.consume()
			} else {
				p.consumeAsError(`unexpected ","`)
			}
		default:
			if needsComma {
				p.pointError(diag.KindMissingDelimiter, `expected ","`)
			}
			p.b.StartNode()
			hasComma := p.parseValueWithAnnotations()
			p.b.FinishNode(KindValue)
			needsComma = !hasComma
		}
	}
	p.b.FinishNode(KindArray)
}
