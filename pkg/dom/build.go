package dom

import (
	"github.com/jsona-lang/jsona-go/pkg/cst"
	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/token"
)

// Build walks a parsed CST (as returned by cst.Parse, rooted at a
// KindRoot node) into a typed DOM tree. Semantic problems — duplicate
// keys, scalars that fail to decode, a value position that held a
// KindError node — are reported as diagnostics and the affected node
// degrades to a usable placeholder rather than aborting the walk.
func Build(root *cst.Node, src []byte) (*Node, []diag.Diagnostic) {
	b := &builder{src: src}
	n := b.fromValueContainer(root)
	return n, b.diags
}

type builder struct {
	src   []byte
	diags []diag.Diagnostic
}

func (b *builder) report(kind diag.Kind, msg string, n *cst.Node) {
	start, end := n.Range()
	line, col := diag.LineCol(b.src, start)
	b.diags = append(b.diags, diag.New(kind, msg, diag.Range{Start: start, End: end, Line: line, Col: col}))
}

// fromValueContainer extracts the DOM node for a syntax node whose
// direct children are a value-content node (Object/Array/Scalar/Error)
// plus an optional sibling Annotations node — the shape shared by the
// document root and every value position (array item, property value,
// annotation argument).
func (b *builder) fromValueContainer(container *cst.Node) *Node {
	var annos Annotations
	if a := container.FirstChildNodeOfKind(cst.KindAnnotations); a != nil {
		annos = b.annotationsFromCST(a)
	}
	for _, c := range container.ChildNodes() {
		switch c.Kind() {
		case cst.KindObject:
			return b.objectFromCST(c, annos)
		case cst.KindArray:
			return b.arrayFromCST(c, annos)
		case cst.KindScalar:
			return b.scalarFromCST(c, annos)
		}
	}
	b.report(diag.KindInvalidNode, "expected a value", container)
	return &Node{Kind: KindNull, CST: container, Annotations: annos, Invalid: true}
}

func (b *builder) scalarFromCST(c *cst.Node, annos Annotations) *Node {
	toks := c.ChildTokens()
	if len(toks) == 0 {
		b.report(diag.KindInvalidNode, "empty scalar", c)
		return &Node{Kind: KindNull, CST: c, Annotations: annos, Invalid: true}
	}
	t := toks[0]
	text := t.Text()
	switch t.Kind() {
	case token.Null:
		return &Node{Kind: KindNull, CST: c, Annotations: annos}
	case token.True:
		return &Node{Kind: KindBool, Bool: true, CST: c, Annotations: annos}
	case token.False:
		return &Node{Kind: KindBool, Bool: false, CST: c, Annotations: annos}
	case token.Integer, token.IntegerHex, token.IntegerOct, token.IntegerBin:
		repr := reprForIntKind(t.Kind())
		v, ok := decodeInteger(text, repr)
		if !ok {
			b.report(diagKindForNumber(text), "invalid integer literal", c)
			return &Node{Kind: KindNumber, NumberRepr: repr, NumberIsInt: true, CST: c, Annotations: annos, Invalid: true}
		}
		return &Node{Kind: KindNumber, NumberRepr: repr, NumberIsInt: true, IntValue: v, CST: c, Annotations: annos}
	case token.Float:
		v, ok := decodeFloat(text)
		if !ok {
			b.report(diag.KindInvalidNode, "invalid float literal", c)
			return &Node{Kind: KindNumber, NumberRepr: ReprFloat, CST: c, Annotations: annos, Invalid: true}
		}
		return &Node{Kind: KindNumber, NumberRepr: ReprFloat, FloatValue: v, CST: c, Annotations: annos}
	case token.SingleQuoted, token.DoubleQuoted, token.Backtick:
		repr := reprForStringKind(t.Kind())
		s, ok, _ := decodeString(text)
		if !ok {
			b.report(diag.KindInvalidEscape, "invalid escape in string", c)
			return &Node{Kind: KindString, StringRepr: repr, String: s, CST: c, Annotations: annos, Invalid: true}
		}
		return &Node{Kind: KindString, StringRepr: repr, String: s, CST: c, Annotations: annos}
	}
	b.report(diag.KindInvalidNode, "unrecognized scalar", c)
	return &Node{Kind: KindNull, CST: c, Annotations: annos, Invalid: true}
}

func (b *builder) arrayFromCST(c *cst.Node, annos Annotations) *Node {
	var items []*Node
	for _, v := range c.ChildNodesOfKind(cst.KindValue) {
		items = append(items, b.fromValueContainer(v))
	}
	return &Node{Kind: KindArray, Items: items, CST: c, Annotations: b.containerAnnotations(c, annos)}
}

func (b *builder) objectFromCST(c *cst.Node, annos Annotations) *Node {
	m := NewMap()
	for _, prop := range c.ChildNodesOfKind(cst.KindProperty) {
		keyNode := prop.FirstChildNodeOfKind(cst.KindKey)
		valNode := prop.FirstChildNodeOfKind(cst.KindValue)
		if keyNode == nil || valNode == nil {
			b.report(diag.KindInvalidNode, "malformed property", prop)
			continue
		}
		key, ok := b.decodeKey(keyNode)
		if !ok {
			continue
		}
		val := b.fromValueContainer(valNode)
		if dup := m.Set(key, keyNode, val); dup {
			b.report(diag.KindDuplicateKey, "duplicate key: "+key, keyNode)
		}
	}
	return &Node{Kind: KindObject, Object: m, CST: c, Annotations: b.containerAnnotations(c, annos)}
}

// containerAnnotations folds an Object/Array node's own interior
// annotations — the leading "{ @tag ... }" / "[ @tag ... ]" shape
// parseObject/parseArray attach as a direct child of the container
// itself — in front of annos, the trailing annotations the enclosing
// value position already collected. A container with only interior
// annotations and no entries still attaches them to itself.
func (b *builder) containerAnnotations(c *cst.Node, annos Annotations) Annotations {
	a := c.FirstChildNodeOfKind(cst.KindAnnotations)
	if a == nil {
		return annos
	}
	interior := b.annotationsFromCST(a)
	if len(annos) == 0 {
		return interior
	}
	return append(interior, annos...)
}

func (b *builder) decodeKey(keyNode *cst.Node) (string, bool) {
	toks := keyNode.ChildTokens()
	if len(toks) == 0 {
		b.report(diag.KindInvalidNode, "missing key", keyNode)
		return "", false
	}
	t := toks[0]
	switch t.Kind() {
	case token.SingleQuoted, token.DoubleQuoted:
		s, ok, _ := decodeString(t.Text())
		if !ok {
			b.report(diag.KindInvalidEscape, "invalid escape in key", keyNode)
		}
		return s, true
	default:
		return t.Text(), true
	}
}

func (b *builder) annotationsFromCST(a *cst.Node) Annotations {
	var out Annotations
	for _, prop := range a.ChildNodesOfKind(cst.KindAnnotationProperty) {
		nameTok := prop.FirstChildTokenOfKind(token.AtName)
		if nameTok == nil {
			b.report(diag.KindInvalidNode, "malformed annotation", prop)
			continue
		}
		name := nameTok.Text()
		if len(name) > 1 {
			name = name[1:]
		} else {
			name = ""
		}
		var value *Node
		if vn := prop.FirstChildNodeOfKind(cst.KindValue); vn != nil {
			value = b.fromValueContainer(vn)
		}
		if value == nil {
			value = &Node{Kind: KindNull, CST: prop}
		}
		out = append(out, Annotation{Name: name, Value: value, CST: prop})
	}
	return out
}

func reprForIntKind(k token.Kind) NumberRepr {
	switch k {
	case token.IntegerHex:
		return ReprHex
	case token.IntegerOct:
		return ReprOct
	case token.IntegerBin:
		return ReprBin
	default:
		return ReprDec
	}
}

func reprForStringKind(k token.Kind) StringRepr {
	switch k {
	case token.SingleQuoted:
		return ReprSingle
	case token.Backtick:
		return ReprBacktick
	default:
		return ReprDouble
	}
}
