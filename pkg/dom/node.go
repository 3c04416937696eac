// Package dom layers a typed tree over a pkg/cst tree: Null, Bool,
// Number, String, Array and Object nodes, each carrying an ordered,
// annotation-free list of Annotations and a back-reference to the CST
// node it was built from.
package dom

import "github.com/jsona-lang/jsona-go/pkg/cst"

// Kind is the DOM node's value type.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// NumberRepr records which literal form a Number was written in, so the
// formatter can preserve it and the schema compiler/validator can tell
// an integer literal from a float one.
type NumberRepr int

const (
	ReprDec NumberRepr = iota
	ReprBin
	ReprOct
	ReprHex
	ReprFloat
)

// StringRepr records which quote style a String was written with.
type StringRepr int

const (
	ReprDouble StringRepr = iota
	ReprSingle
	ReprBacktick
)

// Node is a single DOM value. Unlike the CST it's built from, a Node
// carries decoded scalar values and a normalized view of its children;
// unlike a plain Go value (e.g. encoding/json's any), it keeps its
// annotations and a back-reference to the syntax it came from so
// pointer-based diagnostics and schema compilation can report exact
// source spans.
//
// Decoding happens once, eagerly, when the tree is built (Build):
// there's no host here long-lived enough for the reference
// implementation's truly lazy OnceCell fields to pay for themselves, so
// this is plain eager decoding with the same fallback behavior — a
// decode failure degrades to a zero-valued placeholder plus a
// diagnostic, never a hard error.
type Node struct {
	Kind        Kind
	CST         *cst.Node
	Annotations Annotations

	Bool bool

	NumberRepr  NumberRepr
	NumberIsInt bool
	IntValue    int64
	FloatValue  float64

	StringRepr StringRepr
	String     string

	Items []*Node

	Object *Map

	// Invalid marks a node that could not be built from its syntax at
	// all (e.g. a KindError CST node in value position). Its Kind is
	// still set to a usable default (KindNull) so callers don't have to
	// special-case it, the same placeholder-on-failure behavior as a
	// scalar decode error.
	Invalid bool
}

// Range returns the absolute byte span of the syntax this node was
// built from.
func (n *Node) Range() (start, end int) {
	if n.CST == nil {
		return 0, 0
	}
	return n.CST.Range()
}

// IsScalar reports whether n is a Null, Bool, Number or String.
func (n *Node) IsScalar() bool {
	switch n.Kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
	return false
}

// Annotation is one `@name` or `@name(value)` annotation attached to a
// Node. Value is never itself annotated — annotations on an annotation
// value are a parse-time diagnostic, not part of the tree.
type Annotation struct {
	Name  string
	Value *Node
	CST   *cst.Node
}

// Annotations is an ordered list of Annotation, preserving source
// order and allowing duplicates (the last one wins on lookup, same
// duplicate-key semantics as object properties).
type Annotations []Annotation

// Get returns the value of the last annotation named name, if any.
func (a Annotations) Get(name string) (*Node, bool) {
	var found *Node
	ok := false
	for _, e := range a {
		if e.Name == name {
			found = e.Value
			ok = true
		}
	}
	return found, ok
}

// Has reports whether an annotation named name is present.
func (a Annotations) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Map is an insertion-ordered string-keyed map of DOM nodes, backing
// Object. Setting an already-present key overwrites its value in
// place while keeping the key's original position — the same
// semantics an IndexMap gives the reference implementation's object
// builder (see DESIGN.md's "duplicate object keys" resolution).
type Map struct {
	keys    []string
	index   map[string]int
	values  []*Node
	keyCST  []*cst.Node
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

// Set inserts or overwrites key. It reports whether key already
// existed (the caller uses this to raise a DuplicateKey diagnostic).
func (m *Map) Set(key string, keyCST *cst.Node, val *Node) (duplicate bool) {
	if i, ok := m.index[key]; ok {
		m.values[i] = val
		m.keyCST[i] = keyCST
		return true
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, val)
	m.keyCST = append(m.keyCST, keyCST)
	return false
}

// Get looks up key.
func (m *Map) Get(key string) (*Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// KeyCST returns the CST node of key's last-written occurrence, if any.
func (m *Map) KeyCST(key string) *cst.Node {
	i, ok := m.index[key]
	if !ok {
		return nil
	}
	return m.keyCST[i]
}

// Keys returns the keys in first-occurrence order.
func (m *Map) Keys() []string { return m.keys }

// Len returns the number of distinct keys.
func (m *Map) Len() int { return len(m.keys) }

// Iter calls fn for every entry in first-occurrence order.
func (m *Map) Iter(fn func(key string, val *Node)) {
	for i, k := range m.keys {
		fn(k, m.values[i])
	}
}
