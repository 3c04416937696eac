// Package cst implements a lossless concrete syntax tree over the
// token stream produced by pkg/token: concatenating a node's children's
// source text, in order, reproduces that node's original source slice
// exactly, trivia included. The tree follows a red/green design: an
// immutable, structurally-shared GreenNode records only (Kind,
// children); a Node (the "red" overlay) wraps a GreenNode with an
// absolute byte offset and a parent link, computed on demand as the
// tree is walked.
package cst

// Kind identifies the grammatical role of a branch node in the tree.
// Leaves are plain tokens (see pkg/token.Kind) and need no Kind of
// their own.
type Kind int

const (
	// KindRoot wraps the single top-level value plus any document-root
	// annotations and trailing trivia.
	KindRoot Kind = iota
	// KindValue wraps a single value (scalar/array/object) together
	// with the annotations attached to it and surrounding trivia.
	KindValue
	KindObject
	KindProperty
	KindKey
	KindArray
	KindScalar
	KindAnnotations
	KindAnnotationProperty
	// KindError wraps one or more tokens the parser could not place;
	// its presence means the document doesn't perfectly match the
	// grammar, but the rest of the tree still parsed.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindValue:
		return "Value"
	case KindObject:
		return "Object"
	case KindProperty:
		return "Property"
	case KindKey:
		return "Key"
	case KindArray:
		return "Array"
	case KindScalar:
		return "Scalar"
	case KindAnnotations:
		return "Annotations"
	case KindAnnotationProperty:
		return "AnnotationProperty"
	case KindError:
		return "Error"
	}
	return "Unknown"
}
