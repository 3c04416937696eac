package cst

import "github.com/jsona-lang/jsona-go/pkg/token"

// Node is the "red" overlay on a GreenNode: the same immutable
// structure, but carrying an absolute byte offset and a parent link.
// Unlike the GreenNode it wraps, a Node exists only for the duration a
// caller is looking at one part of the tree — Children/Parent
// recompute this bookkeeping from the shared Green node on each call
// rather than storing a permanent red tree alongside the green one.
type Node struct {
	Green  *GreenNode
	Offset int
	Parent *Node
	Index  int // this node's index among Parent's children, -1 for the root
}

// Root wraps a GreenNode as the root of a red tree.
func Root(green *GreenNode) *Node {
	return &Node{Green: green, Offset: 0, Parent: nil, Index: -1}
}

// Kind is the branch kind of the wrapped green node.
func (n *Node) Kind() Kind { return n.Green.Kind }

// Range is the node's absolute [start, end) byte span in the source.
func (n *Node) Range() (start, end int) {
	return n.Offset, n.Offset + n.Green.Width()
}

// Text reconstructs this node's exact source slice.
func (n *Node) Text() string { return n.Green.Text() }

// Element is either a *Node (branch) or a *Token (leaf), mirroring
// GreenChild but carrying red bookkeeping.
type Element struct {
	Node  *Node
	Token *Token
}

// Token is the red overlay on a GreenToken.
type Token struct {
	Green  *GreenToken
	Offset int
	Parent *Node
	Index  int
}

// Kind is the lexical kind of the wrapped green token.
func (t *Token) Kind() token.Kind { return t.Green.Kind }

// Text is the token's exact source text.
func (t *Token) Text() string { return t.Green.Text }

// Range is the token's absolute [start, end) byte span.
func (t *Token) Range() (start, end int) { return t.Offset, t.Offset + len(t.Green.Text) }

// Children returns the immediate children of n as red elements with
// absolute offsets, computed from n's green children.
func (n *Node) Children() []Element {
	els := make([]Element, len(n.Green.Children))
	off := n.Offset
	for i, c := range n.Green.Children {
		if c.Token != nil {
			els[i] = Element{Token: &Token{Green: c.Token, Offset: off, Parent: n, Index: i}}
			off += len(c.Token.Text)
		} else {
			els[i] = Element{Node: &Node{Green: c.Node, Offset: off, Parent: n, Index: i}}
			off += c.Node.Width()
		}
	}
	return els
}

// ChildNodes returns only the branch children, in order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, e := range n.Children() {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// ChildNodesOfKind returns only the branch children with the given Kind.
func (n *Node) ChildNodesOfKind(kind Kind) []*Node {
	var out []*Node
	for _, e := range n.Children() {
		if e.Node != nil && e.Node.Kind() == kind {
			out = append(out, e.Node)
		}
	}
	return out
}

// FirstChildNodeOfKind returns the first branch child with the given
// Kind, or nil.
func (n *Node) FirstChildNodeOfKind(kind Kind) *Node {
	for _, e := range n.Children() {
		if e.Node != nil && e.Node.Kind() == kind {
			return e.Node
		}
	}
	return nil
}

// ChildTokens returns only the leaf children, in order.
func (n *Node) ChildTokens() []*Token {
	var out []*Token
	for _, e := range n.Children() {
		if e.Token != nil {
			out = append(out, e.Token)
		}
	}
	return out
}

// FirstChildTokenOfKind returns the first leaf child of the given
// token.Kind, or nil.
func (n *Node) FirstChildTokenOfKind(kind token.Kind) *Token {
	for _, e := range n.Children() {
		if e.Token != nil && e.Token.Kind() == kind {
			return e.Token
		}
	}
	return nil
}

// ChildTokensOfKind returns every leaf child of the given token.Kind.
func (n *Node) ChildTokensOfKind(kind token.Kind) []*Token {
	var out []*Token
	for _, e := range n.Children() {
		if e.Token != nil && e.Token.Kind() == kind {
			out = append(out, e.Token)
		}
	}
	return out
}

// Walk calls visit for n and every descendant, depth-first, pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.ChildNodes() {
		c.Walk(visit)
	}
}

// ContainsErrors reports whether n or any descendant is a KindError
// node, the signal the formatter uses to refuse to run unless forced.
func (n *Node) ContainsErrors() bool {
	found := false
	n.Walk(func(c *Node) {
		if c.Kind() == KindError {
			found = true
		}
	})
	return found
}
