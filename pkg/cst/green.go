package cst

import "github.com/jsona-lang/jsona-go/pkg/token"

// GreenChild is either a GreenToken (a leaf) or a *GreenNode (a branch).
// Exactly one of the two fields is set.
type GreenChild struct {
	Token *GreenToken
	Node  *GreenNode
}

func (c GreenChild) width() int {
	if c.Token != nil {
		return len(c.Token.Text)
	}
	return c.Node.width
}

// GreenToken is an immutable leaf: a token kind plus its exact text.
type GreenToken struct {
	Kind token.Kind
	Text string
}

// GreenNode is an immutable branch: a Kind plus an ordered list of
// children. Two GreenNodes with equal (Kind, children) are
// interchangeable, which is what makes the tree cheap to share; this
// implementation doesn't intern/dedup them (the corpus doesn't either),
// it just never mutates one after Builder.FinishNode produces it.
type GreenNode struct {
	Kind     Kind
	Children []GreenChild
	width    int
}

func newGreenNode(kind Kind, children []GreenChild) *GreenNode {
	w := 0
	for _, c := range children {
		w += c.width()
	}
	return &GreenNode{Kind: kind, Children: children, width: w}
}

// Text reconstructs the exact source slice this node was built from.
func (g *GreenNode) Text() string {
	var b []byte
	g.appendText(&b)
	return string(b)
}

func (g *GreenNode) appendText(b *[]byte) {
	for _, c := range g.Children {
		if c.Token != nil {
			*b = append(*b, c.Token.Text...)
		} else {
			c.Node.appendText(b)
		}
	}
}

// Width is the length in bytes of this node's reconstructed text.
func (g *GreenNode) Width() int { return g.width }
