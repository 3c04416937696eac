package cst

import "github.com/jsona-lang/jsona-go/pkg/token"

// Builder assembles a GreenNode tree bottom-up as the parser recognizes
// grammar productions, the same shape as a rowan GreenNodeBuilder: a
// stack of "in progress" children lists, one per currently-open node.
type Builder struct {
	stack [][]GreenChild
}

// StartNode opens a new branch; subsequent Token/StartNode calls add
// children to it until the matching FinishNode.
func (b *Builder) StartNode() {
	b.stack = append(b.stack, nil)
}

// Token appends a leaf to the currently open branch.
func (b *Builder) Token(kind token.Kind, text string) {
	top := len(b.stack) - 1
	b.stack[top] = append(b.stack[top], GreenChild{Token: &GreenToken{Kind: kind, Text: text}})
}

// FinishNode closes the currently open branch with the given Kind and
// attaches it as a child of the branch now on top of the stack (or
// returns it, if this was the outermost node — see Finish).
func (b *Builder) FinishNode(kind Kind) {
	top := len(b.stack) - 1
	children := b.stack[top]
	b.stack = b.stack[:top]
	node := newGreenNode(kind, children)
	if len(b.stack) == 0 {
		// Nothing left to attach to: stash it back as the sole entry
		// so Finish can retrieve it.
		b.stack = append(b.stack, []GreenChild{{Node: node}})
		return
	}
	parent := len(b.stack) - 1
	b.stack[parent] = append(b.stack[parent], GreenChild{Node: node})
}

// Finish returns the completed root GreenNode. It must be called after
// exactly one top-level StartNode/FinishNode pair has completed.
func (b *Builder) Finish() *GreenNode {
	if len(b.stack) != 1 || len(b.stack[0]) != 1 || b.stack[0][0].Node == nil {
		panic("cst: Finish called with an unbalanced builder")
	}
	return b.stack[0][0].Node
}
