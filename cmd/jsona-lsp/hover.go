package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/jsona-lang/jsona-go/pkg/dom"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.root == nil {
		return nil, nil
	}

	offset := offsetAt(doc.content, int(params.Position.Line), int(params.Position.Character))
	target := findNodeAtOffset(doc.root, offset)
	if target == nil {
		return nil, nil
	}

	text := buildHoverText(target)
	if text == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: text},
	}, nil
}

// findNodeAtOffset walks the DOM for the most specific node whose CST
// range contains offset, descending into whichever child also covers
// the offset.
func findNodeAtOffset(root *dom.Node, offset int) *dom.Node {
	var best *dom.Node
	var visit func(*dom.Node)
	visit = func(n *dom.Node) {
		if n == nil {
			return
		}
		start, end := n.Range()
		if offset < start || offset > end {
			return
		}
		best = n
		for _, item := range n.Items {
			visit(item)
		}
		if n.Object != nil {
			for _, key := range n.Object.Keys() {
				v, _ := n.Object.Get(key)
				visit(v)
			}
		}
	}
	visit(root)
	return best
}

func buildHoverText(n *dom.Node) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("**Type:** %s", n.Kind))
	if v := valueInfo(n); v != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", v))
	}
	for _, ann := range n.Annotations {
		parts = append(parts, fmt.Sprintf("**@%s**", ann.Name))
	}
	return strings.Join(parts, "\n\n")
}

func valueInfo(n *dom.Node) string {
	if !n.IsScalar() {
		if n.Object != nil {
			return fmt.Sprintf("object with %d keys", n.Object.Len())
		}
		return fmt.Sprintf("array with %d elements", len(n.Items))
	}
	switch n.Kind {
	case dom.KindNumber:
		return fmt.Sprintf("`%v`", n.ToPlain())
	case dom.KindString:
		v := n.String
		if len(v) > 50 {
			v = v[:50] + "..."
		}
		return fmt.Sprintf("`%s`", v)
	default:
		return fmt.Sprintf("`%v`", n.Bool)
	}
}

// offsetAt converts a 0-based line/character LSP position to a byte
// offset into content.
func offsetAt(content string, line, char int) int {
	currentLine, currentCol := 0, 0
	for i, r := range content {
		if currentLine == line && currentCol == char {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(content)
}
