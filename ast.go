package jsona

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsona-lang/jsona-go/pkg/cst"
	"github.com/jsona-lang/jsona-go/pkg/format"
)

// astToSource renders an AST interchange Node into JSONA source text,
// then reformats it with the default formatter so the result has
// consistent, canonical layout rather than whatever ad hoc spacing the
// raw render produced.
func astToSource(n *Node, opts format.Options) string {
	var b strings.Builder
	writeNode(&b, n)
	src := []byte(b.String())
	root, _ := cst.Parse(src)
	return format.Format(root, opts)
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("null")
		return
	}
	switch n.Type {
	case "null":
		b.WriteString("null")
	case "bool":
		if v, ok := n.Value.(bool); ok && v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case "number":
		writeNumber(b, n.Value)
	case "string":
		s, _ := n.Value.(string)
		b.WriteString(strconv.Quote(s))
	case "array":
		b.WriteByte('[')
		writeAnnotations(b, n.Annotations)
		for i, item := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, &item)
		}
		b.WriteByte(']')
	case "object":
		b.WriteByte('{')
		writeAnnotations(b, n.Annotations)
		for i, p := range n.Properties {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(p.Type.Name))
			b.WriteByte(':')
			writeNode(b, &p.Value)
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
	if n.Type != "array" && n.Type != "object" {
		writeAnnotations(b, n.Annotations)
	}
}

func writeNumber(b *strings.Builder, v any) {
	switch n := v.(type) {
	case int64:
		fmt.Fprintf(b, "%d", n)
	case int:
		fmt.Fprintf(b, "%d", n)
	case float64:
		b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	default:
		b.WriteString("0")
	}
}

func writeAnnotations(b *strings.Builder, annos []Property) {
	for _, a := range annos {
		b.WriteByte(' ')
		b.WriteByte('@')
		b.WriteString(a.Type.Name)
		if a.Value.Type == "" || a.Value.Type == "null" {
			continue
		}
		b.WriteByte('(')
		writeNode(b, &a.Value)
		b.WriteByte(')')
	}
}
