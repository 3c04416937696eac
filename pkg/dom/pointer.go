package dom

import (
	"strconv"
	"strings"
)

// Get resolves an RFC-6901-style JSON Pointer ("", "/a/0/b") against
// root. An empty pointer resolves to root itself. A segment into an
// Object is matched against its decoded keys (already unescaped, same
// as the DOM they're read from); a segment into an Array must be a
// base-10 non-negative index. Any mismatch — wrong container kind, an
// unknown key, an out-of-range or non-numeric array index — fails the
// whole lookup rather than returning a partial result.
func Get(root *Node, pointer string) (*Node, bool) {
	if pointer == "" {
		return root, true
	}
	if pointer[0] != '/' {
		return nil, false
	}
	cur := root
	for _, raw := range strings.Split(pointer[1:], "/") {
		seg := unescapeToken(raw)
		switch cur.Kind {
		case KindObject:
			v, ok := cur.Object.Get(seg)
			if !ok {
				return nil, false
			}
			cur = v
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.Items) {
				return nil, false
			}
			cur = cur.Items[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func unescapeToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}
