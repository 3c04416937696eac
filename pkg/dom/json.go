package dom

// ToPlain converts a Node into a plain Go value tree built only from
// nil, bool, int64, float64, string, []any and map[string]any —
// annotations and CST back-references dropped — suitable for
// encoding/json, goccy/go-yaml, or equality comparison against a
// schema's decoded default/const/enum values. Object key order is not
// preserved; callers that need it should walk Object.Iter directly
// instead.
func (n *Node) ToPlain() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindNull:
		return nil
	case KindBool:
		return n.Bool
	case KindNumber:
		if n.NumberIsInt {
			return n.IntValue
		}
		return n.FloatValue
	case KindString:
		return n.String
	case KindArray:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = it.ToPlain()
		}
		return out
	case KindObject:
		out := make(map[string]any, n.Object.Len())
		n.Object.Iter(func(k string, v *Node) {
			out[k] = v.ToPlain()
		})
		return out
	}
	return nil
}
