// Package jsonaglob implements the small glob matcher used for .jsona
// config include/exclude rules and CLI file selection: `*` (any run of
// characters; it stops at the first occurrence of the pattern character
// that follows it, without backtracking) and `?` (exactly one
// character), no path-segment awareness.
package jsonaglob

// Match reports whether target matches the glob pattern source.
func Match(source, target string) bool {
	ss := []rune(source)
	ts := []rune(target)
	i, j := 0, 0
	for i < len(ss) {
		switch ss[i] {
		case '*':
			if i+1 >= len(ss) {
				return true
			}
			next := ss[i+1]
			for {
				if j >= len(ts) {
					return false
				}
				t := ts[j]
				j++
				if t == next {
					i += 2
					break
				}
			}
		case '?':
			if j >= len(ts) {
				return false
			}
			j++
			i++
		default:
			if j >= len(ts) || ts[j] != ss[i] {
				return false
			}
			j++
			i++
		}
	}
	return j == len(ts)
}

// MatchAny reports whether target matches any of patterns, the empty
// pattern set always failing to match (used for "no include patterns
// configured" where the caller treats that as "include everything"
// rather than calling MatchAny at all).
func MatchAny(patterns []string, target string) bool {
	for _, p := range patterns {
		if Match(p, target) {
			return true
		}
	}
	return false
}
