package validate

import "github.com/jsona-lang/jsona-go/pkg/schema"

// Query returns the schema fragment that describes the DOM position
// named by pointer under root, following $ref and, for a compound
// keyword, the first branch that resolves. Used by an LSP host for
// completion and hover at a cursor position.
func Query(root *schema.Schema, pointer string) (*schema.Schema, bool) {
	return schema.Query(root, pointer)
}
