package schema

import (
	"encoding/json"
	"strconv"

	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/dom"
)

// Compile walks a DOM tree into a Schema, treating its object/array
// shape as the target schema's own shape and its annotations as the
// JSON-Schema-specific keywords layered on top. The root's
// `@jsonaschema("url")` annotation, if present, is not read here (see
// DocumentSchemaURL) and never reaches the compiled output.
func Compile(root *dom.Node) (*Schema, []diag.Diagnostic) {
	c := &compiler{defs: map[string]*Schema{}, defOrder: nil}
	s := c.compileNode(root, "")
	if len(c.defOrder) > 0 {
		s.Defs = map[string]*Schema{}
		for _, name := range c.defOrder {
			s.Defs[name] = c.defs[name]
		}
	}
	return s, c.diags
}

// DocumentSchemaURL returns the URL declared by a root-level
// `@jsonaschema("url")` annotation, used for schema-association
// precedence rather than for anything in the compiled schema itself.
func DocumentSchemaURL(root *dom.Node) (string, bool) {
	v, ok := root.Annotations.Get("jsonaschema")
	if !ok || v.Kind != dom.KindString {
		return "", false
	}
	return v.String, true
}

type compiler struct {
	defs     map[string]*Schema
	defOrder []string
	diags    []diag.Diagnostic
}

func (c *compiler) report(kind diag.Kind, msg string, n *dom.Node) {
	start, end := n.Range()
	c.diags = append(c.diags, diag.Diagnostic{Kind: kind, Severity: diag.SeverityError, Message: msg, Pointer: "", Range: diag.Range{Start: start, End: end}})
}

// compileNode compiles one DOM node into a Schema fragment. pointer
// is the node's own JSON Pointer, used only for diagnostics.
func (c *compiler) compileNode(n *dom.Node, pointer string) *Schema {
	if defName, ok := stringAnnotation(n, "def"); ok {
		if _, exists := c.defs[defName]; exists {
			c.report(diag.KindInvalidSchemaAnnotation, "duplicate @def(\""+defName+"\")", n)
		} else {
			c.defs[defName] = &Schema{}
			c.defOrder = append(c.defOrder, defName)
		}
		built := c.compileBody(n, pointer)
		c.defs[defName] = built
		return &Schema{Ref: "#/$defs/" + defName}
	}
	if refName, ok := stringAnnotation(n, "ref"); ok {
		if _, exists := c.defs[refName]; !exists {
			c.report(diag.KindUnresolvedRef, "@ref(\""+refName+"\") to undeclared @def", n)
		}
		return &Schema{Ref: "#/$defs/" + refName}
	}
	return c.compileBody(n, pointer)
}

// compileBody compiles everything except the @def/@ref short-circuit:
// the @schema merge, @describe/@default/@example, @anytype, and the
// type-specific recursive walk.
func (c *compiler) compileBody(n *dom.Node, pointer string) *Schema {
	s := &Schema{}
	if payload, ok := n.Annotations.Get("schema"); ok {
		if merged, ok := schemaFromNode(payload); ok {
			s = merged
		} else {
			c.report(diag.KindInvalidSchemaAnnotation, "@schema(…) payload is not an object", n)
		}
	}
	if desc, ok := stringAnnotation(n, "describe"); ok {
		s.Description = desc
	}
	if n.Annotations.Has("default") {
		raw := rawJSON(n)
		s.Default = &raw
	}
	if n.Annotations.Has("example") {
		raw := rawJSON(n)
		s.Examples = append(s.Examples, raw)
	}
	if n.Annotations.Has("anytype") {
		return s
	}

	if len(s.Type) == 0 {
		s.Type = Types{inferType(n)}
	}

	switch {
	case s.HasType(TypeObject) && n.Kind == dom.KindObject:
		c.compileObject(n, pointer, s)
	case s.HasType(TypeArray) && n.Kind == dom.KindArray:
		c.compileArray(n, pointer, s)
	}
	return s
}

// inferType maps a DOM node's own kind to a schema type, preserving
// the integer/number distinction a number literal's own representation
// carries.
func inferType(n *dom.Node) Type {
	switch n.Kind {
	case dom.KindNull:
		return TypeNull
	case dom.KindBool:
		return TypeBoolean
	case dom.KindNumber:
		if n.NumberIsInt {
			return TypeInteger
		}
		return TypeNumber
	case dom.KindString:
		return TypeString
	case dom.KindArray:
		return TypeArray
	case dom.KindObject:
		return TypeObject
	}
	return TypeNull
}

func (c *compiler) compileObject(n *dom.Node, pointer string, s *Schema) {
	for _, key := range n.Object.Keys() {
		child, _ := n.Object.Get(key)
		childPointer := pointer + "/" + key
		pattern, hasPattern := stringAnnotation(child, "pattern")
		optional := child.Annotations.Has("optional")
		required := child.Annotations.Has("required")
		childSchema := c.compileNode(child, childPointer)
		if hasPattern {
			if s.PatternProperties == nil {
				s.PatternProperties = map[string]*Schema{}
			}
			if _, exists := s.PatternProperties[pattern]; exists {
				c.report(diag.KindBadPatternRegex, "duplicate @pattern(\""+pattern+"\")", child)
			}
			s.PatternProperties[pattern] = childSchema
			if required {
				s.Required = append(s.Required, key)
			}
			continue
		}
		if s.Properties == nil {
			s.Properties = map[string]*Schema{}
		}
		s.Properties[key] = childSchema
		if !optional {
			s.Required = append(s.Required, key)
		} else if required {
			// @required and @optional both present: explicit @required wins.
			s.Required = append(s.Required, key)
		}
	}
}

func (c *compiler) compileArray(n *dom.Node, pointer string, s *Schema) {
	if len(n.Items) == 0 || len(s.Items) != 0 {
		return
	}
	if compound, ok := stringAnnotation(n, "compound"); ok {
		s.Type = nil
		schemas := make([]*Schema, len(n.Items))
		for i, item := range n.Items {
			schemas[i] = c.compileNode(item, pointer+"/"+strconv.Itoa(i))
		}
		switch compound {
		case "oneOf":
			s.OneOf = schemas
		case "anyOf":
			s.AnyOf = schemas
		case "allOf":
			s.AllOf = schemas
		default:
			c.report(diag.KindInvalidSchemaAnnotation, "@compound(\""+compound+"\") must be oneOf, anyOf or allOf", n)
		}
		return
	}
	items := make(Schemas, len(n.Items))
	for i, item := range n.Items {
		items[i] = c.compileNode(item, pointer+"/"+strconv.Itoa(i))
	}
	s.Items = items
}

func stringAnnotation(n *dom.Node, name string) (string, bool) {
	v, ok := n.Annotations.Get(name)
	if !ok || v.Kind != dom.KindString {
		return "", false
	}
	return v.String, true
}

// schemaFromNode decodes an `@schema({…})` payload (a plain DOM
// object literal) into a Schema by round-tripping through its plain
// JSON representation, the same path a @schema-to-Schema.
func schemaFromNode(n *dom.Node) (*Schema, bool) {
	if n.Kind != dom.KindObject {
		return nil, false
	}
	data, err := json.Marshal(n.ToPlain())
	if err != nil {
		return nil, false
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func rawJSON(n *dom.Node) json.RawMessage {
	data, err := json.Marshal(n.ToPlain())
	if err != nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(data)
}
