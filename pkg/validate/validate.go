// Package validate checks a DOM tree against a compiled schema and
// reports every violation as a diag.Diagnostic, carrying on past the
// first failure the same way every other phase of the pipeline does.
package validate

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/dom"
	"github.com/jsona-lang/jsona-go/pkg/schema"
)

// Validate walks node against root, collecting a diagnostic for every
// schema keyword it fails. $ref is resolved against root's $defs as it
// is encountered; a $ref this validator can't resolve internally (an
// external URL) is reported once as UnresolvedRef and that subtree is
// otherwise left unchecked.
func Validate(node *dom.Node, root *schema.Schema) []diag.Diagnostic {
	v := &validator{root: root}
	v.node(root, "", node)
	return v.diags
}

type validator struct {
	root  *schema.Schema
	diags []diag.Diagnostic
}

func (v *validator) report(kind diag.Kind, msg string, pointer string, n *dom.Node) {
	start, end := n.Range()
	v.diags = append(v.diags, diag.Diagnostic{Kind: kind, Severity: diag.SeverityError, Message: msg, Pointer: pointer, Range: diag.Range{Start: start, End: end}})
}

// node validates n against local, resolving local's $ref first. It
// mirrors every local check into v.diags directly rather than
// collecting into an intermediate slice; oneOf/anyOf need their
// branches' diagnostics in isolation, so they run sub-validators of
// their own instead of sharing this one's v.diags.
func (v *validator) node(local *schema.Schema, pointer string, n *dom.Node) {
	resolved := schema.Resolve(v.root, local)
	if resolved == nil {
		if local != nil && local.Ref != "" {
			v.report(diag.KindUnresolvedRef, "could not resolve $ref "+local.Ref, pointer, n)
		}
		return
	}
	v.checkType(resolved, pointer, n)
	v.checkEnum(resolved, pointer, n)
	v.checkConst(resolved, pointer, n)

	switch n.Kind {
	case dom.KindObject:
		v.checkProperties(resolved, pointer, n)
		v.checkRequired(resolved, pointer, n)
		v.checkPropertyCount(resolved, pointer, n)
	case dom.KindArray:
		v.checkItems(resolved, pointer, n)
		v.checkItemCount(resolved, pointer, n)
	case dom.KindString:
		v.checkStringConstraints(resolved, pointer, n)
	case dom.KindNumber:
		v.checkNumberConstraints(resolved, pointer, n)
	}

	v.checkAllOf(resolved, pointer, n)
	v.checkAnyOf(resolved, pointer, n)
	v.checkOneOf(resolved, pointer, n)
	v.checkNot(resolved, pointer, n)
	v.checkConditional(resolved, pointer, n)
}

func (v *validator) checkType(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.Type) == 0 {
		return
	}
	if !matchesAnyType(s.Type, n) {
		v.report(diag.KindTypeMismatch, "value does not match expected type "+joinTypes(s.Type), pointer, n)
	}
}

func matchesAnyType(types schema.Types, n *dom.Node) bool {
	for _, t := range types {
		if matchesType(t, n) {
			return true
		}
	}
	return false
}

func matchesType(t schema.Type, n *dom.Node) bool {
	switch t {
	case schema.TypeNull:
		return n.Kind == dom.KindNull
	case schema.TypeBoolean:
		return n.Kind == dom.KindBool
	case schema.TypeInteger:
		return n.Kind == dom.KindNumber && n.NumberIsInt
	case schema.TypeNumber:
		return n.Kind == dom.KindNumber
	case schema.TypeString:
		return n.Kind == dom.KindString
	case schema.TypeArray:
		return n.Kind == dom.KindArray
	case schema.TypeObject:
		return n.Kind == dom.KindObject
	}
	return false
}

func joinTypes(types schema.Types) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += string(t)
	}
	return out
}

func (v *validator) checkEnum(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.Enum) == 0 {
		return
	}
	val := n.ToPlain()
	for _, raw := range s.Enum {
		if matchesRaw(val, raw) {
			return
		}
	}
	v.report(diag.KindConstraintFailed, "value is not one of the allowed enum values", pointer, n)
}

func (v *validator) checkConst(s *schema.Schema, pointer string, n *dom.Node) {
	if s.Const == nil {
		return
	}
	if !matchesRaw(n.ToPlain(), *s.Const) {
		v.report(diag.KindConstraintFailed, "value does not equal the required const value", pointer, n)
	}
}

func matchesRaw(val any, raw json.RawMessage) bool {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return false
	}
	return deepEqualJSON(val, decoded)
}

// deepEqualJSON compares two values decoded through encoding/json,
// where every integer decodes as float64, so numeric comparison
// always goes through float64 regardless of which side was an int64.
func deepEqualJSON(a, b any) bool {
	switch av := a.(type) {
	case int64:
		bf, ok := toFloat(b)
		return ok && float64(av) == bf
	case float64:
		bf, ok := toFloat(b)
		return ok && av == bf
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqualJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v1 := range av {
			v2, ok := bv[k]
			if !ok || !deepEqualJSON(v1, v2) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func (v *validator) checkProperties(s *schema.Schema, pointer string, n *dom.Node) {
	for _, key := range n.Object.Keys() {
		child, _ := n.Object.Get(key)
		childPointer := pointer + "/" + key
		matchedNamed := false
		if prop, ok := s.Properties[key]; ok {
			v.node(prop, childPointer, child)
			matchedNamed = true
		}
		matchedPattern := false
		for pat, propSchema := range s.PatternProperties {
			re, err := regexp.Compile(pat)
			if err != nil {
				continue
			}
			if re.MatchString(key) {
				v.node(propSchema, childPointer, child)
				matchedPattern = true
			}
		}
		if matchedNamed || matchedPattern {
			continue
		}
		if s.AdditionalProperties != nil {
			if s.AdditionalProperties.Bool != nil && !*s.AdditionalProperties.Bool {
				v.report(diag.KindUnknownProperty, "additional property \""+key+"\" is not allowed", childPointer, child)
			} else if s.AdditionalProperties.Schema != nil {
				v.node(s.AdditionalProperties.Schema, childPointer, child)
			}
		}
	}
}

func (v *validator) checkRequired(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.Required) == 0 {
		return
	}
	var missing []string
	for _, key := range s.Required {
		if _, ok := n.Object.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		msg := "missing required properties: "
		for i, k := range missing {
			if i > 0 {
				msg += ", "
			}
			msg += k
		}
		v.report(diag.KindMissingRequired, msg, pointer, n)
	}
}

func (v *validator) checkPropertyCount(s *schema.Schema, pointer string, n *dom.Node) {
	count := n.Object.Len()
	if s.MaxProperties != nil && count > *s.MaxProperties {
		v.report(diag.KindConstraintFailed, "object has more than maxProperties", pointer, n)
	}
	if s.MinProperties != nil && count < *s.MinProperties {
		v.report(diag.KindConstraintFailed, "object has fewer than minProperties", pointer, n)
	}
}

func (v *validator) checkItems(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.Items) == 0 {
		return
	}
	if len(s.Items) == 1 {
		for i, item := range n.Items {
			v.node(s.Items[0], pointer+"/"+strconv.Itoa(i), item)
		}
		return
	}
	for i, item := range n.Items {
		if i >= len(s.Items) {
			break
		}
		v.node(s.Items[i], pointer+"/"+strconv.Itoa(i), item)
	}
	if len(n.Items) > len(s.Items) && s.AdditionalItems != nil {
		for i := len(s.Items); i < len(n.Items); i++ {
			if s.AdditionalItems.Bool != nil && !*s.AdditionalItems.Bool {
				v.report(diag.KindConstraintFailed, "additional array items are not allowed", pointer+"/"+strconv.Itoa(i), n.Items[i])
			} else if s.AdditionalItems.Schema != nil {
				v.node(s.AdditionalItems.Schema, pointer+"/"+strconv.Itoa(i), n.Items[i])
			}
		}
	}
}

func (v *validator) checkItemCount(s *schema.Schema, pointer string, n *dom.Node) {
	count := len(n.Items)
	if s.MaxItems != nil && count > *s.MaxItems {
		v.report(diag.KindConstraintFailed, "array has more than maxItems", pointer, n)
	}
	if s.MinItems != nil && count < *s.MinItems {
		v.report(diag.KindConstraintFailed, "array has fewer than minItems", pointer, n)
	}
	if s.UniqueItems {
		seen := map[string]bool{}
		for _, item := range n.Items {
			data, err := json.Marshal(item.ToPlain())
			if err != nil {
				continue
			}
			if seen[string(data)] {
				v.report(diag.KindConstraintFailed, "array items are not unique", pointer, n)
				break
			}
			seen[string(data)] = true
		}
	}
}

func (v *validator) checkStringConstraints(s *schema.Schema, pointer string, n *dom.Node) {
	runes := []rune(n.String)
	if s.MaxLength != nil && len(runes) > *s.MaxLength {
		v.report(diag.KindConstraintFailed, "string is longer than maxLength", pointer, n)
	}
	if s.MinLength != nil && len(runes) < *s.MinLength {
		v.report(diag.KindConstraintFailed, "string is shorter than minLength", pointer, n)
	}
	if s.Pattern != "" {
		if re, err := regexp.Compile(s.Pattern); err == nil {
			if !re.MatchString(n.String) {
				v.report(diag.KindConstraintFailed, "string does not match pattern", pointer, n)
			}
		}
	}
	if s.Format != "" && !validFormat(s.Format, n.String) {
		v.report(diag.KindConstraintFailed, "string does not match format "+s.Format, pointer, n)
	}
}

func (v *validator) checkNumberConstraints(s *schema.Schema, pointer string, n *dom.Node) {
	val := numberValue(n)
	if s.Maximum != nil {
		ok := val <= *s.Maximum
		if s.ExclusiveMaximum != nil {
			ok = val < *s.ExclusiveMaximum
		}
		if !ok {
			v.report(diag.KindConstraintFailed, "number exceeds maximum", pointer, n)
		}
	}
	if s.Minimum != nil {
		ok := val >= *s.Minimum
		if s.ExclusiveMinimum != nil {
			ok = val > *s.ExclusiveMinimum
		}
		if !ok {
			v.report(diag.KindConstraintFailed, "number is below minimum", pointer, n)
		}
	}
	if s.MultipleOf != nil && *s.MultipleOf != 0 {
		if !isMultipleOf(val, *s.MultipleOf) {
			v.report(diag.KindConstraintFailed, "number is not a multiple of multipleOf", pointer, n)
		}
	}
}

func numberValue(n *dom.Node) float64 {
	if n.NumberIsInt {
		return float64(n.IntValue)
	}
	return n.FloatValue
}

func isMultipleOf(value, divisor float64) bool {
	quotient := value / divisor
	return quotient == float64(int64(quotient))
}

func (v *validator) checkAllOf(s *schema.Schema, pointer string, n *dom.Node) {
	for _, sub := range s.AllOf {
		v.node(sub, pointer, n)
	}
}

func (v *validator) checkAnyOf(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.AnyOf) == 0 {
		return
	}
	var collected []diag.Diagnostic
	matched := false
	for _, sub := range s.AnyOf {
		sv := &validator{root: v.root}
		sv.node(sub, pointer, n)
		if len(sv.diags) == 0 {
			matched = true
			break
		}
		collected = append(collected, sv.diags...)
	}
	if !matched {
		v.report(diag.KindOneOfFailed, "value does not match any branch of anyOf", pointer, n)
		v.diags = append(v.diags, collected...)
	}
}

func (v *validator) checkOneOf(s *schema.Schema, pointer string, n *dom.Node) {
	if len(s.OneOf) == 0 {
		return
	}
	matches := 0
	var collected []diag.Diagnostic
	for _, sub := range s.OneOf {
		sv := &validator{root: v.root}
		sv.node(sub, pointer, n)
		if len(sv.diags) == 0 {
			matches++
		} else {
			collected = append(collected, sv.diags...)
		}
	}
	if matches != 1 {
		v.report(diag.KindOneOfFailed, "value must match exactly one branch of oneOf", pointer, n)
		v.diags = append(v.diags, collected...)
	}
}

func (v *validator) checkNot(s *schema.Schema, pointer string, n *dom.Node) {
	if s.Not == nil {
		return
	}
	sv := &validator{root: v.root}
	sv.node(s.Not, pointer, n)
	if len(sv.diags) == 0 {
		v.report(diag.KindConstraintFailed, "value must not match the not schema", pointer, n)
	}
}

func (v *validator) checkConditional(s *schema.Schema, pointer string, n *dom.Node) {
	if s.If == nil {
		return
	}
	sv := &validator{root: v.root}
	sv.node(s.If, pointer, n)
	if len(sv.diags) == 0 {
		if s.Then != nil {
			v.node(s.Then, pointer, n)
		}
	} else if s.Else != nil {
		v.node(s.Else, pointer, n)
	}
}
