// Package jsonacfg reads the .jsona workspace configuration file:
// include/exclude/formatting/rules, loaded with this module's own
// Parse/DOM layer rather than a separate config-file parser.
package jsonacfg

import (
	"fmt"
	"os"

	"github.com/jsona-lang/jsona-go/internal/jsonaglob"
	"github.com/jsona-lang/jsona-go/pkg/cst"
	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/dom"
	"github.com/jsona-lang/jsona-go/pkg/format"
)

// Config is a parsed .jsona configuration file.
type Config struct {
	// Include lists glob patterns of files to include. nil means the
	// key was absent (include everything); a non-nil empty slice means
	// the key was present but empty (include nothing).
	Include []string
	// Exclude lists glob patterns that win over Include.
	Exclude    []string
	Formatting format.Options
	Rules      []Rule
}

// Rule is one entry of the top-level rules list. A rule whose
// Include/Exclude are both empty applies to every file not excluded
// by the config's own top-level Exclude.
type Rule struct {
	Name       string
	Include    []string
	Exclude    []string
	Path       string
	URL        string
	Formatting *format.Options
}

// Default returns a Config equivalent to no .jsona file at all:
// include everything, no rules, default formatting.
func Default() *Config {
	return &Config{Formatting: format.Default()}
}

// LoadFile reads and parses path. A missing file is not an error: it
// returns Default(), the same "absent config means defaults" behavior
// the workspace-root .jsona lookup needs.
func LoadFile(path string) (*Config, []diag.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil, nil
		}
		return nil, nil, fmt.Errorf("jsonacfg: reading %s: %w", path, err)
	}
	cfg, diags := Parse(src)
	return cfg, diags, nil
}

// Parse reads a .jsona configuration document's bytes into a Config.
// Diagnostics from lexing, parsing and DOM-build are returned
// alongside; a malformed document still yields a best-effort Config
// (whatever top-level keys did decode), never nil.
func Parse(src []byte) (*Config, []diag.Diagnostic) {
	root, parseDiags := cst.Parse(src)
	node, domDiags := dom.Build(root, src)
	diags := append(append([]diag.Diagnostic{}, parseDiags...), domDiags...)

	cfg := Default()
	top, ok := node.ToPlain().(map[string]any)
	if !ok {
		return cfg, diags
	}
	cfg.Include = stringSlice(top["include"])
	cfg.Exclude = stringSlice(top["exclude"])
	if f, ok := top["formatting"].(map[string]any); ok {
		applyFormatting(&cfg.Formatting, f)
	}
	if rs, ok := top["rules"].([]any); ok {
		for _, r := range rs {
			rm, ok := r.(map[string]any)
			if !ok {
				continue
			}
			rule := Rule{
				Name:    str(rm["name"]),
				Include: stringSlice(rm["include"]),
				Exclude: stringSlice(rm["exclude"]),
				Path:    str(rm["path"]),
				URL:     str(rm["url"]),
			}
			if fm, ok := rm["formatting"].(map[string]any); ok {
				f := cfg.Formatting
				applyFormatting(&f, fm)
				rule.Formatting = &f
			}
			cfg.Rules = append(cfg.Rules, rule)
		}
	}
	return cfg, diags
}

// Includes reports whether path should be processed at all, applying
// the top-level include/exclude precedence: exclude always wins,
// absent include means include everything, present-but-empty include
// means include nothing.
func (c *Config) Includes(path string) bool {
	if len(c.Exclude) > 0 && jsonaglob.MatchAny(c.Exclude, path) {
		return false
	}
	if c.Include == nil {
		return true
	}
	return jsonaglob.MatchAny(c.Include, path)
}

// matches reports whether r applies to path: an empty Include list
// means "everything not excluded", matching a rule meant only to
// exclude or only to set a schema/formatting override unconditionally.
func (r Rule) matches(path string) bool {
	if len(r.Exclude) > 0 && jsonaglob.MatchAny(r.Exclude, path) {
		return false
	}
	if len(r.Include) == 0 {
		return true
	}
	return jsonaglob.MatchAny(r.Include, path)
}

// FormattingFor resolves the formatting options that apply to path:
// the config's own top-level Formatting, overridden by every matching
// rule's Formatting in order, last match wins.
func (c *Config) FormattingFor(path string) format.Options {
	f := c.Formatting
	for _, r := range c.Rules {
		if r.Formatting != nil && r.matches(path) {
			f = *r.Formatting
		}
	}
	return f
}

// SchemaFor resolves the schema association that applies to path from
// the config's rules[] alone (one layer of a five-layer schema
// association precedence; the others are resolved by the caller — CLI
// flag, @jsonaschema, extension, catalog). ref is a URL
// or a filesystem path, whichever the winning rule set; ok is false
// when no rule names a schema for path.
func (c *Config) SchemaFor(path string) (ref string, ok bool) {
	for _, r := range c.Rules {
		if !r.matches(path) {
			continue
		}
		if r.URL != "" {
			ref, ok = r.URL, true
		}
		if r.Path != "" {
			ref, ok = r.Path, true
		}
	}
	return ref, ok
}

func applyFormatting(f *format.Options, m map[string]any) {
	if v, ok := m["indentString"].(string); ok {
		f.IndentString = v
	}
	if v, ok := m["trailingComma"].(bool); ok {
		f.TrailingComma = v
	}
	if v, ok := m["trailingNewline"].(bool); ok {
		f.TrailingNewline = v
	}
	if v, ok := m["formatKey"].(bool); ok {
		f.FormatKey = v
	}
	if v, ok := m["force"].(bool); ok {
		f.Force = v
	}
}

func stringSlice(v any) []string {
	if v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
