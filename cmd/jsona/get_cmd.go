package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/pkg/dom"
)

// GetCommand builds the `get` subcommand: get [-f FILE] [-A] [-O json|yaml]
// POINTER, grounded on go-tony/cmd/o/get.go's read-document-resolve-pointer
// shape.
func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithSynopsis("get [-f FILE] [-A] [-O json|yaml] POINTER").
		WithDescription("get resolves an RFC 6901 pointer against a JSONA document and prints the value it finds.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runGet(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func runGet(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 1 {
		cfg.Get.Usage(cc, fmt.Errorf("%w: get takes exactly one pointer argument", cli.ErrUsage))
		return cli.ExitCodeErr(2)
	}
	pointer := args[0]

	var src []byte
	if cfg.File == "" {
		src, err = io.ReadAll(cc.In)
	} else {
		src, err = os.ReadFile(cfg.File)
	}
	if err != nil {
		return err
	}

	root, diags := jsona.Parse(string(src))
	for _, d := range diags {
		if d.Severity == "error" {
			return fmt.Errorf("%s: %s", d.Kind, d.Message)
		}
	}

	found, ok := dom.Get(root, pointer)
	if !ok {
		return cli.ExitCodeErr(1)
	}

	var value any
	if cfg.AST {
		ast, _ := jsona.ParseAST(string(src))
		sub, ok := astAt(ast, pointer)
		if !ok {
			return cli.ExitCodeErr(1)
		}
		value = sub
	} else {
		value = found.ToPlain()
	}

	return writeGetResult(cc.Out, cfg.Output, value)
}

// astAt re-resolves pointer against the AST interchange tree so -A can
// report a node's range and annotations, not just its plain value.
func astAt(root *jsona.Node, pointer string) (*jsona.Node, bool) {
	if pointer == "" || pointer == "/" {
		return root, true
	}
	segments := splitPointer(pointer)
	cur := root
	for _, seg := range segments {
		switch cur.Type {
		case "array":
			idx, err := pointerIndex(seg)
			if err != nil || idx < 0 || idx >= len(cur.Items) {
				return nil, false
			}
			cur = &cur.Items[idx]
		case "object":
			next, ok := findProperty(cur.Properties, seg)
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, true
}

func findProperty(props []jsona.Property, name string) (*jsona.Node, bool) {
	for i := range props {
		if props[i].Type.Name == name {
			return &props[i].Value, true
		}
	}
	return nil, false
}

func pointerIndex(seg string) (int, error) {
	var n int
	_, err := fmt.Sscanf(seg, "%d", &n)
	return n, err
}

func splitPointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	var segs []string
	cur := ""
	for i := 1; i < len(pointer); i++ {
		c := pointer[i]
		if c == '/' {
			segs = append(segs, unescapePointerSegment(cur))
			cur = ""
			continue
		}
		cur += string(c)
	}
	segs = append(segs, unescapePointerSegment(cur))
	return segs
}

func unescapePointerSegment(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+1 < len(s) {
			switch s[i+1] {
			case '0':
				out = append(out, '~')
				i++
				continue
			case '1':
				out = append(out, '/')
				i++
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}

func writeGetResult(w io.Writer, format string, value any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("%w: unknown output format %q", cli.ErrUsage, format)
	}
}
