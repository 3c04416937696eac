package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/internal/diagrender"
	"github.com/jsona-lang/jsona-go/internal/jsonacfg"
	"github.com/jsona-lang/jsona-go/pkg/diag"
	"github.com/jsona-lang/jsona-go/pkg/schema"
)

// LintCommand builds the `lint` subcommand: lint [-schema FILE] FILES|-.
func LintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LintConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("lint").
		WithSynopsis("lint [-schema FILE] FILES|-").
		WithDescription("lint parses, compiles a schema association and validates JSONA documents, printing diagnostics.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runLint(cfg, cc, args)
		})
	cfg.Lint = cmd
	return cmd
}

func runLint(cfg *LintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lint.Parse(cc, args)
	if err != nil {
		cfg.Lint.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	renderer := diagrender.New(cc.Out)

	results := make([]bool, len(args))
	g, _ := errgroup.WithContext(context.Background())
	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			results[i] = lintOne(cfg, cc, renderer, name)
			return nil
		})
	}
	_ = g.Wait()

	for _, ok := range results {
		if !ok {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}

// lintOne checks a single file (or stdin for "-") and reports whether it
// is free of diagnostics, printing either an ok line or the rendered
// diagnostics.
func lintOne(cfg *LintConfig, cc *cli.Context, renderer *diagrender.Renderer, name string) bool {
	var src []byte
	var err error
	if name == "-" {
		src, err = io.ReadAll(cc.In)
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(cc.Out, "%s: %v\n", name, err)
		return false
	}

	sch, diags, ok := resolveSchema(cfg, name)
	if !ok {
		renderer.Render(name, src, toInternalDiags(diags))
		return false
	}

	var lintDiags []jsona.Diagnostic
	if sch != nil {
		lintDiags = jsona.Validate(string(src), sch)
	} else {
		_, parseDiags := jsona.Parse(string(src))
		lintDiags = parseDiags
	}
	if len(lintDiags) == 0 {
		fmt.Fprintf(cc.Out, "%s: ok\n", name)
		return true
	}
	renderer.Render(name, src, toInternalDiags(lintDiags))
	return false
}

// toInternalDiags converts the root package's stable wire Diagnostic
// back into the internal diag.Diagnostic shape diagrender renders,
// so the CLI never has to duplicate the codespan layout logic.
func toInternalDiags(wire []jsona.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(wire))
	for i, d := range wire {
		sev := diag.SeverityError
		if d.Severity == "warning" {
			sev = diag.SeverityWarning
		}
		out[i] = diag.Diagnostic{
			Kind:     diag.Kind(d.Kind),
			Severity: sev,
			Message:  d.Message,
			Pointer:  d.Pointer,
			Range: diag.Range{
				Start: d.Range.Start.Index,
				End:   d.Range.End.Index,
				Line:  d.Range.Start.Line,
				Col:   d.Range.Start.Column,
			},
		}
	}
	return out
}

// resolveSchema finds the schema to validate name's document against.
// Precedence, highest first: the -schema flag, then the rules[] of the
// .jsona config file in the current directory. The winning ref is read
// as a local file path; a URL is not fetched. A document with no
// associated schema is linted for parse errors only (sch == nil,
// ok == true).
func resolveSchema(cfg *LintConfig, name string) (sch *schema.Schema, diags []jsona.Diagnostic, ok bool) {
	ref := cfg.Schema
	if ref == "" {
		fileCfg, _, err := jsonacfg.LoadFile(".jsona")
		if err == nil {
			if r, found := fileCfg.SchemaFor(name); found {
				ref = r
			}
		}
	}
	if ref == "" {
		return nil, nil, true
	}
	schemaSrc, err := os.ReadFile(ref)
	if err != nil {
		return nil, nil, false
	}
	sch, diags = jsona.CompileSchema(string(schemaSrc))
	for _, d := range diags {
		if d.Severity == "error" {
			return nil, diags, false
		}
	}
	return sch, diags, true
}
