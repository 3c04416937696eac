package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/jsona-lang/jsona-go"
	"github.com/jsona-lang/jsona-go/internal/jsonacfg"
	"github.com/jsona-lang/jsona-go/pkg/format"
)

// FormatCommand builds the `format` subcommand: format [-option k=v]...
// [-check] [-force] FILES|-.
func FormatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatConfig{MainConfig: mainCfg, Option: map[string]string{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "option",
		Aliases:     []string{"o"},
		Description: "formatting option key=value, may repeat",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(optionOptTypeFunc(cfg.Option)), "(key=value)"),
	})
	cmd := cli.NewCommand("format").
		WithAliases("fmt").
		WithSynopsis("format [-option k=v]... [-check] [-force] FILES|-").
		WithDescription("format pretty-prints JSONA documents, preserving a user's layout intent where it can.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runFormat(cfg, cc, args)
		})
	cfg.Format = cmd
	return cmd
}

func optionOptTypeFunc(m map[string]string) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		for i := 0; i < len(a); i++ {
			if a[i] == '=' {
				m[a[:i]] = a[i+1:]
				return 0, nil
			}
		}
		return nil, fmt.Errorf("%w: option %q expected key=value", cli.ErrUsage, a)
	}
}

func applyOptionOverrides(opts *format.Options, m map[string]string) error {
	for k, v := range m {
		switch k {
		case "indentString":
			opts.IndentString = v
		case "trailingComma":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("option trailingComma: %w", err)
			}
			opts.TrailingComma = b
		case "trailingNewline":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("option trailingNewline: %w", err)
			}
			opts.TrailingNewline = b
		case "formatKey":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("option formatKey: %w", err)
			}
			opts.FormatKey = b
		default:
			return fmt.Errorf("unknown formatting option %q", k)
		}
	}
	return nil
}

func runFormat(cfg *FormatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Format.Parse(cc, args)
	if err != nil {
		cfg.Format.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	fileCfg, _, err := jsonacfg.LoadFile(".jsona")
	if err != nil {
		return err
	}

	type outcome struct {
		name    string
		skipped bool
		changed bool
		err     error
	}
	results := make([]outcome, len(args))
	g, _ := errgroup.WithContext(context.Background())
	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			if name != "-" && !fileCfg.Includes(name) {
				results[i] = outcome{name: name, skipped: true}
				return nil
			}
			opts := fileCfg.FormattingFor(name)
			opts.Force = opts.Force || cfg.Force
			if err := applyOptionOverrides(&opts, cfg.Option); err != nil {
				results[i] = outcome{name: name, err: fmt.Errorf("%w: %v", cli.ErrUsage, err)}
				return nil
			}
			changed, err := formatOne(cc, name, opts, cfg.Check)
			results[i] = outcome{name: name, changed: changed, err: err}
			return nil
		})
	}
	_ = g.Wait()

	anyChanged := false
	anyErr := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(cc.Out, "%s: %v\n", r.name, r.err)
			anyErr = true
			continue
		}
		if r.changed {
			anyChanged = true
		}
	}
	if anyErr {
		return cli.ExitCodeErr(1)
	}
	if cfg.Check && anyChanged {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// formatOne formats one file (or stdin, for name "-"). In check mode it
// never rewrites anything: it prints a diff of what would change and
// reports whether it would have changed. Outside check mode it rewrites
// the file in place, or writes to stdout when name is "-".
func formatOne(cc *cli.Context, name string, opts format.Options, check bool) (changed bool, err error) {
	var src []byte
	if name == "-" {
		src, err = io.ReadAll(cc.In)
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return false, err
	}

	out, err := jsona.Format(string(src), opts)
	if err != nil {
		return false, err
	}
	if out == string(src) {
		return false, nil
	}

	if check {
		printDiff(cc.Out, name, string(src), out)
		return true, nil
	}
	if name == "-" {
		_, err = io.WriteString(cc.Out, out)
		return true, err
	}
	return true, os.WriteFile(name, []byte(out), 0644)
}

func printDiff(w io.Writer, name, before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name)
	fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
}
