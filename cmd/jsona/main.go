package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// MainCommand builds the jsona CLI's command tree: format, lint, get
// and lsp under a single root.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	return cli.NewCommandAt(&cfg.Main, "jsona").
		WithSynopsis("jsona <command> [opts] [args]").
		WithDescription("jsona formats, lints and queries JSONA documents.").
		WithRun(func(cc *cli.Context, args []string) error {
			return dispatch(cfg, cc, args)
		}).
		WithSubs(
			FormatCommand(cfg),
			LintCommand(cfg),
			GetCommand(cfg),
			LSPCommand(cfg),
		)
}

func dispatch(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) == 0 {
		cfg.Main.Usage(cc, cli.ErrNoCommandProvided)
		return cli.ExitCodeErr(2)
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		cfg.Main.Usage(cc, cli.ErrNoSuchCommand)
		return cli.ExitCodeErr(2)
	}
	return sub.Run(cc, args[1:])
}
