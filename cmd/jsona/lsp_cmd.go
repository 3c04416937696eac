package main

import (
	"fmt"
	"os/exec"

	"github.com/scott-cotton/cli"
)

// LSPCommand builds the `lsp` subcommand: lsp stdio|tcp [-address HOST:PORT]
// [-gops], a thin wrapper launching the jsona-lsp server binary with the
// chosen transport.
func LSPCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LSPConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("lsp").
		WithSynopsis("lsp stdio|tcp [-address HOST:PORT] [-gops]").
		WithDescription("lsp starts the JSONA language server, speaking stdio or tcp.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runLSP(cfg, cc, args)
		})
	cfg.LSP = cmd
	return cmd
}

func runLSP(cfg *LSPConfig, cc *cli.Context, args []string) error {
	args, err := cfg.LSP.Parse(cc, args)
	if err != nil {
		cfg.LSP.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	transport := "stdio"
	if len(args) > 0 {
		transport = args[0]
	}
	switch transport {
	case "stdio", "tcp":
	default:
		return fmt.Errorf("%w: unknown lsp transport %q", cli.ErrUsage, transport)
	}

	lspArgs := []string{"-transport", transport}
	if cfg.Address != "" {
		lspArgs = append(lspArgs, "-address", cfg.Address)
	}
	if cfg.Gops {
		lspArgs = append(lspArgs, "-gops")
	}

	bin, err := exec.LookPath("jsona-lsp")
	if err != nil {
		return fmt.Errorf("jsona-lsp not found on PATH: %w", err)
	}
	child := exec.Command(bin, lspArgs...)
	child.Stdin = cc.In
	child.Stdout = cc.Out
	return child.Run()
}
