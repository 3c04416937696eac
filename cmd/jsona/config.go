package main

import "github.com/scott-cotton/cli"

// MainConfig holds state shared by every subcommand: the root
// *cli.Command itself.
type MainConfig struct {
	Main *cli.Command
}

// FormatConfig backs the `format` subcommand.
type FormatConfig struct {
	*MainConfig
	Format *cli.Command

	Check bool `cli:"name=check desc='report (exit 1) instead of rewriting; prints a unified diff of what would change'"`
	Force bool `cli:"name=force desc='format even when the source has a syntax error'"`

	// Option accumulates repeated "-option k=v" flags into a map.
	Option map[string]string
}

// LintConfig backs the `lint` subcommand.
type LintConfig struct {
	*MainConfig
	Lint *cli.Command

	Schema string `cli:"name=schema desc='schema file path to validate against; URLs are not fetched'"`
}

// GetConfig backs the `get` subcommand.
type GetConfig struct {
	*MainConfig
	Get *cli.Command

	File   string `cli:"name=f desc='read the document from file instead of stdin'"`
	AST    bool   `cli:"name=A desc='print the full AST interchange form instead of the plain pointed-to value'"`
	Output string `cli:"name=O desc='output format: json or yaml' default=json"`
}

// LSPConfig backs the `lsp` subcommand.
type LSPConfig struct {
	*MainConfig
	LSP *cli.Command

	Address string `cli:"name=address desc='tcp listen address (with the tcp transport)'"`
	Gops    bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
}
