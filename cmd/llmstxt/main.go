package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/llmstxt/cmd/llmstxt/commands"
	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("llmstxt"),
		kong.Description("Generate llms.txt, llms-full.txt and per-page markdown mirrors for a documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(&commands.Global{Stdout: os.Stdout}, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
