package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/matttelliott/bookmarker-ai/cmd/bookmarker/commands"
	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal()

	parser := kong.Parse(cli,
		kong.Name("bookmarker"),
		kong.Description("Bookmarker API server, health poller and schema tools"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Get().String()},
		kong.Bind(global),
	)

	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
