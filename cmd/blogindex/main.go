package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogindex/cmd/blogindex/commands"
	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("blogindex"),
		kong.Description("Turn a folder of markdown posts into a JSON blog index."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := parser.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		cancel()
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
