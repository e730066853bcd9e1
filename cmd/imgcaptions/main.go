package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/imgcaptions/cmd/imgcaptions/commands"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
	"git.home.luguber.info/inful/imgcaptions/internal/version"
)

func main() {
	var cli commands.CLI
	global := commands.NewGlobal(os.Stdout)

	ctx := kong.Parse(&cli,
		kong.Name("imgcaptions"),
		kong.Description("Turn image alt text into figure captions."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := ctx.Run(global, &cli); err != nil {
		errors.PrintError(os.Stderr, err, cli.Verbose)
		os.Exit(errors.ExitCodeFor(err))
	}
}
