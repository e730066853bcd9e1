package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/imgcaptions/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there under the default name.
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, config.DefaultPath)
	}

	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", path)
	return config.Init(path, i.Force)
}
