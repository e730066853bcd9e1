package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/imgcaptions/internal/config"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Path string `arg:"" optional:"" help:"Configuration file to check (default: --config)"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if v.Path != "" {
		path = v.Path
	}
	s, err := config.Load(path)
	if err != nil {
		return err
	}

	delims := "none"
	if parts := s.Delimiters().Strings(); len(parts) > 0 {
		delims = strings.Join(parts, " ")
	}
	_, err = fmt.Fprintf(g.Stdout, "%s is valid (mode %s, delimiters %s)\n", path, s.Render.Mode, delims)
	return err
}
