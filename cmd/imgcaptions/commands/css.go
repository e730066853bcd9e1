package commands

import (
	"io"

	"git.home.luguber.info/inful/imgcaptions/internal/style"
)

// CSSCmd implements the 'css' command.
type CSSCmd struct {
	Label *string `help:"Label template overriding the configuration ('#' is the figure number)"`
}

func (c *CSSCmd) Run(g *Global, root *CLI) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	label := settings.Captions.Label
	if c.Label != nil {
		label = *c.Label
	}
	_, err = io.WriteString(g.Stdout, style.Stylesheet(label, settings.Captions.CSS))
	return err
}
