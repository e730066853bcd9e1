package commands

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/render"
	"git.home.luguber.info/inful/imgcaptions/internal/style"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Path          string   `arg:"" help:"Markdown document to render"`
	Mode          string   `short:"m" help:"View to render (reading or live); defaults to the configured mode"`
	Output        string   `short:"o" help:"Output file (default: configured output, else stdout)"`
	Delimiter     []string `short:"d" help:"Caption delimiters, overriding the configuration"`
	CaptionAsHTML bool     `name:"caption-as-html" help:"Insert captions as HTML"`
	Standalone    bool     `help:"Wrap reading-view output in a full HTML page with the caption stylesheet"`
}

func (c *RenderCmd) Run(g *Global, root *CLI) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	spec, err := delimiters(settings, c.Delimiter)
	if err != nil {
		return err
	}
	modeName := settings.Render.Mode
	if c.Mode != "" {
		modeName = c.Mode
	}
	mode, err := render.ParseMode(modeName)
	if err != nil {
		return err
	}

	doc, err := docmodel.ParseFile(c.Path, docmodel.Options{})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out, err := newRenderer(g, settings, spec, c.CaptionAsHTML).Render(ctx, doc, mode)
	if err != nil {
		return err
	}
	if c.Standalone && mode == render.ModeReading {
		out = standalone(doc.Name(), style.Stylesheet(settings.Captions.Label, settings.Captions.CSS), out)
	}

	output := settings.Render.Output
	if c.Output != "" {
		output = c.Output
	}
	return writeOutput(g.Stdout, output, out)
}

func standalone(title, css string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(css)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}
