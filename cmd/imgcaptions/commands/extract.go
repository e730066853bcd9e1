package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/imgcaptions/internal/docmodel"
	"git.home.luguber.info/inful/imgcaptions/internal/extract"
	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
	"git.home.luguber.info/inful/imgcaptions/internal/report"
)

// ExtractCmd implements the 'extract' command.
type ExtractCmd struct {
	Paths     []string `arg:"" optional:"" help:"Markdown files or directories (default: current directory)"`
	Format    string   `short:"f" default:"text" enum:"text,json,yaml" help:"Output format (text, json or yaml)"`
	Delimiter []string `short:"d" help:"Caption delimiters, overriding the configuration (repeat for a start/end pair)"`
}

func (c *ExtractCmd) Run(g *Global, root *CLI) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	spec, err := delimiters(settings, c.Delimiter)
	if err != nil {
		return err
	}
	formatter, err := report.NewFormatter(c.Format)
	if err != nil {
		return err
	}
	paths, err := documentPaths(c.Paths)
	if err != nil {
		return err
	}

	x := extract.New(spec, extract.WithRecorder(g.Recorder))
	docs := make([]report.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := docmodel.ParseFile(p, docmodel.Options{})
		if err != nil {
			// One unreadable document does not hide the others.
			slog.Warn("Skipping document", logfields.Path(p), logfields.Error(err))
			continue
		}
		docs = append(docs, report.FromPass(doc, doc.Images(x)))
	}
	return formatter.Format(g.Stdout, docs)
}
