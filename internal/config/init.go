package config

import (
	"os"

	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

const initTemplate = `# imgcaptions settings

captions:
  # Label shown before every caption. '#' is replaced by the figure number,
  # write '\#' for a literal '#' and '\\' for a literal backslash.
  label: "Figure #"
  # Extra CSS appended to the generated stylesheet.
  css: ""
  # Caption delimiters inside the image alt text: none, one (used on both
  # sides) or a start/end pair.
  delimiter: ['"']
  # Insert captions as HTML instead of plain text.
  caption_as_html: false

render:
  # Output file for render and watch; empty writes to stdout.
  output: ""
  # reading renders HTML figures, live decorates the Markdown source.
  mode: reading

watch:
  debounce: 300ms

metrics:
  # Address for the Prometheus endpoint, e.g. ":9464". Empty disables it.
  listen: ""
`

// Init writes a commented default settings file to path. An existing file is
// only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, []byte(initTemplate), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
