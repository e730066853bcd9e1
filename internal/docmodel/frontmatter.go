package docmodel

import (
	"bytes"
	stderrors "errors"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = stderrors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter returns the byte offset at which the Markdown body starts.
// Documents without a leading `---` line have a body offset of zero.
func splitFrontmatter(content []byte) (bodyStart int, had bool, err error) {
	nl := detectNewline(content)
	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return 0, false, nil
	}

	fmStart := len(delim)
	if bytes.HasPrefix(content[fmStart:], delim) {
		return fmStart + len(delim), true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[fmStart:], closeSeq)
	if idx < 0 {
		return 0, false, ErrMissingClosingDelimiter
	}
	return fmStart + idx + len(closeSeq), true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
