package errors

import (
	"fmt"
	"io"
)

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryFileSystem:
		return 11
	case CategoryExtraction, CategoryRender:
		return 3
	case CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// PrintError writes a user-facing rendering of err to w.
//
// Verbose output includes the context map; otherwise only the message chain.
func PrintError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}
	classified, ok := AsClassified(err)
	if !ok {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", classified)
	if !verbose {
		return
	}
	for k, v := range classified.Context() {
		_, _ = fmt.Fprintf(w, "  %s: %v\n", k, v)
	}
}
