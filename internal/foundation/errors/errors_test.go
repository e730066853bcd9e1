package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder sets fields", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid delimiter").
			WithSeverity(SeverityFatal).
			WithContext("file", "settings.yaml").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "invalid delimiter", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		require.Equal(t, "settings.yaml", file)
		require.True(t, err.IsFatal())
	})

	t.Run("wrapped cause is reachable", func(t *testing.T) {
		sentinel := stderrors.New("no source")
		err := WrapError(sentinel, CategoryExtraction, "embed skipped").Warning().Build()

		require.ErrorIs(t, err, sentinel)
		require.Equal(t, SeverityWarning, err.Severity())
		require.Contains(t, err.Error(), "[extraction:warning] embed skipped: no source")
	})

	t.Run("extraction errors carry document and range", func(t *testing.T) {
		sentinel := stderrors.New("no source")
		err := ExtractionError("cannot resolve embed source").
			WithCause(sentinel).
			WithDocument("note.md").
			WithRange(4, 12).
			Build()

		require.ErrorIs(t, err, sentinel)
		require.Equal(t, CategoryExtraction, err.Category())
		require.Equal(t, SeverityWarning, err.Severity())
		doc, ok := err.Context().GetString("document")
		require.True(t, ok)
		require.Equal(t, "note.md", doc)
		start, _ := err.Context().Get("start")
		end, _ := err.Context().Get("end")
		require.Equal(t, 4, start)
		require.Equal(t, 12, end)
	})

	t.Run("AsClassified through fmt wrapping", func(t *testing.T) {
		inner := ConfigError("bad").Build()
		outer := fmt.Errorf("loading: %w", inner)

		got, ok := AsClassified(outer)
		require.True(t, ok)
		require.Equal(t, CategoryConfig, got.Category())
		require.True(t, HasCategory(outer, CategoryConfig))
		require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		base := ExtractionError("x").Build()
		derived := base.WithContext("start", 4)

		_, ok := base.Context().Get("start")
		require.False(t, ok)
		v, ok := derived.Context().Get("start")
		require.True(t, ok)
		require.Equal(t, 4, v)
	})
}

func TestExitCodeFor(t *testing.T) {
	require.Equal(t, 0, ExitCodeFor(nil))
	require.Equal(t, 1, ExitCodeFor(stderrors.New("x")))
	require.Equal(t, 7, ExitCodeFor(ConfigError("x").Build()))
	require.Equal(t, 2, ExitCodeFor(ValidationError("x").Build()))
	require.Equal(t, 11, ExitCodeFor(FileSystemError("x").Build()))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, ConfigError("bad delimiter").WithContext("field", "captions.delimiter").Build(), true)
	require.Contains(t, buf.String(), "bad delimiter")
	require.Contains(t, buf.String(), "field: captions.delimiter")

	buf.Reset()
	PrintError(&buf, stderrors.New("boom"), false)
	require.Equal(t, "Error: boom\n", buf.String())
}
