package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/imgcaptions/internal/events"
	"git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

func TestIsDocumentAndShouldIgnore(t *testing.T) {
	require.True(t, IsDocument("a/b.md"))
	require.True(t, IsDocument("B.MARKDOWN"))
	require.False(t, IsDocument("a.png"))

	for _, p := range []string{".hidden.md", "a.md~", "a.md.swp", "#a.md#", "x/.git", "Thumbs.db"} {
		require.True(t, ShouldIgnore(p), p)
	}
	require.False(t, ShouldIgnore("notes/a.md"))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o750))
	for _, p := range []string{"b.md", "a.md", "sub/c.markdown", "img.png", ".obsidian/x.md", "sub/.d.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, p), []byte("x"), 0o600))
	}

	docs, err := Scan(root)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "sub", "c.markdown"),
	}, docs)

	_, err = Scan(filepath.Join(root, "missing"))
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestNew_RejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := New(path, events.NewBus(), time.Millisecond, nil)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestNew_ResolvesRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o750))
	t.Chdir(dir)

	w, err := New("docs", events.NewBus(), time.Millisecond, nil)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(w.Root()))
	require.Equal(t, "docs", filepath.Base(w.Root()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = w.Run(ctx)
}

func TestWatcher_PublishesDebouncedChanges(t *testing.T) {
	root := t.TempDir()
	bus := events.NewBus()
	defer bus.Close()

	w, err := New(root, bus, 30*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		seen []events.DocumentChanged
	)
	done := Consume(ctx, bus, func(_ context.Context, evt events.DocumentChanged) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, evt)
		return nil
	}, nil)

	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	// Give the watcher loop a moment to start reading events.
	time.Sleep(20 * time.Millisecond)

	doc := filepath.Join(root, "note.md")
	for i := range 5 {
		require.NoError(t, os.WriteFile(doc, []byte{byte('a' + i)}, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 3*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	require.Len(t, seen, 1, "burst is coalesced into one event")
	require.Equal(t, doc, seen[0].Path)
	require.False(t, seen[0].Removed)
	mu.Unlock()

	require.NoError(t, os.Remove(doc))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2 && seen[1].Removed
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-runDone)
	<-done
}

func TestWatcher_PicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	bus := events.NewBus()
	defer bus.Close()

	w, err := New(root, bus, 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := events.AwaitOnce(ctx, bus, func(e events.DocumentChanged) bool {
		return filepath.Base(e.Path) == "deep.md"
	})
	go func() { _ = w.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o750))
	deep := filepath.Join(sub, "deep.md")
	require.Eventually(t, func() bool {
		// Rewrite until the new directory is watched.
		_ = os.WriteFile(deep, []byte("x"), 0o600)
		select {
		case evt, ok := <-got:
			return ok && evt.Path == deep
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)
}

func TestConsume_ReportsHandlerErrors(t *testing.T) {
	bus := events.NewBus()

	errCh := make(chan error, 1)
	done := Consume(context.Background(), bus, func(context.Context, events.DocumentChanged) error {
		return errors.RenderError("boom").Build()
	}, func(_ events.DocumentChanged, err error) { errCh <- err })

	require.NoError(t, bus.Publish(context.Background(), events.DocumentChanged{Path: "a.md"}))
	require.True(t, errors.HasCategory(<-errCh, errors.CategoryRender))

	bus.Close()
	<-done
}
