package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"richedit/internal/eventbus"
)

func newWatcher(t *testing.T) (*Watcher, chan string) {
	t.Helper()
	bus := eventbus.New()
	t.Cleanup(bus.Close)

	changed := make(chan string, 16)
	bus.Subscribe(eventbus.EventFileChanged, func(e eventbus.DomainEvent) {
		changed <- e.(eventbus.FileChangedEvent).Path
	})

	w, err := New(bus, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, changed
}

func TestReportsWritesToTrackedFile(t *testing.T) {
	w, changed := newWatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0644))
	require.NoError(t, w.Add(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("two"), 0644))

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		require.Equal(t, abs, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-changed:
		t.Fatalf("unexpected extra event for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMutedWritesAreIgnored(t *testing.T) {
	w, changed := newWatcher(t)
	path := filepath.Join(t.TempDir(), "a.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>x</p>"), 0644))
	require.NoError(t, w.Add(path))

	w.Mute(path, time.Second)
	require.NoError(t, os.WriteFile(path, []byte("<p>y</p>"), 0644))

	select {
	case got := <-changed:
		t.Fatalf("muted write reported for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRemoveAndClose(t *testing.T) {
	w, changed := newWatcher(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, w.Add(path))
	require.NoError(t, w.Add(path))
	require.NoError(t, w.Remove(path))
	require.NoError(t, os.WriteFile(path, []byte("y"), 0644))

	select {
	case got := <-changed:
		t.Fatalf("removed file reported for %s", got)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.ErrorIs(t, w.Add(path), ErrClosed)
	require.NoError(t, w.Close())
}
