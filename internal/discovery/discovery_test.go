package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<p>x</p>"), 0644))
}

func TestScanFindsDocumentsSorted(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.html"))
	touch(t, filepath.Join(root, "a.txt"))
	touch(t, filepath.Join(root, "notes", "c.HTM"))
	touch(t, filepath.Join(root, "image.png"))
	touch(t, filepath.Join(root, ".hidden", "d.html"))
	touch(t, filepath.Join(root, "node_modules", "e.html"))

	found, err := NewScanner(nil, 0).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.html"),
		filepath.Join(root, "notes", "c.HTM"),
	}, found)
}

func TestScanRespectsDepth(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "top.html"))
	touch(t, filepath.Join(root, "one", "mid.html"))
	touch(t, filepath.Join(root, "one", "two", "deep.html"))

	found, err := NewScanner(nil, 1).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "one", "mid.html"),
		filepath.Join(root, "top.html"),
	}, found)
}

func TestExpandKeepsFilesAndExpandsDirectories(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs")
	touch(t, filepath.Join(dir, "a.html"))
	missing := filepath.Join(root, "missing.html")

	out, err := NewScanner(nil, 0).Expand(context.Background(), []string{missing, dir})
	require.NoError(t, err)
	require.Equal(t, []string{missing, filepath.Join(dir, "a.html")}, out)
}

func TestScanStopsWhenCancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.html"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(nil, 0).Scan(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}
