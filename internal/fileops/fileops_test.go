package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"richedit/internal/domain"
)

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "notes", NameFromPath("/a/b/notes.txt"))
	assert.Equal(t, "page", NameFromPath("page.HTML"))
	assert.Equal(t, "archive.tar.gz", NameFromPath("archive.tar.gz"))
	assert.Equal(t, "README", NameFromPath("README"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.txt")
	require.NoError(t, os.WriteFile(path, []byte("<b>once</b> upon"), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "story", doc.Name)
	assert.Equal(t, "<b>once</b> upon", doc.Content)
	assert.True(t, filepath.IsAbs(doc.Path))
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(dir)
	require.ErrorIs(t, err, ErrIsDirectory)
}

func TestTextContent(t *testing.T) {
	got := TextContent("  <h1>Title</h1>\n<p>fish &amp; <i>chips</i></p>  ")
	assert.Equal(t, "Title\nfish & chips", got)
	assert.Equal(t, "", TextContent("<br/>"))
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	content := "<p> hi <b>there</b> </p>"

	txt := Target(dir, "doc", domain.FormatText)
	require.Equal(t, filepath.Join(dir, "doc.txt"), txt)
	require.NoError(t, Save(txt, content, domain.FormatText))
	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(data))

	htmlPath := Target(filepath.Join(dir, "sub"), "doc.html", domain.FormatHTML)
	require.Equal(t, filepath.Join(dir, "sub", "doc.html"), htmlPath)
	require.NoError(t, Save(htmlPath, content, domain.FormatHTML))
	data, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.Error(t, Save(filepath.Join(dir, "x.pdf"), content, domain.SaveFormat("pdf")))
}
