// Package fileops reads and writes documents for the File menu
package fileops

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"richedit/internal/domain"
)

// Extensions that Open recognises and strips from the tab name
var knownExts = []string{".txt", ".html", ".htm"}

// ErrIsDirectory is returned when a directory is given instead of a file
var ErrIsDirectory = errors.New("path is a directory")

// Document is a file read from disk
type Document struct {
	Name    string
	Path    string
	Content string
}

// NameFromPath returns the file name without a known extension
func NameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	for _, known := range knownExts {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

// IsDocument reports whether path has an extension Open recognises
func IsDocument(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range knownExts {
		if strings.EqualFold(ext, known) {
			return true
		}
	}
	return false
}

// Open reads path verbatim; the file's text becomes the document markup
func Open(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, ErrIsDirectory)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Document{
		Name:    NameFromPath(path),
		Path:    abs,
		Content: string(data),
	}, nil
}

// Target returns the path a document called name is saved to in format.
// A name that already carries the extension is kept as is.
func Target(dir, name string, format domain.SaveFormat) string {
	ext := "." + string(format)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return filepath.Join(dir, name)
}

// TextContent returns the concatenated, unescaped text of the markup with
// surrounding whitespace trimmed
func TextContent(content string) string {
	var b strings.Builder
	z := html.NewTokenizer(bytes.NewReader([]byte(content)))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a malformed tail, keep what was read
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

// Save writes content to path in the given format. Text saves drop all
// markup; HTML saves write the markup unchanged.
func Save(path, content string, format domain.SaveFormat) error {
	var data string
	switch format {
	case domain.FormatText:
		data = TextContent(content)
	case domain.FormatHTML:
		data = content
	default:
		return fmt.Errorf("unsupported save format %q", format)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
