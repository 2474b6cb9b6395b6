// Package document holds the in-memory tabs of the editor. A Buffer is one
// tab's serialized HTML plus the search cursor that belongs to it.
package document

import (
	"sync"

	"github.com/google/uuid"

	"richedit/internal/domain"
	"richedit/internal/search"
)

// Buffer is one open document
type Buffer struct {
	mu         sync.RWMutex
	id         string
	name       string
	path       string
	content    string
	editable   bool
	modified   bool
	fontFamily string
	state      *search.State
}

// NewBuffer creates an editable buffer with a fresh search state
func NewBuffer(name, path, content string) *Buffer {
	return &Buffer{
		id:       uuid.NewString(),
		name:     name,
		path:     path,
		content:  content,
		editable: true,
		state:    search.NewState(),
	}
}

func (b *Buffer) ID() string { return b.id }

func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Content returns the current serialized HTML
func (b *Buffer) Content() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// SetContent replaces the content from outside the navigator. The search
// cursor no longer refers to anything and is reset.
func (b *Buffer) SetContent(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if content == b.content {
		return
	}
	b.content = content
	b.modified = true
	b.state.Reset()
}

// Reload replaces the content with what is on disk, leaving it unmodified
func (b *Buffer) Reload(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = content
	b.modified = false
	b.state.Reset()
}

// State returns the buffer's search cursor
func (b *Buffer) State() *search.State {
	return b.state
}

// Find runs a navigator find against this buffer's content and cursor and
// stores the result, also when the navigator reports an error.
func (b *Buffer) Find(nav *search.Navigator, dir domain.SearchDirection, term string) (search.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	res, err := nav.Find(b.state, dir, term, b.content)
	b.content = res.Content
	return res, err
}

// Replace runs a navigator replace against this buffer's content. The
// cursor is left alone; it goes stale on its own if the match count moves.
func (b *Buffer) Replace(nav *search.Navigator, mode domain.ReplaceMode, term, replacement string) (search.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	res, err := nav.Replace(mode, term, replacement, b.content)
	b.content = res.Content
	if res.Replaced > 0 {
		b.modified = true
	}
	return res, err
}

// Editable reports whether the buffer accepts edits
func (b *Buffer) Editable() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.editable
}

// ToggleEditable flips the editable flag and returns the new value
func (b *Buffer) ToggleEditable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editable = !b.editable
	return b.editable
}

// FontFamily is the document-level font, "" for the terminal default
func (b *Buffer) FontFamily() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fontFamily
}

func (b *Buffer) SetFontFamily(font string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fontFamily = font
	b.modified = true
}

// Modified reports unsaved changes
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// Rename sets the tab label and backing path
func (b *Buffer) Rename(name, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
	b.path = path
}

// MarkSaved records a successful write to path
func (b *Buffer) MarkSaved(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
	b.modified = false
}

// Info returns a snapshot for events and rendering
func (b *Buffer) Info() domain.DocumentInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return domain.DocumentInfo{
		ID:       b.id,
		Name:     b.name,
		Path:     b.path,
		Editable: b.editable,
		Modified: b.modified,
	}
}
