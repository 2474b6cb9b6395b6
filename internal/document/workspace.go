package document

import (
	"errors"
	"path/filepath"
	"sync"
)

// ErrUnknownBuffer is returned for an id that is not open
var ErrUnknownBuffer = errors.New("unknown buffer")

// Workspace is the in-memory, ordered set of open tabs. There is always an
// active buffer: closing the last tab opens an empty one.
type Workspace struct {
	mu          sync.RWMutex
	buffers     map[string]*Buffer
	order       []string
	active      string
	defaultName string
}

// NewWorkspace creates a workspace holding one empty buffer
func NewWorkspace(defaultName string) *Workspace {
	if defaultName == "" {
		defaultName = "untitled"
	}
	w := &Workspace{
		buffers:     make(map[string]*Buffer),
		defaultName: defaultName,
	}
	w.add(NewBuffer(defaultName, "", ""))
	return w
}

// DefaultName is the label given to new, unsaved buffers
func (w *Workspace) DefaultName() string {
	return w.defaultName
}

// New adds an empty buffer and makes it active
func (w *Workspace) New() *Buffer {
	return w.Add(NewBuffer(w.defaultName, "", ""))
}

// Open adds a buffer for a file and makes it active
func (w *Workspace) Open(name, path, content string) *Buffer {
	return w.Add(NewBuffer(name, path, content))
}

// Add appends b after the last tab and makes it active
func (w *Workspace) Add(b *Buffer) *Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.add(b)
	return b
}

func (w *Workspace) add(b *Buffer) {
	w.buffers[b.ID()] = b
	w.order = append(w.order, b.ID())
	w.active = b.ID()
}

// Close removes a buffer. If it was active, the tab to its right (or left,
// for the last tab) becomes active.
func (w *Workspace) Close(id string) (*Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.buffers[id]
	if !ok {
		return nil, ErrUnknownBuffer
	}
	pos := w.indexOf(id)
	delete(w.buffers, id)
	w.order = append(w.order[:pos], w.order[pos+1:]...)

	if len(w.order) == 0 {
		w.add(NewBuffer(w.defaultName, "", ""))
		return b, nil
	}
	if w.active == id {
		if pos >= len(w.order) {
			pos = len(w.order) - 1
		}
		w.active = w.order[pos]
	}
	return b, nil
}

// Switch makes id the active buffer
func (w *Workspace) Switch(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.buffers[id]; !ok {
		return ErrUnknownBuffer
	}
	w.active = id
	return nil
}

// Next activates the tab to the right of the active one, wrapping around
func (w *Workspace) Next() *Buffer {
	return w.step(1)
}

// Prev activates the tab to the left of the active one, wrapping around
func (w *Workspace) Prev() *Buffer {
	return w.step(-1)
}

func (w *Workspace) step(delta int) *Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.order)
	pos := (w.indexOf(w.active) + delta + n) % n
	w.active = w.order[pos]
	return w.buffers[w.active]
}

// Active returns the buffer that receives commands
func (w *Workspace) Active() *Buffer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.buffers[w.active]
}

// ActiveIndex returns the tab position of the active buffer
func (w *Workspace) ActiveIndex() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.indexOf(w.active)
}

func (w *Workspace) Get(id string) *Buffer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.buffers[id]
}

// ByPath finds the buffer backed by path
func (w *Workspace) ByPath(path string) *Buffer {
	clean := filepath.Clean(path)
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range w.order {
		b := w.buffers[id]
		if p := b.Path(); p != "" && filepath.Clean(p) == clean {
			return b
		}
	}
	return nil
}

// List returns the buffers in tab order
func (w *Workspace) List() []*Buffer {
	w.mu.RLock()
	defer w.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]*Buffer, 0, len(w.order))
	for _, id := range w.order {
		result = append(result, w.buffers[id])
	}
	return result
}

func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

func (w *Workspace) indexOf(id string) int {
	for i, v := range w.order {
		if v == id {
			return i
		}
	}
	return 0
}
