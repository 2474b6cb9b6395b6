// Package watch reports edits made to open files by other programs
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"richedit/internal/domain"
	"richedit/internal/eventbus"
)

// ErrClosed is returned when the watcher has been closed
var ErrClosed = errors.New("watcher closed")

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 150 * time.Millisecond

// Watcher publishes a FileChangedEvent when a tracked file changes on disk.
// Parent directories are watched rather than the files themselves so that
// files replaced by rename (as most editors save) keep being tracked.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	bus      eventbus.EventBus
	debounce time.Duration

	files   map[string]bool      // tracked files
	dirs    map[string]int       // watched dir -> tracked file count
	pending map[string]*time.Timer
	muted   map[string]time.Time // own writes to ignore until
	closed  bool
	done    chan struct{}
}

// New starts a watcher that publishes on bus
func New(bus eventbus.EventBus, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		bus:      bus,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]*time.Timer),
		muted:    make(map[string]time.Time),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts tracking path
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.files[abs] {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	log.Debug("Watching file", "path", abs)
	return nil
}

// Remove stops tracking path
func (w *Watcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if !w.files[abs] {
		return nil
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// Mute ignores events for path for the given duration. Used around the
// editor's own saves.
func (w *Watcher) Mute(path string, d time.Duration) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.muted[abs] = time.Now().Add(d)
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(filepath.Clean(event.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("File watcher error", "err", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.files[path] {
		return
	}
	if until, ok := w.muted[path]; ok {
		if time.Now().Before(until) {
			return
		}
		delete(w.muted, path)
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			log.Debug("File changed on disk", "path", path)
			w.bus.Publish(domain.FileChangedEvent{Path: path})
		}
	})
}
