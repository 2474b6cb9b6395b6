// Package commands maps toolbar triggers onto document operations
package commands

import (
	"time"

	"github.com/atotto/clipboard"

	"richedit/internal/document"
	"richedit/internal/eventbus"
	"richedit/internal/format"
	"richedit/internal/search"
)

// Command represents an executable action
type Command interface {
	Execute() (Outcome, error)
}

// FileWatcher is the part of the file watcher commands need
type FileWatcher interface {
	Add(path string) error
	Remove(path string) error
	Mute(path string, d time.Duration)
}

// CommandContext provides context for command execution
type CommandContext struct {
	Workspace *document.Workspace
	Navigator *search.Navigator
	Formatter *format.Formatter
	Bus       eventbus.EventBus
	Watcher   FileWatcher // optional
	SaveDir   string      // directory for saves of never-saved tabs
	Clipboard func(string) error
}

// NewCommandContext wires a formatter to the navigator's highlight markers
func NewCommandContext(ws *document.Workspace, nav *search.Navigator, bus eventbus.EventBus) *CommandContext {
	return &CommandContext{
		Workspace: ws,
		Navigator: nav,
		Formatter: format.New(nav.HighlightMarkers()),
		Bus:       bus,
		Clipboard: clipboard.WriteAll,
	}
}

func (c *CommandContext) publish(event eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}

func (c *CommandContext) watch(path string) {
	if c.Watcher != nil && path != "" {
		_ = c.Watcher.Add(path)
	}
}

func (c *CommandContext) unwatch(path string) {
	if c.Watcher != nil && path != "" {
		_ = c.Watcher.Remove(path)
	}
}
