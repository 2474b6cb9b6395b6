package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"richedit/internal/domain"
	"richedit/internal/eventbus"
	"richedit/internal/fileops"
)

// ownWriteWindow mutes the watcher for the editor's own saves
const ownWriteWindow = time.Second

// ErrNoPath is returned when open or reload is triggered without a file
var ErrNoPath = errors.New("no file given")

// NewDocumentCommand clears the active tab into an untitled document
type NewDocumentCommand struct {
	ctx *CommandContext
}

// NewNewDocumentCommand creates a new document command
func NewNewDocumentCommand(ctx *CommandContext) *NewDocumentCommand {
	return &NewDocumentCommand{ctx: ctx}
}

// Execute resets the active buffer
func (c *NewDocumentCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	c.ctx.unwatch(b.Path())
	b.Reload("")
	b.Rename(c.ctx.Workspace.DefaultName(), "")
	c.ctx.publish(eventbus.ContentChangedEvent{ID: b.ID(), Reason: "new"})
	return Outcome{Notice: "New document"}, nil
}

// OpenCommand loads a file. An already open file is switched to; an empty
// untitled tab is reused; otherwise a new tab is added.
type OpenCommand struct {
	ctx  *CommandContext
	path string
}

// NewOpenCommand creates a new open command
func NewOpenCommand(ctx *CommandContext, path string) *OpenCommand {
	return &OpenCommand{ctx: ctx, path: strings.TrimSpace(path)}
}

// Execute opens the file
func (c *OpenCommand) Execute() (Outcome, error) {
	if c.path == "" {
		return Outcome{Notice: "Enter a file to open"}, ErrNoPath
	}
	doc, err := fileops.Open(c.path)
	if err != nil {
		return Outcome{Notice: err.Error()}, err
	}

	ws := c.ctx.Workspace
	from := ws.Active()
	if existing := ws.ByPath(doc.Path); existing != nil {
		if err := ws.Switch(existing.ID()); err != nil {
			return Outcome{Notice: err.Error()}, err
		}
		c.ctx.publish(eventbus.TabSwitchedEvent{FromID: from.ID(), ToID: existing.ID()})
		return Outcome{Notice: "Already open: " + existing.Name()}, nil
	}

	b := from
	if from.Path() == "" && from.Content() == "" && !from.Modified() {
		b.Reload(doc.Content)
		b.Rename(doc.Name, doc.Path)
	} else {
		b = ws.Open(doc.Name, doc.Path, doc.Content)
		c.ctx.publish(eventbus.TabSwitchedEvent{FromID: from.ID(), ToID: b.ID()})
	}
	c.ctx.watch(doc.Path)

	log.Debug("Opened document", "path", doc.Path, "id", b.ID())
	c.ctx.publish(eventbus.DocumentOpenedEvent{Document: b.Info()})
	return Outcome{Notice: "Opened " + doc.Path}, nil
}

// SaveCommand writes the active buffer as text or HTML
type SaveCommand struct {
	ctx    *CommandContext
	format domain.SaveFormat
	name   string
	path   string
}

// NewSaveCommand creates a new save command. path wins over name; with
// neither, the tab name is used.
func NewSaveCommand(ctx *CommandContext, format domain.SaveFormat, name, path string) *SaveCommand {
	return &SaveCommand{
		ctx:    ctx,
		format: format,
		name:   strings.TrimSpace(name),
		path:   strings.TrimSpace(path),
	}
}

// Execute saves the document with the highlight stripped
func (c *SaveCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	target := c.target(b.Name(), b.Path())
	content := c.ctx.Navigator.Strip(b.Content())

	if c.ctx.Watcher != nil {
		c.ctx.Watcher.Mute(target, ownWriteWindow)
	}
	if err := fileops.Save(target, content, c.format); err != nil {
		c.ctx.publish(eventbus.ErrorEvent{Message: "Save failed", Err: err})
		return Outcome{Notice: fmt.Sprintf("Save failed: %v", err)}, err
	}

	// Only an HTML save keeps everything; a text export leaves the tab
	// modified unless it overwrote the tab's own file.
	if c.format == domain.FormatHTML || target == b.Path() {
		if b.Path() != target {
			c.ctx.unwatch(b.Path())
			b.Rename(fileops.NameFromPath(target), target)
			c.ctx.watch(target)
		}
		b.MarkSaved(target)
	}

	c.ctx.publish(eventbus.DocumentSavedEvent{ID: b.ID(), Path: target, Format: c.format})
	return Outcome{Notice: "Saved " + target}, nil
}

func (c *SaveCommand) target(tabName, tabPath string) string {
	if c.path != "" {
		if abs, err := filepath.Abs(c.path); err == nil {
			return abs
		}
		return c.path
	}
	name := c.name
	if name == "" {
		name = tabName
	}
	dir := c.ctx.SaveDir
	if tabPath != "" {
		dir = filepath.Dir(tabPath)
	}
	if dir == "" {
		dir = "."
	}
	target := fileops.Target(dir, name, c.format)
	if abs, err := filepath.Abs(target); err == nil {
		return abs
	}
	return target
}

// ReloadCommand rereads a tab's file after it changed on disk
type ReloadCommand struct {
	ctx  *CommandContext
	path string
}

// NewReloadCommand creates a new reload command
func NewReloadCommand(ctx *CommandContext, path string) *ReloadCommand {
	return &ReloadCommand{ctx: ctx, path: path}
}

// Execute replaces the buffer content with the file's. Unsaved edits win:
// a modified tab is left alone.
func (c *ReloadCommand) Execute() (Outcome, error) {
	if c.path == "" {
		return Outcome{}, ErrNoPath
	}
	b := c.ctx.Workspace.ByPath(c.path)
	if b == nil {
		return Outcome{}, nil
	}
	if b.Modified() {
		return Outcome{Notice: b.Name() + " changed on disk, keeping unsaved edits"}, nil
	}
	doc, err := fileops.Open(c.path)
	if err != nil {
		return Outcome{Notice: err.Error()}, err
	}
	b.Reload(doc.Content)
	c.ctx.publish(eventbus.ContentChangedEvent{ID: b.ID(), Reason: "reload"})
	return Outcome{Notice: "Reloaded " + b.Name()}, nil
}
