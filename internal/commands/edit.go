package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"richedit/internal/eventbus"
	"richedit/internal/fileops"
	"richedit/internal/format"
)

// ErrReadOnly is returned for edits to a buffer whose code view is off
var ErrReadOnly = errors.New("document is read-only")

// ToggleCodeCommand flips the active buffer between editable and read-only
type ToggleCodeCommand struct {
	ctx *CommandContext
}

// NewToggleCodeCommand creates a new toggle command
func NewToggleCodeCommand(ctx *CommandContext) *ToggleCodeCommand {
	return &ToggleCodeCommand{ctx: ctx}
}

// Execute toggles the editable flag
func (c *ToggleCodeCommand) Execute() (Outcome, error) {
	if c.ctx.Workspace.Active().ToggleEditable() {
		return Outcome{Notice: "Editing enabled"}, nil
	}
	return Outcome{Notice: "Editing disabled"}, nil
}

// SetSourceCommand replaces the active buffer's markup with edited source
type SetSourceCommand struct {
	ctx    *CommandContext
	source string
}

// NewSetSourceCommand creates a new source edit command
func NewSetSourceCommand(ctx *CommandContext, source string) *SetSourceCommand {
	return &SetSourceCommand{ctx: ctx, source: source}
}

// Execute stores the source; the search cursor resets
func (c *SetSourceCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	if !b.Editable() {
		return Outcome{Notice: "Document is read-only"}, ErrReadOnly
	}
	b.SetContent(c.source)
	c.ctx.publish(eventbus.ContentChangedEvent{ID: b.ID(), Reason: "source"})
	return Outcome{Notice: "Source updated"}, nil
}

// FormatCommand applies a formatting command to the highlighted text
type FormatCommand struct {
	ctx     *CommandContext
	command string
	value   string
}

// NewFormatCommand creates a new format command
func NewFormatCommand(ctx *CommandContext, command, value string) *FormatCommand {
	return &FormatCommand{ctx: ctx, command: command, value: value}
}

// Execute formats the selection. fontName without a selection sets the
// document font instead.
func (c *FormatCommand) Execute() (Outcome, error) {
	cmd, err := format.Parse(c.command)
	if err != nil {
		return Outcome{Notice: err.Error()}, err
	}
	b := c.ctx.Workspace.Active()
	if !b.Editable() {
		return Outcome{Notice: "Document is read-only"}, ErrReadOnly
	}

	content := b.Content()
	if _, ok := c.ctx.Formatter.Selection(content); !ok && cmd == format.FontName && c.value != "" {
		b.SetFontFamily(c.value)
		c.ctx.publish(eventbus.FormatAppliedEvent{ID: b.ID(), Command: string(cmd), Value: c.value})
		return Outcome{Notice: "Document font set to " + c.value}, nil
	}

	out, err := c.ctx.Formatter.Apply(cmd, c.value, content)
	if err != nil {
		return Outcome{Notice: err.Error()}, err
	}
	if out == content {
		return Outcome{}, nil
	}
	b.SetContent(out)
	c.ctx.publish(eventbus.FormatAppliedEvent{ID: b.ID(), Command: string(cmd), Value: c.value})
	c.ctx.publish(eventbus.ContentChangedEvent{ID: b.ID(), Reason: "format"})

	if c.value != "" {
		return Outcome{Notice: fmt.Sprintf("Applied %s %s", cmd, c.value)}, nil
	}
	return Outcome{Notice: "Applied " + string(cmd)}, nil
}

// CopyCommand puts the selection's text, or the whole document's, on the
// system clipboard
type CopyCommand struct {
	ctx *CommandContext
}

// NewCopyCommand creates a new copy command
func NewCopyCommand(ctx *CommandContext) *CopyCommand {
	return &CopyCommand{ctx: ctx}
}

// Execute copies the text
func (c *CopyCommand) Execute() (Outcome, error) {
	content := c.ctx.Workspace.Active().Content()
	text, ok := c.ctx.Formatter.Selection(content)
	if !ok {
		text = c.ctx.Navigator.Strip(content)
	}
	text = fileops.TextContent(text)

	if c.ctx.Clipboard == nil {
		return Outcome{Notice: "Clipboard unavailable"}, errors.New("no clipboard")
	}
	if err := c.ctx.Clipboard(text); err != nil {
		return Outcome{Notice: fmt.Sprintf("Copy failed: %v", err)}, err
	}
	return Outcome{Notice: fmt.Sprintf("Copied %d characters", utf8.RuneCountInString(text))}, nil
}

// ViewSourceCommand shows the active buffer's markup in the pager
type ViewSourceCommand struct {
	ctx *CommandContext
}

// NewViewSourceCommand creates a new view source command
func NewViewSourceCommand(ctx *CommandContext) *ViewSourceCommand {
	return &ViewSourceCommand{ctx: ctx}
}

// Execute returns the page to show
func (c *ViewSourceCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	return Outcome{
		Page:  PageSource,
		Title: b.Name() + " (source)",
		Text:  c.ctx.Navigator.Strip(b.Content()),
	}, nil
}

// HelpCommand asks the UI for the help page
type HelpCommand struct{}

// Execute returns the page to show
func (HelpCommand) Execute() (Outcome, error) {
	return Outcome{Page: PageHelp, Title: "Help"}, nil
}
