package commands

import (
	"richedit/internal/eventbus"
)

// NewTabCommand opens an empty tab
type NewTabCommand struct {
	ctx *CommandContext
}

// NewNewTabCommand creates a new tab command
func NewNewTabCommand(ctx *CommandContext) *NewTabCommand {
	return &NewTabCommand{ctx: ctx}
}

// Execute adds and activates the tab
func (c *NewTabCommand) Execute() (Outcome, error) {
	from := c.ctx.Workspace.Active()
	b := c.ctx.Workspace.New()
	c.ctx.publish(eventbus.DocumentOpenedEvent{Document: b.Info()})
	c.ctx.publish(eventbus.TabSwitchedEvent{FromID: from.ID(), ToID: b.ID()})
	return Outcome{Notice: "New tab"}, nil
}

// CloseTabCommand discards a tab and its search state
type CloseTabCommand struct {
	ctx *CommandContext
	id  string
}

// NewCloseTabCommand creates a close command; an empty id closes the
// active tab
func NewCloseTabCommand(ctx *CommandContext, id string) *CloseTabCommand {
	return &CloseTabCommand{ctx: ctx, id: id}
}

// Execute closes the tab
func (c *CloseTabCommand) Execute() (Outcome, error) {
	ws := c.ctx.Workspace
	id := c.id
	if id == "" {
		id = ws.Active().ID()
	}
	b, err := ws.Close(id)
	if err != nil {
		return Outcome{Notice: err.Error()}, err
	}
	c.ctx.unwatch(b.Path())
	c.ctx.publish(eventbus.DocumentClosedEvent{ID: b.ID(), Path: b.Path()})

	if b.Modified() {
		return Outcome{Notice: "Closed " + b.Name() + " (unsaved changes discarded)"}, nil
	}
	return Outcome{Notice: "Closed " + b.Name()}, nil
}

// SwitchTabCommand activates a tab by id or by offset from the active one
type SwitchTabCommand struct {
	ctx   *CommandContext
	id    string
	delta int
}

// NewSwitchTabCommand creates a new switch command
func NewSwitchTabCommand(ctx *CommandContext, id string, delta int) *SwitchTabCommand {
	return &SwitchTabCommand{ctx: ctx, id: id, delta: delta}
}

// Execute switches the active tab
func (c *SwitchTabCommand) Execute() (Outcome, error) {
	ws := c.ctx.Workspace
	from := ws.Active()

	switch {
	case c.id != "":
		if err := ws.Switch(c.id); err != nil {
			return Outcome{Notice: err.Error()}, err
		}
	case c.delta < 0:
		for i := 0; i > c.delta; i-- {
			ws.Prev()
		}
	case c.delta > 0:
		for i := 0; i < c.delta; i++ {
			ws.Next()
		}
	default:
		return Outcome{}, nil
	}

	to := ws.Active()
	if to.ID() != from.ID() {
		c.ctx.publish(eventbus.TabSwitchedEvent{FromID: from.ID(), ToID: to.ID()})
	}
	return Outcome{Notice: to.Name()}, nil
}
