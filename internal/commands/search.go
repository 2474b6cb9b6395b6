package commands

import (
	"fmt"

	"richedit/internal/domain"
	"richedit/internal/eventbus"
	"richedit/internal/search"
)

// FindCommand moves the active buffer's match cursor and highlights
type FindCommand struct {
	ctx       *CommandContext
	direction domain.SearchDirection
	term      string
}

// NewFindCommand creates a new find command
func NewFindCommand(ctx *CommandContext, direction domain.SearchDirection, term string) *FindCommand {
	return &FindCommand{ctx: ctx, direction: direction, term: term}
}

// Execute runs the find against the active buffer
func (c *FindCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	res, err := b.Find(c.ctx.Navigator, c.direction, c.term)
	if err != nil {
		c.ctx.publish(eventbus.SearchFailedEvent{ID: b.ID(), Query: c.term, Err: err})
		return Outcome{Notice: search.Notice(err)}, err
	}

	c.ctx.publish(eventbus.SearchCompletedEvent{
		ID:         b.ID(),
		Query:      c.term,
		MatchCount: res.MatchCount,
		Cursor:     res.Cursor,
		Offset:     res.Current.Index,
	})
	return Outcome{
		Notice: fmt.Sprintf("Match %d of %d", res.Cursor+1, res.MatchCount),
		Scroll: res.Scroll,
	}, nil
}

// ReplaceCommand substitutes the first or every match in the active buffer
type ReplaceCommand struct {
	ctx         *CommandContext
	mode        domain.ReplaceMode
	term        string
	replacement string
}

// NewReplaceCommand creates a new replace command
func NewReplaceCommand(ctx *CommandContext, mode domain.ReplaceMode, term, replacement string) *ReplaceCommand {
	return &ReplaceCommand{ctx: ctx, mode: mode, term: term, replacement: replacement}
}

// Execute runs the replace against the active buffer
func (c *ReplaceCommand) Execute() (Outcome, error) {
	b := c.ctx.Workspace.Active()
	res, err := b.Replace(c.ctx.Navigator, c.mode, c.term, c.replacement)
	if err != nil {
		c.ctx.publish(eventbus.SearchFailedEvent{ID: b.ID(), Query: c.term, Err: err})
		return Outcome{Notice: search.Notice(err)}, err
	}

	c.ctx.publish(eventbus.ReplacedEvent{ID: b.ID(), Mode: c.mode, Count: res.Replaced})
	switch res.Replaced {
	case 0:
		return Outcome{Notice: search.Notice(search.ErrNoMatchFound)}, nil
	case 1:
		return Outcome{Notice: "Replaced 1 occurrence"}, nil
	default:
		return Outcome{Notice: fmt.Sprintf("Replaced %d occurrences", res.Replaced)}, nil
	}
}
