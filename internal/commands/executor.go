package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"richedit/internal/domain"
	"richedit/internal/format"
)

// ErrUnknownAction is returned for a kind with no handler
var ErrUnknownAction = errors.New("unknown action")

type factory func(ctx *CommandContext, a Action) Command

// table is the trigger dispatch table
var table = map[Kind]factory{
	SearchPrev: func(ctx *CommandContext, a Action) Command {
		return NewFindCommand(ctx, domain.DirectionPrev, a.SearchTerm)
	},
	SearchNext: func(ctx *CommandContext, a Action) Command {
		return NewFindCommand(ctx, domain.DirectionNext, a.SearchTerm)
	},
	ReplaceOne: func(ctx *CommandContext, a Action) Command {
		return NewReplaceCommand(ctx, domain.ReplaceFirst, a.SearchTerm, a.ReplaceTerm)
	},
	ReplaceAll: func(ctx *CommandContext, a Action) Command {
		return NewReplaceCommand(ctx, domain.ReplaceAll, a.SearchTerm, a.ReplaceTerm)
	},
	New: func(ctx *CommandContext, a Action) Command {
		return NewNewDocumentCommand(ctx)
	},
	Open: func(ctx *CommandContext, a Action) Command {
		return NewOpenCommand(ctx, a.Path)
	},
	SaveText: func(ctx *CommandContext, a Action) Command {
		return NewSaveCommand(ctx, domain.FormatText, a.Name, a.Path)
	},
	SaveHTML: func(ctx *CommandContext, a Action) Command {
		return NewSaveCommand(ctx, domain.FormatHTML, a.Name, a.Path)
	},
	Reload: func(ctx *CommandContext, a Action) Command {
		return NewReloadCommand(ctx, a.Path)
	},
	ToggleCode: func(ctx *CommandContext, a Action) Command {
		return NewToggleCodeCommand(ctx)
	},
	SetSource: func(ctx *CommandContext, a Action) Command {
		return NewSetSourceCommand(ctx, a.Value)
	},
	Format: func(ctx *CommandContext, a Action) Command {
		return NewFormatCommand(ctx, a.Command, a.Value)
	},
	Font: func(ctx *CommandContext, a Action) Command {
		return NewFormatCommand(ctx, string(format.FontName), a.Value)
	},
	Link: func(ctx *CommandContext, a Action) Command {
		return NewFormatCommand(ctx, string(format.CreateLink), a.Value)
	},
	NewTab: func(ctx *CommandContext, a Action) Command {
		return NewNewTabCommand(ctx)
	},
	CloseTab: func(ctx *CommandContext, a Action) Command {
		return NewCloseTabCommand(ctx, a.TabID)
	},
	SwitchTab: func(ctx *CommandContext, a Action) Command {
		return NewSwitchTabCommand(ctx, a.TabID, a.TabDelta)
	},
	Copy: func(ctx *CommandContext, a Action) Command {
		return NewCopyCommand(ctx)
	},
	ViewSource: func(ctx *CommandContext, a Action) Command {
		return NewViewSourceCommand(ctx)
	},
	Help: func(ctx *CommandContext, a Action) Command {
		return HelpCommand{}
	},
}

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx *CommandContext) *Executor {
	return &Executor{ctx: ctx}
}

// Context returns the shared command context
func (e *Executor) Context() *CommandContext {
	return e.ctx
}

// Dispatch looks the action up in the dispatch table and runs it. Errors
// are user-facing; the outcome carries the notice to show for them.
func (e *Executor) Dispatch(a Action) (Outcome, error) {
	f, ok := table[a.Kind]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
		return Outcome{Notice: err.Error()}, err
	}
	out, err := f(e.ctx, a).Execute()
	if err != nil {
		log.Debug("Action failed", "kind", a.Kind, "err", err)
		if out.Notice == "" {
			out.Notice = err.Error()
		}
	}
	return out, err
}

// Kinds returns every dispatchable trigger, sorted
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(table))
	for k := range table {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
