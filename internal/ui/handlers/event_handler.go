package handlers

import (
	"fmt"

	"github.com/charmbracelet/log"

	"richedit/internal/commands"
	"richedit/internal/eventbus"
	"richedit/internal/ui/state"
)

// Dispatcher runs toolbar actions
type Dispatcher interface {
	Dispatch(a commands.Action) (commands.Outcome, error)
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state    *state.AppState
	dispatch Dispatcher
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, dispatch Dispatcher) *EventHandler {
	return &EventHandler{
		state:    appState,
		dispatch: dispatch,
	}
}

// HandleEvent processes a domain event. It reports whether the visible
// document may have changed.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) bool {
	switch e := event.(type) {
	case eventbus.FileChangedEvent:
		out, err := h.dispatch.Dispatch(commands.Action{Kind: commands.Reload, Path: e.Path})
		if err != nil {
			h.state.SetStatus(state.StatusError, out.Notice)
			return false
		}
		if out.Notice != "" {
			h.state.SetStatus(state.StatusInfo, out.Notice)
		}
		return true

	case eventbus.ErrorEvent:
		h.state.SetStatus(state.StatusError, fmt.Sprintf("Error: %s", e.Message))

	case eventbus.DocumentSavedEvent:
		log.Debug("Document saved", "id", e.ID, "path", e.Path, "format", e.Format)

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus(state.StatusSuccess, fmt.Sprintf("Config saved to %s", e.Path))

	default:
		log.Debug("Unhandled UI event", "event", event.Type())
	}
	return false
}
