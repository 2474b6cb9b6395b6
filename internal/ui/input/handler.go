package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"richedit/internal/ui/input/modes"
	"richedit/internal/ui/input/types"
)

// Handler routes keys to the handler of the current input mode
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	prompts     map[types.Mode]*modes.TextInputMode
	confirm     *modes.ConfirmMode
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		confirm:     modes.NewConfirmMode(),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSource] = modes.NewSourceMode()
	h.modes[types.ModeConfirm] = h.confirm
	h.prompts = modes.NewPromptModes(h.textInput)
	for mode, handler := range h.prompts {
		h.modes[mode] = handler
	}

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	// Handle mode changes
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// Apply performs a mode change requested outside of key handling, e.g.
// by the model after processing an action
func (h *Handler) Apply(change types.ChangeModeAction, ctx types.Context) tea.Cmd {
	h.switchMode(change, ctx)
	if h.isTextMode(h.currentMode) {
		return textinput.Blink
	}
	return nil
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action

	// Exit current mode
	if h.modes[h.currentMode] != nil {
		actions = append(actions, h.modes[h.currentMode].Exit(ctx)...)
	}

	oldMode := h.currentMode
	h.currentMode = change.Mode

	if r, ok := h.modes[h.currentMode].(types.DataReceiver); ok {
		r.SetData(change.Data)
	}

	// Enter new mode
	if h.modes[h.currentMode] != nil {
		actions = append(actions, h.modes[h.currentMode].Enter(ctx)...)
	}

	// Handle text input focus
	if h.isTextMode(h.currentMode) {
		h.textInput.Reset()
		if s, ok := change.Data.(string); ok {
			h.textInput.SetValue(s)
			h.textInput.CursorEnd()
		}
		h.textInput.Focus()
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}
	return actions
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// Prompt returns the label for the current text mode, or ""
func (h *Handler) Prompt() string {
	if p, ok := h.prompts[h.currentMode]; ok {
		return p.Prompt()
	}
	return ""
}

// Question returns the pending confirmation text in ModeConfirm
func (h *Handler) Question() string {
	if h.currentMode == types.ModeConfirm {
		return h.confirm.Question()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	_, ok := h.prompts[mode]
	return ok
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
