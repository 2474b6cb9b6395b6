package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"richedit/internal/ui/input/types"
)

// Confirmation is the ChangeModeAction data for ModeConfirm
type Confirmation struct {
	Question string
	Action   types.Action
}

type ConfirmMode struct {
	pending Confirmation
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

// SetData stores the action to run on confirmation
func (m *ConfirmMode) SetData(data interface{}) {
	if c, ok := data.(Confirmation); ok {
		m.pending = c
	}
}

// Question returns the text shown while waiting for y/n
func (m *ConfirmMode) Question() string {
	return m.pending.Question
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	m.pending = Confirmation{}
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y":
		action := m.pending.Action
		actions := []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
		if action != nil {
			actions = append(actions, action)
		}
		return actions, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	return nil, true
}
