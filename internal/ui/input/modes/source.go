package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"richedit/internal/ui/input/types"
)

// SourceMode edits the raw markup of the active tab. Keys it does not
// handle go to the model's source editor.
type SourceMode struct{}

func NewSourceMode() *SourceMode {
	return &SourceMode{}
}

func (m *SourceMode) Name() string {
	return "source"
}

func (m *SourceMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SourceMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SourceMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "ctrl+s":
		return []types.Action{
			types.SubmitSourceAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, false
}
