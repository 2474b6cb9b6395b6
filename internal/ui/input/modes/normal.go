package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"richedit/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.ScrollAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.ScrollAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.ScrollAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.ScrollAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchTabAction{Delta: 1}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.SwitchTabAction{Delta: -1}}, true
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.ScrollAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.ScrollAction{Direction: "up"}}, true

	case "/", "ctrl+f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true

	case "n":
		return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true

	case "N":
		return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true

	case "r":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeReplace}}, true

	case "R":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeReplaceAll}}, true

	case "o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOpen}}, true

	case "s", "ctrl+s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSaveHTML, Data: ctx.TabName()}}, true

	case "w":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSaveText, Data: ctx.TabName()}}, true

	case "ctrl+n":
		if ctx.Modified() {
			return []types.Action{types.ChangeModeAction{
				Mode: types.ModeConfirm,
				Data: Confirmation{Question: "Discard unsaved changes?", Action: types.NewDocumentAction{}},
			}}, true
		}
		return []types.Action{types.NewDocumentAction{}}, true

	case "t":
		return []types.Action{types.NewTabAction{}}, true

	case "x":
		if ctx.Modified() {
			return []types.Action{types.ChangeModeAction{
				Mode: types.ModeConfirm,
				Data: Confirmation{Question: "Close tab with unsaved changes?", Action: types.CloseTabAction{}},
			}}, true
		}
		return []types.Action{types.CloseTabAction{}}, true

	case "]":
		return []types.Action{types.SwitchTabAction{Delta: 1}}, true

	case "[":
		return []types.Action{types.SwitchTabAction{Delta: -1}}, true

	case "b":
		return []types.Action{types.FormatAction{Command: "bold"}}, true

	case "i":
		return []types.Action{types.FormatAction{Command: "italic"}}, true

	case "u":
		return []types.Action{types.FormatAction{Command: "underline"}}, true

	case "-":
		return []types.Action{types.FormatAction{Command: "strikeThrough"}}, true

	case "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFormat}}, true

	case "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFont}}, true

	case "L":
		if !ctx.HasHighlight() {
			return []types.Action{types.FormatAction{Command: "createLink"}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLink}}, true

	case "e":
		return []types.Action{types.EditSourceAction{}}, true

	case "E":
		return []types.Action{types.ToggleCodeAction{}}, true

	case "y":
		return []types.Action{types.CopyAction{}}, true

	case "v":
		return []types.Action{types.ViewSourceAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "esc":
		return nil, true // Consume the key even if no action

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.ScrollAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.ScrollAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
