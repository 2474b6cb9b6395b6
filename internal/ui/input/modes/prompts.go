package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"richedit/internal/ui/input/types"
)

// Prompts for every text mode, keyed by mode
var Prompts = map[types.Mode]struct{ Name, Prompt string }{
	types.ModeSearch:     {"search", "Search: "},
	types.ModeReplace:    {"replace", "Replace first with: "},
	types.ModeReplaceAll: {"replace-all", "Replace all with: "},
	types.ModeOpen:       {"open", "Open file: "},
	types.ModeSaveHTML:   {"save-html", "Save as HTML: "},
	types.ModeSaveText:   {"save-txt", "Save as text: "},
	types.ModeLink:       {"link", "Link URL: "},
	types.ModeFont:       {"font", "Font name: "},
	types.ModeFormat:     {"format", "Format (command [value]): "},
}

// NewPromptModes builds one text input mode per prompt, sharing ti
func NewPromptModes(ti *textinput.Model) map[types.Mode]*TextInputMode {
	out := make(map[types.Mode]*TextInputMode, len(Prompts))
	for mode, p := range Prompts {
		out[mode] = NewTextInputMode(mode, p.Name, p.Prompt, ti)
	}
	return out
}
