package types

// Scroll actions
type ScrollAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a ScrollAction) Type() string { return "scroll" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions
type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

// Toolbar actions
type FormatAction struct {
	Command string
	Value   string
}

func (a FormatAction) Type() string { return "format" }

type NewDocumentAction struct{}

func (a NewDocumentAction) Type() string { return "new_document" }

type ToggleCodeAction struct{}

func (a ToggleCodeAction) Type() string { return "toggle_code" }

type EditSourceAction struct{}

func (a EditSourceAction) Type() string { return "edit_source" }

type SubmitSourceAction struct{}

func (a SubmitSourceAction) Type() string { return "submit_source" }

type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type ViewSourceAction struct{}

func (a ViewSourceAction) Type() string { return "view_source" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Tab actions
type NewTabAction struct{}

func (a NewTabAction) Type() string { return "new_tab" }

type CloseTabAction struct{}

func (a CloseTabAction) Type() string { return "close_tab" }

type SwitchTabAction struct {
	Delta int
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
