package commands

import "richedit/internal/search"

// Kind names a toolbar trigger
type Kind string

// Trigger kinds. The first four are the search toolbar.
const (
	SearchPrev Kind = "search-prev"
	SearchNext Kind = "search-next"
	ReplaceOne Kind = "replace-one"
	ReplaceAll Kind = "replace-all"

	New        Kind = "new"
	Open       Kind = "open"
	SaveText   Kind = "save-txt"
	SaveHTML   Kind = "save-html"
	Reload     Kind = "reload"
	ToggleCode Kind = "toggle-code"
	SetSource  Kind = "set-source"
	Format     Kind = "format"
	Font       Kind = "font"
	Link       Kind = "link"
	NewTab     Kind = "new-tab"
	CloseTab   Kind = "close-tab"
	SwitchTab  Kind = "switch-tab"
	Copy       Kind = "copy"
	ViewSource Kind = "view-source"
	Help       Kind = "help"
)

// Action is one UI trigger with the inputs read at trigger time
type Action struct {
	Kind        Kind
	SearchTerm  string
	ReplaceTerm string
	Path        string // open/save/reload target
	Name        string // save file name, defaults to the tab name
	Command     string // format command name
	Value       string // format value, font, URL or new source
	TabID       string
	TabDelta    int // switch-tab by offset when TabID is empty
}

// PageKind selects what the UI shows in the pager
type PageKind int

const (
	PageNone PageKind = iota
	PageHelp
	PageSource
)

// Outcome is what the UI needs to show after a command ran
type Outcome struct {
	Notice string
	Scroll *search.ScrollTarget
	Page   PageKind
	Title  string
	Text   string
}
