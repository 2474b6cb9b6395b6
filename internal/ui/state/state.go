package state

// StatusLevel colours the status bar
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// AppState contains the UI state that is not part of a document
type AppState struct {
	// Search toolbar inputs, read fresh on every trigger
	SearchQuery  string
	ReplaceQuery string

	// Status bar
	StatusMessage string
	StatusLevel   StatusLevel

	// UI state
	ShowHelp    bool // full key help below the status bar
	ShowTabs    bool
	InPagerMode bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{ShowTabs: true}
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(level StatusLevel, msg string) {
	s.StatusLevel = level
	s.StatusMessage = msg
}

// ClearStatus empties the status bar
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusLevel = StatusInfo
}
