package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocumentOpened  EventType = "DocumentOpened"
	EventDocumentClosed  EventType = "DocumentClosed"
	EventDocumentSaved   EventType = "DocumentSaved"
	EventTabSwitched     EventType = "TabSwitched"
	EventContentChanged  EventType = "ContentChanged"
	EventFileChanged     EventType = "FileChanged"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventReplaced        EventType = "Replaced"
	EventFormatApplied   EventType = "FormatApplied"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocumentOpenedEvent is emitted when a new tab is created or a file is loaded
type DocumentOpenedEvent struct {
	Document DocumentInfo
}

func (e DocumentOpenedEvent) Type() EventType { return EventDocumentOpened }

// DocumentClosedEvent is emitted when a tab is discarded
type DocumentClosedEvent struct {
	ID   string
	Path string
}

func (e DocumentClosedEvent) Type() EventType { return EventDocumentClosed }

// DocumentSavedEvent is emitted after a successful save
type DocumentSavedEvent struct {
	ID     string
	Path   string
	Format SaveFormat
}

func (e DocumentSavedEvent) Type() EventType { return EventDocumentSaved }

// TabSwitchedEvent is emitted when the active buffer changes
type TabSwitchedEvent struct {
	FromID string
	ToID   string
}

func (e TabSwitchedEvent) Type() EventType { return EventTabSwitched }

// ContentChangedEvent is emitted when a buffer's content is replaced from
// outside the match navigator (source edits, reloads, formatting)
type ContentChangedEvent struct {
	ID     string
	Reason string
}

func (e ContentChangedEvent) Type() EventType { return EventContentChanged }

// FileChangedEvent is emitted when a file backing an open tab changes on disk
type FileChangedEvent struct {
	Path string
}

func (e FileChangedEvent) Type() EventType { return EventFileChanged }

// SearchCompletedEvent is emitted after a match has been highlighted
type SearchCompletedEvent struct {
	ID         string
	Query      string
	MatchCount int
	Cursor     int
	Offset     int // Character offset of the highlighted match
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search ends in a user notice
type SearchFailedEvent struct {
	ID    string
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ReplacedEvent is emitted after a replace-one/replace-all
type ReplacedEvent struct {
	ID    string
	Mode  ReplaceMode
	Count int
}

func (e ReplacedEvent) Type() EventType { return EventReplaced }

// FormatAppliedEvent is emitted after a toolbar formatting command
type FormatAppliedEvent struct {
	ID      string
	Command string
	Value   string
}

func (e FormatAppliedEvent) Type() EventType { return EventFormatApplied }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
