package domain

// DocumentInfo describes an open document (one tab)
type DocumentInfo struct {
	ID       string
	Name     string // Tab label, file name without extension
	Path     string // Backing file ("" if never saved)
	Editable bool   // false while the code view is toggled off
	Modified bool
}

// SearchDirection selects which way the match cursor moves
type SearchDirection string

const (
	DirectionNext SearchDirection = "next"
	DirectionPrev SearchDirection = "prev"
)

// ReplaceMode selects how many matches a replace touches
type ReplaceMode string

const (
	ReplaceFirst ReplaceMode = "first"
	ReplaceAll   ReplaceMode = "all"
)

// SaveFormat is the on-disk representation used when saving
type SaveFormat string

const (
	FormatText SaveFormat = "txt"
	FormatHTML SaveFormat = "html"
)
