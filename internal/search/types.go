package search

import (
	"time"

	"richedit/internal/domain"
)

// PatternMode decides how the search term is handed to the pattern engine
type PatternMode int

const (
	// PatternRegex uses the term as a case-insensitive pattern, unescaped.
	PatternRegex PatternMode = iota
	// PatternLiteral escapes the term and inserts replacement text verbatim.
	PatternLiteral
)

// HighlightMode decides how many characters the highlight span covers
type HighlightMode int

const (
	// HighlightQueryLength spans len(searchTerm) characters from the match start.
	HighlightQueryLength HighlightMode = iota
	// HighlightMatchLength spans exactly the matched text.
	HighlightMatchLength
)

// Options configures a Navigator
type Options struct {
	PatternMode    PatternMode
	HighlightMode  HighlightMode
	HighlightClass string
	SkipMarkup     bool          // ignore matches overlapping an HTML tag
	MatchTimeout   time.Duration // 0 disables the engine timeout
}

// DefaultOptions mirrors the classic editor behaviour
func DefaultOptions() Options {
	return Options{
		PatternMode:    PatternRegex,
		HighlightMode:  HighlightQueryLength,
		HighlightClass: "highlight",
		MatchTimeout:   500 * time.Millisecond,
	}
}

// Match is one occurrence of the search term in stripped content.
// Index and Length count characters (runes), not bytes.
type Match struct {
	Index  int
	Length int
	Text   string
	groups []string // capture groups, groups[0] is the whole match
}

// ScrollTarget asks the rendering side to bring the highlighted region into
// view. Offset is the character offset of the highlight marker in the
// updated content.
type ScrollTarget struct {
	Offset int
	Length int
	Smooth bool
	Block  string // "center"
}

// Viewport is the render port the navigator notifies after highlighting
type Viewport interface {
	ScrollIntoView(target ScrollTarget)
}

// Result is the outcome of Find or Replace.
// Content is always set, also when an error is returned.
type Result struct {
	Content    string
	MatchCount int
	Cursor     int   // -1 when nothing is highlighted
	Current    Match // valid when Cursor >= 0
	Scroll     *ScrollTarget
	Replaced   int
}

// State holds the match cursor of one buffer
type State struct {
	cursor     int // -1 until the first successful find
	matchCount int // match count the cursor was computed against
}

// NewState creates a state with no cursor
func NewState() *State {
	return &State{cursor: -1}
}

// Cursor returns the current match index, or -1
func (s *State) Cursor() int {
	return s.cursor
}

// MatchCount returns the size of the scan the cursor belongs to
func (s *State) MatchCount() int {
	return s.matchCount
}

// Reset drops the cursor so the next find starts from an end of the list
func (s *State) Reset() {
	s.cursor = -1
	s.matchCount = 0
}

// advance moves the cursor over a fresh scan of n matches (n > 0).
// A cursor computed against a different match count is stale and is
// re-initialised instead of being folded with modulo arithmetic.
func (s *State) advance(dir domain.SearchDirection, n int) int {
	if s.cursor < 0 || s.matchCount != n {
		if dir == domain.DirectionPrev {
			s.cursor = n - 1
		} else {
			s.cursor = 0
		}
	} else if dir == domain.DirectionPrev {
		s.cursor = (s.cursor - 1 + n) % n
	} else {
		s.cursor = (s.cursor + 1) % n
	}
	s.matchCount = n
	return s.cursor
}
