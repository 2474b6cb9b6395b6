package search

import (
	"errors"
	"fmt"
)

// User-facing search failures. None of them are fatal; the content handed
// back alongside them is always highlight-free.
var (
	ErrEmptySearchTerm = errors.New("search term is empty")
	ErrNoMatchFound    = errors.New("no match found")
	ErrInvalidPattern  = errors.New("invalid search pattern")
)

// PatternError carries whatever the pattern engine reported for a term.
// It matches ErrInvalidPattern with errors.Is.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

func (e *PatternError) Is(target error) bool { return target == ErrInvalidPattern }

// Notice converts a search error into the text shown to the user
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptySearchTerm):
		return "Enter text to search"
	case errors.Is(err, ErrNoMatchFound):
		return "No matches found"
	case errors.Is(err, ErrInvalidPattern):
		var pe *PatternError
		if errors.As(err, &pe) {
			return fmt.Sprintf("Invalid search pattern: %v", pe.Err)
		}
		return "Invalid search pattern"
	default:
		return err.Error()
	}
}
