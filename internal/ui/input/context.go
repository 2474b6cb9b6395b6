package input

import (
	"richedit/internal/document"
	"richedit/internal/search"
	"richedit/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.AppState
	Workspace *document.Workspace
	Navigator *search.Navigator
}

// SearchQuery returns the last submitted search term
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

// HasHighlight reports whether the active tab has a highlighted match
func (c *ModelContext) HasHighlight() bool {
	return c.Navigator.HasHighlight(c.Workspace.Active().Content())
}

// Editable reports whether the active tab accepts edits
func (c *ModelContext) Editable() bool {
	return c.Workspace.Active().Editable()
}

// Modified reports unsaved changes in the active tab
func (c *ModelContext) Modified() bool {
	return c.Workspace.Active().Modified()
}

// TabName returns the active tab's label
func (c *ModelContext) TabName() string {
	return c.Workspace.Active().Name()
}

// TabCount returns the number of open tabs
func (c *ModelContext) TabCount() int {
	return c.Workspace.Len()
}
