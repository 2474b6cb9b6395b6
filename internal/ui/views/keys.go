package views

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal-mode bindings for the help bar and the help page.
// The input modes own the actual key handling.
type KeyMap struct {
	Scroll     key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Search     key.Binding
	Next       key.Binding
	Prev       key.Binding
	Replace    key.Binding
	ReplaceAll key.Binding
	Bold       key.Binding
	Italic     key.Binding
	Underline  key.Binding
	Strike     key.Binding
	Format     key.Binding
	Font       key.Binding
	Link       key.Binding
	New        key.Binding
	Open       key.Binding
	SaveHTML   key.Binding
	SaveText   key.Binding
	EditSource key.Binding
	ToggleCode key.Binding
	ViewSource key.Binding
	Copy       key.Binding
	NewTab     key.Binding
	CloseTab   key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the bindings handled by normal mode
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Scroll:     key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓, j/k", "scroll")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("gg/home", "top")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
		Search:     key.NewBinding(key.WithKeys("/", "ctrl+f"), key.WithHelp("/", "search")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		Prev:       key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		Replace:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replace first")),
		ReplaceAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replace all")),
		Bold:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bold")),
		Italic:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "italic")),
		Underline:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "underline")),
		Strike:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "strike through")),
		Format:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "format command")),
		Font:       key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "font")),
		Link:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "link")),
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		SaveHTML:   key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save html")),
		SaveText:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save text")),
		EditSource: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit source")),
		ToggleCode: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "toggle editing")),
		ViewSource: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view source")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		NewTab:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tab")),
		CloseTab:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		NextTab:    key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab/]", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("shift+tab/[", "previous tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Next, k.Prev, k.Replace, k.ReplaceAll, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap. Each column is one help section.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.Top, k.Bottom},
		{k.Search, k.Next, k.Prev, k.Replace, k.ReplaceAll},
		{k.Bold, k.Italic, k.Underline, k.Strike, k.Format, k.Font, k.Link},
		{k.New, k.Open, k.SaveHTML, k.SaveText, k.EditSource, k.ToggleCode, k.ViewSource, k.Copy},
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab},
		{k.Help, k.Quit},
	}
}

// HelpSections names the FullHelp columns
var HelpSections = []string{"Navigation", "Search & Replace", "Formatting", "Document", "Tabs", "Other"}
