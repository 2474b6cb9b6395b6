package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Link          lipgloss.Style
	Heading       lipgloss.Style
	Quote         lipgloss.Style
	Code          lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	ReadOnly      lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:    lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("226")),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		ReadOnly:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// namedColors maps the colour names the toolbar accepts to ANSI colours
var namedColors = map[string]string{
	"black":   "0",
	"red":     "9",
	"green":   "10",
	"yellow":  "11",
	"blue":    "12",
	"magenta": "13",
	"fuchsia": "13",
	"cyan":    "14",
	"aqua":    "14",
	"white":   "15",
	"gray":    "8",
	"grey":    "8",
	"orange":  "208",
	"purple":  "93",
	"pink":    "218",
	"brown":   "94",
}

// ColorFor converts a CSS colour value to a terminal colour. Unknown names
// give "".
func ColorFor(value string) lipgloss.Color {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(v, "#") {
		return lipgloss.Color(v)
	}
	if c, ok := namedColors[v]; ok {
		return lipgloss.Color(c)
	}
	return ""
}
