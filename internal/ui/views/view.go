package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"richedit/internal/domain"
	"richedit/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Tabs          []domain.DocumentInfo
	ActiveID      string
	ShowTabs      bool
	FontFamily    string
	Body          string // viewport or source editor view
	ScrollPercent float64
	Prompt        string // "" outside text modes
	TextInput     string
	Question      string // pending confirmation
	StatusMessage string
	StatusLevel   state.StatusLevel
	SourceMode    bool
	HelpModel     help.Model
}

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	keys     KeyMap
	document *DocumentRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(highlightClass string) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		keys:     DefaultKeyMap(),
		document: NewDocumentRenderer(styles, highlightClass),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Keys returns the key map shown in the help bar
func (r *Renderer) Keys() KeyMap {
	return r.keys
}

// Document lays out markup for the body
func (r *Renderer) Document(content string, width int) RenderedDocument {
	return r.document.Render(content, width-r.styles.Main.GetHorizontalPadding())
}

// BodyHeight returns the rows left for the document
func BodyHeight(height int, showTabs bool) int {
	chrome := 2 // status/prompt + help
	if showTabs {
		chrome++
	}
	if height-chrome < 1 {
		return 1
	}
	return height - chrome
}

// Render produces the complete view
func (r *Renderer) Render(s ViewState) string {
	var content strings.Builder

	if s.ShowTabs {
		content.WriteString(r.renderTabs(s))
		content.WriteString("\n")
	}

	content.WriteString(s.Body)
	content.WriteString("\n")

	switch {
	case s.Question != "":
		content.WriteString(r.styles.Confirm.Render(s.Question + " (y/n): "))
	case s.Prompt != "":
		content.WriteString(r.styles.Prompt.Render(s.Prompt))
		content.WriteString(s.TextInput)
	default:
		content.WriteString(r.renderStatus(s))
	}
	content.WriteString("\n")

	if s.SourceMode {
		content.WriteString(r.styles.Help.Render("ctrl+s apply • esc cancel"))
	} else {
		content.WriteString(s.HelpModel.ShortHelpView(r.keys.ShortHelp()))
	}

	return lipgloss.NewStyle().MaxHeight(s.Height).Render(content.String())
}

func (r *Renderer) renderTabs(s ViewState) string {
	var tabs []string
	for _, t := range s.Tabs {
		label := t.Name
		if t.Modified {
			label += " ●"
		}
		if !t.Editable {
			label += " " + r.styles.ReadOnly.Render("[ro]")
		}
		if t.ID == s.ActiveID {
			tabs = append(tabs, r.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, r.styles.TabInactive.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	right := r.styles.Scroll.Render(fmt.Sprintf("%3.f%%", s.ScrollPercent*100))
	if s.FontFamily != "" {
		right = r.styles.Dim.Render(s.FontFamily) + "  " + right
	}

	// Right-align the indicators when there is room for them
	pad := s.Width - lipgloss.Width(bar) - lipgloss.Width(right)
	if pad < 1 {
		return bar
	}
	return bar + strings.Repeat(" ", pad) + right
}

func (r *Renderer) renderStatus(s ViewState) string {
	if s.StatusMessage == "" {
		return ""
	}
	style := r.styles.StatusInfo
	switch s.StatusLevel {
	case state.StatusSuccess:
		style = r.styles.StatusSuccess
	case state.StatusWarning:
		style = r.styles.StatusWarning
	case state.StatusError:
		style = r.styles.StatusError
	}
	return style.Render(s.StatusMessage)
}

// RenderHelpContent renders the help page shown in the pager
func (r *Renderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("richedit Help"))
	help.WriteString("\n")

	for i, column := range r.keys.FullHelp() {
		help.WriteString(sectionStyle.Render(HelpSections[i]))
		help.WriteString("\n")
		for _, b := range column {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Prompts"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("enter"), descStyle.Render("Submit")))
	help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render("esc"), descStyle.Render("Cancel")))
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Format examples: bold, formatBlock h2, fontSize 5, foreColor red, hiliteColor #ffff00"))
	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Replacement templates: $1..$9, $& (match), $$ (dollar)"))
	help.WriteString("\n")

	return help.String()
}
