package views

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

// RenderedDocument is markup laid out for the terminal
type RenderedDocument struct {
	Lines         []string
	HighlightLine int // line holding the start of the highlighted match, -1 if none
}

// Content joins the lines for a viewport
func (d RenderedDocument) Content() string {
	return strings.Join(d.Lines, "\n")
}

// DocumentRenderer lays out HTML as styled terminal text. It understands
// the inline and block tags the formatter produces; anything else is
// rendered as its text.
type DocumentRenderer struct {
	styles         *Styles
	highlightClass string
}

// NewDocumentRenderer creates a renderer that styles spans of
// highlightClass as the current match
func NewDocumentRenderer(styles *Styles, highlightClass string) *DocumentRenderer {
	return &DocumentRenderer{styles: styles, highlightClass: highlightClass}
}

type textStyle struct {
	bold, italic, underline, strike bool
	highlight, link, heading, quote bool
	pre                             bool
	fg, bg                          lipgloss.Color
}

type frame struct {
	tag   string
	style textStyle
}

var blockTags = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true, "li": true,
	"ul": true, "ol": true, "table": true, "tr": true, "section": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true,
}

type layout struct {
	r         *DocumentRenderer
	width     int
	lines     []strings.Builder
	cols      []int
	hlLine    int
	stack     []frame
	lastSpace bool
}

// Render lays out content for width columns, wrapping at word boundaries
func (r *DocumentRenderer) Render(content string, width int) RenderedDocument {
	if width < 10 {
		width = 10
	}
	l := &layout{r: r, width: width, hlLine: -1, lastSpace: true}
	l.newLine()

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			l.open(tok, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			l.close(tok.Data)
		case html.TextToken:
			l.text(tok.Data)
		}
	}
	return l.result()
}

func (l *layout) current() textStyle {
	if len(l.stack) == 0 {
		return textStyle{}
	}
	return l.stack[len(l.stack)-1].style
}

func (l *layout) col() int {
	return l.cols[len(l.cols)-1]
}

func (l *layout) newLine() {
	l.lines = append(l.lines, strings.Builder{})
	l.cols = append(l.cols, 0)
	l.lastSpace = true
}

func (l *layout) breakLine() {
	if l.col() > 0 {
		l.newLine()
	}
}

func (l *layout) open(tok html.Token, selfClosing bool) {
	name := tok.Data
	switch name {
	case "br":
		l.newLine()
		return
	case "hr":
		l.breakLine()
		l.write(strings.Repeat("─", min(20, l.width)), textStyle{fg: lipgloss.Color("241")})
		l.newLine()
		return
	}
	if blockTags[name] {
		l.breakLine()
	}
	if selfClosing {
		return
	}

	st := l.current()
	switch name {
	case "b", "strong":
		st.bold = true
	case "i", "em":
		st.italic = true
	case "u", "ins":
		st.underline = true
	case "strike", "s", "del":
		st.strike = true
	case "a":
		st.link = true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		st.heading = true
	case "blockquote":
		st.quote = true
	case "pre":
		st.pre = true
	case "li":
		l.write("• ", st)
	case "font":
		if c := ColorFor(attr(tok, "color")); c != "" {
			st.fg = c
		}
	case "span":
		if hasClass(attr(tok, "class"), l.r.highlightClass) {
			st.highlight = true
		}
		if bg := backgroundColor(attr(tok, "style")); bg != "" {
			st.bg = bg
		}
	}
	l.stack = append(l.stack, frame{tag: name, style: st})
}

func (l *layout) close(name string) {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if l.stack[i].tag == name {
			l.stack = l.stack[:i]
			break
		}
	}
	if blockTags[name] {
		l.breakLine()
	}
}

func (l *layout) text(s string) {
	st := l.current()
	if st.pre {
		for i, line := range strings.Split(s, "\n") {
			if i > 0 {
				l.newLine()
			}
			l.writeHard(line, st)
		}
		return
	}

	// Collapse whitespace like a browser does outside <pre>
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			l.writeWord(word.String(), st)
			word.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			flush()
			if !l.lastSpace {
				if l.col() > 0 && l.col() < l.width {
					l.write(" ", st)
				}
				l.lastSpace = true
			}
			continue
		}
		word.WriteRune(r)
		l.lastSpace = false
	}
	flush()
}

// writeWord starts a new line when word does not fit on the current one
func (l *layout) writeWord(word string, st textStyle) {
	w := lipgloss.Width(word)
	if l.col() > 0 && l.col()+w > l.width {
		l.newLine()
		l.lastSpace = false
	}
	l.writeHard(word, st)
}

// writeHard writes s, cutting it at the line width
func (l *layout) writeHard(s string, st textStyle) {
	for s != "" {
		room := l.width - l.col()
		if room <= 0 {
			l.newLine()
			l.lastSpace = false
			room = l.width
		}
		runes := []rune(s)
		if len(runes) <= room {
			l.write(s, st)
			return
		}
		l.write(string(runes[:room]), st)
		s = string(runes[room:])
	}
}

func (l *layout) write(s string, st textStyle) {
	if s == "" {
		return
	}
	i := len(l.lines) - 1
	if st.highlight && l.hlLine < 0 && strings.TrimSpace(s) != "" {
		l.hlLine = i
	}
	l.lines[i].WriteString(l.r.style(st).Render(s))
	l.cols[i] += lipgloss.Width(s)
}

func (r *DocumentRenderer) style(st textStyle) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case st.highlight:
		s = r.styles.Highlight
	case st.link:
		s = r.styles.Link
	case st.heading:
		s = r.styles.Heading
	case st.quote:
		s = r.styles.Quote
	case st.pre:
		s = r.styles.Code
	}
	if st.bold {
		s = s.Bold(true)
	}
	if st.italic {
		s = s.Italic(true)
	}
	if st.underline {
		s = s.Underline(true)
	}
	if st.strike {
		s = s.Strikethrough(true)
	}
	if st.fg != "" && !st.highlight {
		s = s.Foreground(st.fg)
	}
	if st.bg != "" && !st.highlight {
		s = s.Background(st.bg)
	}
	return s
}

func (l *layout) result() RenderedDocument {
	n := len(l.lines)
	// A closing block leaves an empty line behind
	if n > 1 && l.cols[n-1] == 0 {
		n--
	}
	doc := RenderedDocument{Lines: make([]string, n), HighlightLine: l.hlLine}
	for i := 0; i < n; i++ {
		doc.Lines[i] = l.lines[i].String()
	}
	return doc
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// backgroundColor extracts background-color from an inline style
func backgroundColor(style string) lipgloss.Color {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(strings.ToLower(k)) == "background-color" {
			return ColorFor(v)
		}
	}
	return ""
}
