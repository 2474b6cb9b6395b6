// Package search implements find/highlight/replace over serialized HTML.
//
// The Navigator never keeps content between calls: every operation takes
// the current markup, strips the highlight marker it may have left behind,
// rescans, and hands back the updated markup. The only persistent piece is
// the per-buffer State cursor.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"richedit/internal/domain"
)

// Navigator finds, highlights and replaces matches of a search term
type Navigator struct {
	opts     Options
	openTag  string
	closeTag string
	viewport Viewport
}

// NewNavigator creates a navigator with the given options
func NewNavigator(opts Options) *Navigator {
	if opts.HighlightClass == "" {
		opts.HighlightClass = DefaultOptions().HighlightClass
	}
	return &Navigator{
		opts:     opts,
		openTag:  `<span class="` + opts.HighlightClass + `">`,
		closeTag: `</span>`,
	}
}

// Options returns the navigator configuration
func (n *Navigator) Options() Options {
	return n.opts
}

// SetViewport sets the render port that receives scroll requests
func (n *Navigator) SetViewport(v Viewport) {
	n.viewport = v
}

// HighlightMarkers returns the opening and closing tags of the highlight span
func (n *Navigator) HighlightMarkers() (string, string) {
	return n.openTag, n.closeTag
}

// Strip removes every highlight wrapper, keeping the text it wrapped.
// Stripping content without a highlight returns it unchanged.
func (n *Navigator) Strip(content string) string {
	start := strings.Index(content, n.openTag)
	if start < 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	rest := content
	for start >= 0 {
		inner := rest[start+len(n.openTag):]
		end := strings.Index(inner, n.closeTag)
		if end < 0 {
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(inner[:end])
		rest = inner[end+len(n.closeTag):]
		start = strings.Index(rest, n.openTag)
	}
	b.WriteString(rest)
	return b.String()
}

// HasHighlight reports whether content carries a highlight marker
func (n *Navigator) HasHighlight(content string) bool {
	return strings.Contains(content, n.openTag)
}

// Find strips the previous highlight, rescans content for term and
// highlights the match the cursor moves to.
func (n *Navigator) Find(st *State, dir domain.SearchDirection, term, content string) (Result, error) {
	stripped := n.Strip(content)
	res := Result{Content: stripped, Cursor: -1}

	if dir != domain.DirectionNext && dir != domain.DirectionPrev {
		return res, fmt.Errorf("unknown search direction %q", dir)
	}
	if term == "" {
		return res, ErrEmptySearchTerm
	}

	matches, err := n.Scan(term, stripped)
	if err != nil {
		return res, err
	}
	res.MatchCount = len(matches)
	if len(matches) == 0 {
		return res, ErrNoMatchFound
	}

	cursor := st.advance(dir, len(matches))
	current := matches[cursor]
	content, target := n.highlight(stripped, current, term)

	res.Content = content
	res.Cursor = cursor
	res.Current = current
	res.Scroll = &target

	if n.viewport != nil {
		n.viewport.ScrollIntoView(target)
	}
	return res, nil
}

// Replace strips the highlight and substitutes the first or every match of
// term. Zero matches leaves the (stripped) content as is and is not an
// error. The cursor is not touched.
func (n *Navigator) Replace(mode domain.ReplaceMode, term, replacement, content string) (Result, error) {
	stripped := n.Strip(content)
	res := Result{Content: stripped, Cursor: -1}

	if mode != domain.ReplaceFirst && mode != domain.ReplaceAll {
		return res, fmt.Errorf("unknown replace mode %q", mode)
	}
	if term == "" {
		return res, ErrEmptySearchTerm
	}

	matches, err := n.Scan(term, stripped)
	if err != nil {
		return res, err
	}
	res.MatchCount = len(matches)
	if len(matches) == 0 {
		return res, nil
	}
	if mode == domain.ReplaceFirst {
		matches = matches[:1]
	}

	runes := []rune(stripped)
	var b strings.Builder
	b.Grow(len(stripped))
	last := 0
	for _, m := range matches {
		b.WriteString(string(runes[last:m.Index]))
		if n.opts.PatternMode == PatternLiteral {
			b.WriteString(replacement)
		} else {
			b.WriteString(expand(replacement, m, runes))
		}
		last = m.Index + m.Length
	}
	b.WriteString(string(runes[last:]))

	res.Content = b.String()
	res.Replaced = len(matches)
	return res, nil
}

// Scan returns every non-overlapping, case-insensitive match of term in
// content, left to right. Content is scanned as given; callers strip first.
func (n *Navigator) Scan(term, content string) ([]Match, error) {
	if term == "" {
		return nil, ErrEmptySearchTerm
	}
	re, err := n.compile(term)
	if err != nil {
		return nil, err
	}

	var spans []span
	if n.opts.SkipMarkup {
		spans = markupSpans(content)
	}
	termLen := utf8.RuneCountInString(term)

	var matches []Match
	m, err := re.FindStringMatch(content)
	for m != nil {
		match := Match{
			Index:  m.Index,
			Length: m.Length,
			Text:   m.String(),
		}
		for _, g := range m.Groups() {
			match.groups = append(match.groups, g.String())
		}
		if spans == nil || !overlapsAny(n.coverage(match, termLen), spans) {
			matches = append(matches, match)
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, &PatternError{Pattern: term, Err: err}
	}
	return matches, nil
}

func (n *Navigator) compile(term string) (*regexp2.Regexp, error) {
	pattern := term
	if n.opts.PatternMode == PatternLiteral {
		pattern = regexp2.Escape(term)
	}
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, &PatternError{Pattern: term, Err: err}
	}
	if n.opts.MatchTimeout > 0 {
		re.MatchTimeout = n.opts.MatchTimeout
	}
	return re, nil
}

// coverage is the character range a match touches once highlighted or
// replaced. Empty ranges are widened to one character so a zero-width
// match inside a tag still counts as overlapping it.
func (n *Navigator) coverage(m Match, termLen int) span {
	end := m.Index + m.Length
	if n.opts.HighlightMode == HighlightQueryLength && m.Index+termLen > end {
		end = m.Index + termLen
	}
	if end == m.Index {
		end++
	}
	return span{start: m.Index, end: end}
}

// highlight wraps the match in the highlight marker
func (n *Navigator) highlight(content string, m Match, term string) (string, ScrollTarget) {
	runes := []rune(content)
	length := m.Length
	if n.opts.HighlightMode == HighlightQueryLength {
		length = utf8.RuneCountInString(term)
	}
	start := min(m.Index, len(runes))
	end := min(start+length, len(runes))

	var b strings.Builder
	b.Grow(len(content) + len(n.openTag) + len(n.closeTag))
	b.WriteString(string(runes[:start]))
	b.WriteString(n.openTag)
	b.WriteString(string(runes[start:end]))
	b.WriteString(n.closeTag)
	b.WriteString(string(runes[end:]))

	return b.String(), ScrollTarget{
		Offset: start,
		Length: end - start,
		Smooth: true,
		Block:  "center",
	}
}

// expand substitutes $$, $&, $`, $' and $n/$nn in a replacement template
func expand(tmpl string, m Match, subject []rune) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}

	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(m.Text)
			i++
		case next == '`':
			b.WriteString(string(subject[:m.Index]))
			i++
		case next == '\'':
			b.WriteString(string(subject[m.Index+m.Length:]))
			i++
		case next >= '0' && next <= '9':
			digits := 1
			if i+2 < len(tmpl) && tmpl[i+2] >= '0' && tmpl[i+2] <= '9' {
				if two, _ := strconv.Atoi(tmpl[i+1 : i+3]); two > 0 && two < len(m.groups) {
					digits = 2
				}
			}
			idx, _ := strconv.Atoi(tmpl[i+1 : i+1+digits])
			if idx == 0 || idx >= len(m.groups) {
				b.WriteByte(c)
				continue
			}
			b.WriteString(m.groups[idx])
			i += digits
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
