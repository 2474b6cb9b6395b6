package search

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// span is a half-open character range [start, end)
type span struct {
	start, end int
}

// markupSpans returns the character ranges covered by tags, comments and
// doctypes in content. Text between tags is not included.
func markupSpans(content string) []span {
	var spans []span
	z := html.NewTokenizer(bytes.NewReader([]byte(content)))
	pos := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return spans
		}
		n := utf8.RuneCount(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken,
			html.CommentToken, html.DoctypeToken:
			spans = append(spans, span{start: pos, end: pos + n})
		}
		pos += n
	}
}

func overlapsAny(s span, spans []span) bool {
	for _, t := range spans {
		if s.start < t.end && t.start < s.end {
			return true
		}
		if t.start >= s.end {
			break
		}
	}
	return false
}
