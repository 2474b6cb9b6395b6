// Package format applies toolbar formatting commands to the highlighted
// region of a document. The highlight left by the last find acts as the
// selection; applying a format consumes it.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Command is a formatting command name as shown in the toolbar
type Command string

const (
	Bold          Command = "bold"
	Italic        Command = "italic"
	Underline     Command = "underline"
	StrikeThrough Command = "strikeThrough"
	FormatBlock   Command = "formatBlock"
	FontSize      Command = "fontSize"
	ForeColor     Command = "foreColor"
	HiliteColor   Command = "hiliteColor"
	FontName      Command = "fontName"
	CreateLink    Command = "createLink"
)

var (
	// ErrNoSelection is returned when content has no highlighted region
	ErrNoSelection = errors.New("nothing selected, search for the text to format first")
	// ErrUnknownCommand is returned for names outside the command table
	ErrUnknownCommand = errors.New("unknown format command")
	// ErrInvalidValue is returned for a value the command does not accept
	ErrInvalidValue = errors.New("invalid format value")
)

// Blocks lists the tags accepted by formatBlock
var Blocks = []string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "pre", "blockquote"}

var commands = map[Command]bool{
	Bold: false, Italic: false, Underline: false, StrikeThrough: false,
	FormatBlock: true, FontSize: true, ForeColor: true, HiliteColor: true,
	FontName: true, CreateLink: true,
}

// Commands returns every command name in toolbar order
func Commands() []Command {
	return []Command{Bold, Italic, Underline, StrikeThrough, FormatBlock,
		FontSize, ForeColor, HiliteColor, FontName, CreateLink}
}

// Parse resolves a command name, case-insensitively
func Parse(name string) (Command, error) {
	for c := range commands {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// NeedsValue reports whether the command takes an argument
func (c Command) NeedsValue() bool {
	return commands[c]
}

// Formatter wraps highlighted text in formatting markup
type Formatter struct {
	openTag  string
	closeTag string
}

// New creates a formatter for the given highlight markers
func New(openTag, closeTag string) *Formatter {
	return &Formatter{openTag: openTag, closeTag: closeTag}
}

// Selection returns the highlighted text, if any
func (f *Formatter) Selection(content string) (string, bool) {
	start, end, ok := f.locate(content)
	if !ok {
		return "", false
	}
	return content[start+len(f.openTag) : end], true
}

// Apply replaces the highlight marker around the selection with the markup
// for cmd. A createLink with an empty URL leaves content untouched.
func (f *Formatter) Apply(cmd Command, value, content string) (string, error) {
	if _, ok := commands[cmd]; !ok {
		return content, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	value = strings.TrimSpace(value)
	if cmd == CreateLink && value == "" {
		return content, nil
	}

	open, closing, err := tags(cmd, value)
	if err != nil {
		return content, err
	}

	start, end, ok := f.locate(content)
	if !ok {
		return content, ErrNoSelection
	}
	inner := content[start+len(f.openTag) : end]

	var b strings.Builder
	b.Grow(len(content) + len(open) + len(closing))
	b.WriteString(content[:start])
	b.WriteString(open)
	b.WriteString(inner)
	b.WriteString(closing)
	b.WriteString(content[end+len(f.closeTag):])
	return b.String(), nil
}

func (f *Formatter) locate(content string) (start, end int, ok bool) {
	start = strings.Index(content, f.openTag)
	if start < 0 {
		return 0, 0, false
	}
	rel := strings.Index(content[start+len(f.openTag):], f.closeTag)
	if rel < 0 {
		return 0, 0, false
	}
	return start, start + len(f.openTag) + rel, true
}

func tags(cmd Command, value string) (string, string, error) {
	attr := html.EscapeString(value)
	switch cmd {
	case Bold:
		return "<b>", "</b>", nil
	case Italic:
		return "<i>", "</i>", nil
	case Underline:
		return "<u>", "</u>", nil
	case StrikeThrough:
		return "<strike>", "</strike>", nil
	case FormatBlock:
		tag := strings.ToLower(strings.Trim(value, "<>"))
		for _, b := range Blocks {
			if b == tag {
				return "<" + tag + ">", "</" + tag + ">", nil
			}
		}
		return "", "", fmt.Errorf("%w: block %q", ErrInvalidValue, value)
	case FontSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 7 {
			return "", "", fmt.Errorf("%w: font size %q, want 1-7", ErrInvalidValue, value)
		}
		return `<font size="` + strconv.Itoa(n) + `">`, "</font>", nil
	case ForeColor:
		if value == "" {
			return "", "", fmt.Errorf("%w: empty colour", ErrInvalidValue)
		}
		return `<font color="` + attr + `">`, "</font>", nil
	case HiliteColor:
		if value == "" {
			return "", "", fmt.Errorf("%w: empty colour", ErrInvalidValue)
		}
		return `<span style="background-color: ` + attr + `;">`, "</span>", nil
	case FontName:
		if value == "" {
			return "", "", fmt.Errorf("%w: empty font name", ErrInvalidValue)
		}
		return `<font face="` + attr + `">`, "</font>", nil
	case CreateLink:
		return `<a href="` + attr + `">`, "</a>", nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}
