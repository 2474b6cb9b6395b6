package commands

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"richedit/internal/document"
	"richedit/internal/domain"
	"richedit/internal/eventbus"
	"richedit/internal/format"
	"richedit/internal/search"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func (b *recordingBus) Close() {}

func (b *recordingBus) types() []eventbus.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.EventType
	for _, e := range b.events {
		out = append(out, e.Type())
	}
	return out
}

type fakeWatcher struct {
	added, removed, muted []string
}

func (w *fakeWatcher) Add(p string) error { w.added = append(w.added, p); return nil }
func (w *fakeWatcher) Remove(p string) error { w.removed = append(w.removed, p); return nil }
func (w *fakeWatcher) Mute(p string, _ time.Duration) { w.muted = append(w.muted, p) }

type fixture struct {
	exec    *Executor
	ws      *document.Workspace
	bus     *recordingBus
	watcher *fakeWatcher
	copied  []string
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	f := &fixture{
		ws:      document.NewWorkspace("untitled"),
		bus:     &recordingBus{},
		watcher: &fakeWatcher{},
	}
	f.ws.Active().Reload(content)
	ctx := NewCommandContext(f.ws, search.NewNavigator(search.DefaultOptions()), f.bus)
	ctx.Watcher = f.watcher
	ctx.SaveDir = t.TempDir()
	ctx.Clipboard = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}
	f.exec = NewExecutor(ctx)
	return f
}

func (f *fixture) run(t *testing.T, a Action) Outcome {
	t.Helper()
	out, err := f.exec.Dispatch(a)
	require.NoError(t, err)
	return out
}

func TestSearchNextCycles(t *testing.T) {
	f := newFixture(t, "cat Cat CAT")

	out := f.run(t, Action{Kind: SearchNext, SearchTerm: "cat"})
	assert.Equal(t, "Match 1 of 3", out.Notice)
	require.NotNil(t, out.Scroll)
	assert.Equal(t, 0, out.Scroll.Offset)

	f.run(t, Action{Kind: SearchNext, SearchTerm: "cat"})
	out = f.run(t, Action{Kind: SearchNext, SearchTerm: "cat"})
	assert.Equal(t, 8, out.Scroll.Offset)
	out = f.run(t, Action{Kind: SearchNext, SearchTerm: "cat"})
	assert.Equal(t, 0, out.Scroll.Offset)

	out = f.run(t, Action{Kind: SearchPrev, SearchTerm: "cat"})
	assert.Equal(t, "Match 3 of 3", out.Notice)
	assert.Equal(t, `cat Cat <span class="highlight">CAT</span>`, f.ws.Active().Content())

	assert.Contains(t, f.bus.types(), eventbus.EventSearchCompleted)
}

func TestSearchFailuresBecomeNotices(t *testing.T) {
	f := newFixture(t, "abc")

	out, err := f.exec.Dispatch(Action{Kind: SearchNext, SearchTerm: "xyz"})
	require.ErrorIs(t, err, search.ErrNoMatchFound)
	assert.Equal(t, "No matches found", out.Notice)

	out, err = f.exec.Dispatch(Action{Kind: SearchPrev})
	require.ErrorIs(t, err, search.ErrEmptySearchTerm)
	assert.Equal(t, "Enter text to search", out.Notice)

	out, err = f.exec.Dispatch(Action{Kind: ReplaceAll, SearchTerm: "(", ReplaceTerm: "x"})
	require.ErrorIs(t, err, search.ErrInvalidPattern)
	assert.Contains(t, out.Notice, "Invalid search pattern")

	assert.Equal(t, "abc", f.ws.Active().Content())
	assert.Contains(t, f.bus.types(), eventbus.EventSearchFailed)
}

func TestReplace(t *testing.T) {
	f := newFixture(t, "foo bar foo")

	out := f.run(t, Action{Kind: ReplaceOne, SearchTerm: "foo", ReplaceTerm: "baz"})
	assert.Equal(t, "Replaced 1 occurrence", out.Notice)
	assert.Equal(t, "baz bar foo", f.ws.Active().Content())

	out = f.run(t, Action{Kind: ReplaceAll, SearchTerm: "BA.", ReplaceTerm: "qux"})
	assert.Equal(t, "Replaced 2 occurrences", out.Notice)
	assert.Equal(t, "qux qux foo", f.ws.Active().Content())

	out = f.run(t, Action{Kind: ReplaceAll, SearchTerm: "zzz", ReplaceTerm: "q"})
	assert.Equal(t, "No matches found", out.Notice)
	assert.True(t, f.ws.Active().Modified())
}

func TestTabsKeepIndependentCursors(t *testing.T) {
	f := newFixture(t, "a a a")
	first := f.ws.Active()

	f.run(t, Action{Kind: SearchNext, SearchTerm: "a"})
	f.run(t, Action{Kind: SearchNext, SearchTerm: "a"})
	require.Equal(t, 1, first.State().Cursor())

	f.run(t, Action{Kind: NewTab})
	second := f.ws.Active()
	require.NotEqual(t, first.ID(), second.ID())
	f.run(t, Action{Kind: SetSource, Value: "a a"})
	f.run(t, Action{Kind: SearchNext, SearchTerm: "a"})
	require.Equal(t, 0, second.State().Cursor())

	f.run(t, Action{Kind: SwitchTab, TabDelta: -1})
	require.Equal(t, first.ID(), f.ws.Active().ID())
	out := f.run(t, Action{Kind: SearchNext, SearchTerm: "a"})
	require.Equal(t, "Match 3 of 3", out.Notice)

	f.run(t, Action{Kind: SwitchTab, TabID: second.ID()})
	require.Equal(t, second.ID(), f.ws.Active().ID())

	out = f.run(t, Action{Kind: CloseTab})
	assert.Contains(t, out.Notice, "unsaved changes discarded")
	require.Equal(t, first.ID(), f.ws.Active().ID())
	require.Equal(t, 1, f.ws.Len())

	_, err := f.exec.Dispatch(Action{Kind: SwitchTab, TabID: "gone"})
	require.ErrorIs(t, err, document.ErrUnknownBuffer)

	types := f.bus.types()
	assert.Contains(t, types, eventbus.EventTabSwitched)
	assert.Contains(t, types, eventbus.EventDocumentClosed)
	assert.Contains(t, types, eventbus.EventContentChanged)
}

func TestFormatHighlightedText(t *testing.T) {
	f := newFixture(t, "<p>make this bold</p>")

	_, err := f.exec.Dispatch(Action{Kind: Format, Command: "bold"})
	require.ErrorIs(t, err, format.ErrNoSelection)

	f.run(t, Action{Kind: SearchNext, SearchTerm: "bold"})
	require.Equal(t, 0, f.ws.Active().State().Cursor())
	out := f.run(t, Action{Kind: Format, Command: "bold"})
	assert.Equal(t, "Applied bold", out.Notice)
	assert.Equal(t, "<p>make this <b>bold</b></p>", f.ws.Active().Content())
	assert.Equal(t, -1, f.ws.Active().State().Cursor(), "formatting resets the cursor")

	f.run(t, Action{Kind: SearchNext, SearchTerm: "this"})
	f.run(t, Action{Kind: Link, Value: "https://example.com"})
	assert.Equal(t, `<p>make <a href="https://example.com">this</a> <b>bold</b></p>`, f.ws.Active().Content())

	f.run(t, Action{Kind: SearchNext, SearchTerm: "make"})
	before := f.ws.Active().Content()
	f.run(t, Action{Kind: Link, Value: ""})
	assert.Equal(t, before, f.ws.Active().Content(), "empty URL is a no-op")

	assert.Contains(t, f.bus.types(), eventbus.EventFormatApplied)
}

func TestFontWithoutSelectionSetsDocumentFont(t *testing.T) {
	f := newFixture(t, "<p>text</p>")

	out := f.run(t, Action{Kind: Font, Value: "Georgia"})
	assert.Equal(t, "Document font set to Georgia", out.Notice)
	assert.Equal(t, "Georgia", f.ws.Active().FontFamily())
	assert.Equal(t, "<p>text</p>", f.ws.Active().Content())

	f.run(t, Action{Kind: SearchNext, SearchTerm: "text"})
	f.run(t, Action{Kind: Font, Value: "Arial"})
	assert.Equal(t, `<p><font face="Arial">text</font></p>`, f.ws.Active().Content())
}

func TestReadOnlyBufferRejectsEdits(t *testing.T) {
	f := newFixture(t, "<p>x</p>")

	out := f.run(t, Action{Kind: ToggleCode})
	assert.Equal(t, "Editing disabled", out.Notice)

	_, err := f.exec.Dispatch(Action{Kind: SetSource, Value: "<p>y</p>"})
	require.ErrorIs(t, err, ErrReadOnly)
	_, err = f.exec.Dispatch(Action{Kind: Format, Command: "italic"})
	require.ErrorIs(t, err, ErrReadOnly)

	out = f.run(t, Action{Kind: ToggleCode})
	assert.Equal(t, "Editing enabled", out.Notice)
	f.run(t, Action{Kind: SetSource, Value: "<p>y</p>"})
	assert.Equal(t, "<p>y</p>", f.ws.Active().Content())
}

func TestOpenSaveAndReload(t *testing.T) {
	f := newFixture(t, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "letter.txt")
	require.NoError(t, os.WriteFile(path, []byte("<p>Dear <b>you</b></p>"), 0644))

	out := f.run(t, Action{Kind: Open, Path: path})
	assert.Contains(t, out.Notice, "Opened")
	b := f.ws.Active()
	assert.Equal(t, 1, f.ws.Len(), "empty untitled tab is reused")
	assert.Equal(t, "letter", b.Name())
	assert.Equal(t, "<p>Dear <b>you</b></p>", b.Content())
	assert.Equal(t, []string{path}, f.watcher.added)

	f.run(t, Action{Kind: Open, Path: path})
	assert.Equal(t, 1, f.ws.Len(), "open file is switched to, not reopened")

	f.run(t, Action{Kind: SearchNext, SearchTerm: "dear"})
	out = f.run(t, Action{Kind: SaveText})
	target := filepath.Join(dir, "letter.txt")
	assert.Equal(t, "Saved "+target, out.Notice)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "Dear you", string(data))
	assert.Contains(t, f.watcher.muted, target)

	out = f.run(t, Action{Kind: SaveHTML, Name: "letter"})
	htmlPath := filepath.Join(dir, "letter.html")
	assert.Equal(t, "Saved "+htmlPath, out.Notice)
	data, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "<p>Dear <b>you</b></p>", string(data), "highlight is not saved")
	assert.Equal(t, htmlPath, b.Path())
	assert.False(t, b.Modified())

	require.NoError(t, os.WriteFile(htmlPath, []byte("<p>changed</p>"), 0644))
	out = f.run(t, Action{Kind: Reload, Path: htmlPath})
	assert.Equal(t, "Reloaded letter", out.Notice)
	assert.Equal(t, "<p>changed</p>", b.Content())

	f.run(t, Action{Kind: SetSource, Value: "<p>mine</p>"})
	out = f.run(t, Action{Kind: Reload, Path: htmlPath})
	assert.Contains(t, out.Notice, "keeping unsaved edits")
	assert.Equal(t, "<p>mine</p>", b.Content())

	types := f.bus.types()
	assert.Contains(t, types, eventbus.EventDocumentOpened)
	assert.Contains(t, types, eventbus.EventDocumentSaved)
}

func TestOpenIntoNewTabWhenActiveHasContent(t *testing.T) {
	f := newFixture(t, "keep me")
	path := filepath.Join(t.TempDir(), "b.html")
	require.NoError(t, os.WriteFile(path, []byte("<i>b</i>"), 0644))

	f.run(t, Action{Kind: Open, Path: path})
	assert.Equal(t, 2, f.ws.Len())
	assert.Equal(t, "b", f.ws.Active().Name())

	_, err := f.exec.Dispatch(Action{Kind: Open, Path: filepath.Join(t.TempDir(), "nope.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = f.exec.Dispatch(Action{Kind: Open})
	require.ErrorIs(t, err, ErrNoPath)
}

func TestNewDocumentClearsActiveTab(t *testing.T) {
	f := newFixture(t, "old text")
	f.ws.Active().Rename("old", "/tmp/old.txt")
	f.run(t, Action{Kind: SearchNext, SearchTerm: "old"})

	out := f.run(t, Action{Kind: New})
	assert.Equal(t, "New document", out.Notice)
	b := f.ws.Active()
	assert.Equal(t, "", b.Content())
	assert.Equal(t, "untitled", b.Name())
	assert.Equal(t, "", b.Path())
	assert.Equal(t, -1, b.State().Cursor())
	assert.Equal(t, []string{"/tmp/old.txt"}, f.watcher.removed)
}

func TestCopy(t *testing.T) {
	f := newFixture(t, "<p>fish &amp; chips</p>")

	out := f.run(t, Action{Kind: Copy})
	assert.Equal(t, "Copied 12 characters", out.Notice)

	f.run(t, Action{Kind: SearchNext, SearchTerm: "chips"})
	f.run(t, Action{Kind: Copy})
	assert.Equal(t, []string{"fish & chips", "chips"}, f.copied)

	f.exec.Context().Clipboard = func(string) error { return errors.New("no display") }
	out, err := f.exec.Dispatch(Action{Kind: Copy})
	require.Error(t, err)
	assert.Equal(t, "Copy failed: no display", out.Notice)
}

func TestPages(t *testing.T) {
	f := newFixture(t, "<p>src</p>")
	f.run(t, Action{Kind: SearchNext, SearchTerm: "src"})

	out := f.run(t, Action{Kind: ViewSource})
	assert.Equal(t, PageSource, out.Page)
	assert.Equal(t, "<p>src</p>", out.Text)

	out = f.run(t, Action{Kind: Help})
	assert.Equal(t, PageHelp, out.Page)
}

func TestUnknownAction(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.exec.Dispatch(Action{Kind: "launch-rocket"})
	require.ErrorIs(t, err, ErrUnknownAction)

	kinds := Kinds()
	for _, k := range []Kind{SearchPrev, SearchNext, ReplaceOne, ReplaceAll} {
		assert.Contains(t, kinds, k)
	}
}

func TestSaveUsesDocumentsSaveDir(t *testing.T) {
	f := newFixture(t, "<p>x</p>")
	out := f.run(t, Action{Kind: SaveHTML})
	want := filepath.Join(f.exec.Context().SaveDir, "untitled.html")
	assert.Equal(t, "Saved "+want, out.Notice)
	assert.FileExists(t, want)
	assert.Equal(t, domain.DocumentInfo{
		ID: f.ws.Active().ID(), Name: "untitled", Path: want, Editable: true,
	}, f.ws.Active().Info())
}
