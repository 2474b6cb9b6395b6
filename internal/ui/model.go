package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"richedit/internal/commands"
	"richedit/internal/config"
	"richedit/internal/document"
	"richedit/internal/domain"
	"richedit/internal/eventbus"
	"richedit/internal/search"
	"richedit/internal/ui/handlers"
	"richedit/internal/ui/input"
	"richedit/internal/ui/input/modes"
	inputtypes "richedit/internal/ui/input/types"
	"richedit/internal/ui/state"
	"richedit/internal/ui/views"
)

const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width  int
	height int
	help   help.Model

	workspace *document.Workspace
	navigator *search.Navigator

	// Handlers
	renderer     *views.Renderer         // view renderer
	eventHandler *handlers.EventHandler  // event processing handler
	executor     *commands.Executor      // command executor
	inputHandler *input.Handler          // input handling
	pager        *Pager                  // ov pager for help and source

	// Document view
	viewport      viewport.Model
	source        textarea.Model
	rendered      views.RenderedDocument
	renderedKey   string
	activeID      string
	offsets       map[string]int // saved scroll offset per tab
	pendingScroll *search.ScrollTarget

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over an executor's workspace
func NewModel(bus eventbus.EventBus, cfg *config.Config, executor *commands.Executor) *Model {
	appState := state.NewAppState()
	appState.ShowTabs = cfg.UISettings.ShowTabs

	ctx := executor.Context()
	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		workspace:    ctx.Workspace,
		navigator:    ctx.Navigator,
		renderer:     views.NewRenderer(ctx.Navigator.Options().HighlightClass),
		executor:     executor,
		inputHandler: input.New(),
		pager:        NewPager(),
		viewport:     viewport.New(80, 20),
		source:       textarea.New(),
		offsets:      make(map[string]int),
	}
	m.source.ShowLineNumbers = true
	m.source.CharLimit = 0
	m.source.MaxHeight = 0
	m.eventHandler = handlers.NewEventHandler(appState, executor)
	m.navigator.SetViewport(m)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// ScrollIntoView records where the next render should scroll to
func (m *Model) ScrollIntoView(target search.ScrollTarget) {
	m.pendingScroll = &target
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("richedit")
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.refreshDocument()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := m.context()
	before := m.inputHandler.CurrentMode()
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	// Keys the source mode leaves alone are typed into the editor
	if before == inputtypes.ModeSource && m.inputHandler.CurrentMode() == inputtypes.ModeSource && len(actions) == 0 {
		var taCmd tea.Cmd
		m.source, taCmd = m.source.Update(msg)
		return taCmd
	}

	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}

	if before == inputtypes.ModeSource && m.inputHandler.CurrentMode() != inputtypes.ModeSource {
		m.source.Blur()
	}

	m.refreshDocument()
	return tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	active := m.workspace.Active()
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Tabs:          m.tabs(),
		ActiveID:      active.ID(),
		ShowTabs:      m.state.ShowTabs,
		FontFamily:    active.FontFamily(),
		ScrollPercent: m.viewport.ScrollPercent(),
		Prompt:        m.inputHandler.Prompt(),
		Question:      m.inputHandler.Question(),
		StatusMessage: m.state.StatusMessage,
		StatusLevel:   m.state.StatusLevel,
		SourceMode:    m.inputHandler.CurrentMode() == inputtypes.ModeSource,
		HelpModel:     m.help,
	}
	if vs.SourceMode {
		vs.Body = m.source.View()
	} else {
		vs.Body = m.viewport.View()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}
	return m.renderer.Render(vs)
}

func (m *Model) tabs() []domain.DocumentInfo {
	buffers := m.workspace.List()
	tabs := make([]domain.DocumentInfo, 0, len(buffers))
	for _, b := range buffers {
		tabs = append(tabs, b.Info())
	}
	return tabs
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Debug("processAction", "action", action.Type())
	switch a := action.(type) {
	case inputtypes.ScrollAction:
		switch a.Direction {
		case "up":
			m.viewport.ScrollUp(1)
		case "down":
			m.viewport.ScrollDown(1)
		case "pageup":
			m.viewport.PageUp()
		case "pagedown":
			m.viewport.PageDown()
		case "home":
			m.viewport.GotoTop()
		case "end":
			m.viewport.GotoBottom()
		}

	case inputtypes.SearchNavigateAction:
		kind := commands.SearchNext
		if a.Direction == "prev" {
			kind = commands.SearchPrev
		}
		return m.dispatch(commands.Action{Kind: kind, SearchTerm: m.state.SearchQuery})

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.FormatAction:
		return m.dispatch(commands.Action{Kind: commands.Format, Command: a.Command, Value: a.Value})

	case inputtypes.NewDocumentAction:
		return m.dispatch(commands.Action{Kind: commands.New})

	case inputtypes.ToggleCodeAction:
		return m.dispatch(commands.Action{Kind: commands.ToggleCode})

	case inputtypes.EditSourceAction:
		active := m.workspace.Active()
		if !active.Editable() {
			return m.setStatus(state.StatusWarning, "Editing is disabled, press E to enable it")
		}
		m.source.SetValue(m.navigator.Strip(active.Content()))
		m.source.Focus()
		return tea.Batch(
			m.inputHandler.Apply(inputtypes.ChangeModeAction{Mode: inputtypes.ModeSource}, m.context()),
			textarea.Blink,
		)

	case inputtypes.SubmitSourceAction:
		return m.dispatch(commands.Action{Kind: commands.SetSource, Value: m.source.Value()})

	case inputtypes.CopyAction:
		return m.dispatch(commands.Action{Kind: commands.Copy})

	case inputtypes.ViewSourceAction:
		return m.dispatch(commands.Action{Kind: commands.ViewSource})

	case inputtypes.ToggleHelpAction:
		return m.dispatch(commands.Action{Kind: commands.Help})

	case inputtypes.NewTabAction:
		return m.dispatch(commands.Action{Kind: commands.NewTab})

	case inputtypes.CloseTabAction:
		return m.dispatch(commands.Action{Kind: commands.CloseTab})

	case inputtypes.SwitchTabAction:
		return m.dispatch(commands.Action{Kind: commands.SwitchTab, TabDelta: a.Delta})

	case inputtypes.QuitAction:
		if !a.Force && m.hasUnsaved() {
			return m.inputHandler.Apply(inputtypes.ChangeModeAction{
				Mode: inputtypes.ModeConfirm,
				Data: modes.Confirmation{
					Question: "Quit with unsaved changes?",
					Action:   inputtypes.QuitAction{Force: true},
				},
			}, m.context())
		}
		return tea.Quit

	case inputtypes.UpdateTextAction, inputtypes.CancelTextAction:
		// The text input keeps its own value
	}
	return nil
}

// submitText turns a prompt submission into a toolbar trigger
func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	text := a.Text
	switch a.Mode {
	case inputtypes.ModeSearch:
		m.state.SearchQuery = text
		return m.dispatch(commands.Action{Kind: commands.SearchNext, SearchTerm: text})

	case inputtypes.ModeReplace, inputtypes.ModeReplaceAll:
		m.state.ReplaceQuery = text
		kind := commands.ReplaceOne
		if a.Mode == inputtypes.ModeReplaceAll {
			kind = commands.ReplaceAll
		}
		return m.dispatch(commands.Action{Kind: kind, SearchTerm: m.state.SearchQuery, ReplaceTerm: text})

	case inputtypes.ModeOpen:
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return m.dispatch(commands.Action{Kind: commands.Open, Path: expandHome(strings.TrimSpace(text))})

	case inputtypes.ModeSaveHTML, inputtypes.ModeSaveText:
		kind := commands.SaveHTML
		if a.Mode == inputtypes.ModeSaveText {
			kind = commands.SaveText
		}
		return m.dispatch(saveAction(kind, strings.TrimSpace(text)))

	case inputtypes.ModeLink:
		return m.dispatch(commands.Action{Kind: commands.Link, Value: strings.TrimSpace(text)})

	case inputtypes.ModeFont:
		return m.dispatch(commands.Action{Kind: commands.Font, Value: strings.TrimSpace(text)})

	case inputtypes.ModeFormat:
		name, value, _ := strings.Cut(strings.TrimSpace(text), " ")
		if name == "" {
			return nil
		}
		return m.dispatch(commands.Action{Kind: commands.Format, Command: name, Value: strings.TrimSpace(value)})
	}
	return nil
}

// saveAction treats input with a directory part as a path and anything
// else as a file name next to the tab's file
func saveAction(kind commands.Kind, input string) commands.Action {
	if input == "" {
		return commands.Action{Kind: kind}
	}
	input = expandHome(input)
	if strings.ContainsRune(input, filepath.Separator) {
		return commands.Action{Kind: kind, Path: input}
	}
	return commands.Action{Kind: kind, Name: input}
}

// dispatch runs a trigger and shows its outcome
func (m *Model) dispatch(a commands.Action) tea.Cmd {
	out, err := m.executor.Dispatch(a)

	var cmds []tea.Cmd
	if out.Notice != "" {
		cmds = append(cmds, m.setStatus(statusLevel(err), out.Notice))
	}
	if out.Scroll != nil {
		m.pendingScroll = out.Scroll
	}

	switch out.Page {
	case commands.PageHelp:
		cmds = append(cmds, m.showPager("", m.renderer.RenderHelpContent()))
	case commands.PageSource:
		cmds = append(cmds, m.showPager(out.Title, out.Text))
	}
	return tea.Batch(cmds...)
}

func statusLevel(err error) state.StatusLevel {
	switch {
	case err == nil:
		return state.StatusInfo
	case errors.Is(err, search.ErrNoMatchFound), errors.Is(err, search.ErrEmptySearchTerm):
		return state.StatusWarning
	default:
		return state.StatusError
	}
}

func (m *Model) setStatus(level state.StatusLevel, msg string) tea.Cmd {
	m.state.SetStatus(level, msg)
	return tea.Tick(statusTimeout, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// showPager returns a command that shows content using the ov pager
func (m *Model) showPager(title, content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(title, content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{title: title, err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		// Process domain events
		if m.eventHandler.HandleEvent(msg.Event) {
			m.refreshDocument()
		}
		if m.state.StatusMessage != "" {
			return m, tea.Tick(statusTimeout, func(t time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Error("Pager failed", "title", msg.title, "err", msg.err)
			return m, m.setStatus(state.StatusError, fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.ClearStatus()
		return m, nil

	default:
		// Cursor blink and similar messages belong to the source editor
		if m.inputHandler.CurrentMode() == inputtypes.ModeSource {
			var cmd tea.Cmd
			m.source, cmd = m.source.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State:     m.state,
		Workspace: m.workspace,
		Navigator: m.navigator,
	}
}

func (m *Model) hasUnsaved() bool {
	for _, b := range m.workspace.List() {
		if b.Modified() {
			return true
		}
	}
	return false
}

// resize fits the viewport and source editor to the window
func (m *Model) resize() {
	bodyHeight := views.BodyHeight(m.height, m.state.ShowTabs)
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.source.SetWidth(m.width)
	m.source.SetHeight(bodyHeight)
	m.renderedKey = ""
}

// refreshDocument re-lays out the active tab when its content, the tab or
// the width changed, and applies a pending scroll to the highlight
func (m *Model) refreshDocument() {
	if m.width == 0 {
		return
	}
	active := m.workspace.Active()

	if active.ID() != m.activeID {
		if m.activeID != "" {
			m.offsets[m.activeID] = m.viewport.YOffset
		}
		m.activeID = active.ID()
		m.renderedKey = ""
	}

	content := active.Content()
	key := fmt.Sprintf("%s:%d:%s", active.ID(), m.width, content)
	if key != m.renderedKey {
		offset := m.viewport.YOffset
		if saved, ok := m.offsets[active.ID()]; ok && m.renderedKey == "" {
			offset = saved
			delete(m.offsets, active.ID())
		}
		m.rendered = m.renderer.Document(content, m.width)
		m.viewport.SetContent(m.rendered.Content())
		m.viewport.SetYOffset(offset)
		m.renderedKey = key
	}

	if m.pendingScroll != nil {
		if line := m.rendered.HighlightLine; line >= 0 {
			m.viewport.SetYOffset(line - m.viewport.Height/2)
		}
		m.pendingScroll = nil
	}
}

// expandHome resolves a leading ~ in prompt input
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
