package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"booksearch/internal/config"
	"booksearch/internal/eventbus"
	"booksearch/internal/ui/commands"
	"booksearch/internal/ui/input"
	"booksearch/internal/ui/input/keys"
	inputtypes "booksearch/internal/ui/input/types"
	"booksearch/internal/ui/logic"
	"booksearch/internal/ui/state"
	"booksearch/internal/ui/viewmodels"
	"booksearch/internal/ui/views"
)

// statusTimeout is how long transient status messages stay up
const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width        int
	height       int
	help         help.Model
	spinner      spinner.Model
	showHelp     bool   // in-app help popup, used when the pager is unavailable
	inPagerMode  bool   // tracks if we're currently in pager mode
	initialQuery string // searched on startup when set
	statusSeq    int    // bumped by every setStatus

	renderer     *views.Renderer       // view renderer
	viewModel    *viewmodels.ViewModel // view model for rendering
	cmdExecutor  *commands.Executor    // command executor
	inputHandler *input.Handler        // input handling
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Requests and timers started by the model
// are cancelled when ctx is.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, searcher commands.Searcher, opener commands.URLOpener) *Model {
	appState := state.NewAppState(cfg.UISettings.PageSize)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpOps:      NewHelpOps(),
	}
	m.helpRenderer = NewHelpRenderer(m.inputHandler.Keys())

	m.cmdExecutor = commands.NewExecutor(ctx, &commands.CommandContext{
		State:         appState,
		Bus:           bus,
		Searcher:      searcher,
		Opener:        opener,
		LoadMoreDelay: cfg.UISettings.LoadMoreDelay(),
	})

	m.viewModel = viewmodels.NewViewModel(appState, cfg, *m.inputHandler.TextInput())

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// SetInitialQuery makes the model search for q as soon as it starts
func (m *Model) SetInitialQuery(q string) {
	m.initialQuery = q
}

// State exposes the application state, read-only by convention
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.inputHandler.Init()}
	if m.initialQuery != "" {
		m.inputHandler.SetText(m.initialQuery)
		m.state.SetQuery(m.initialQuery)
		cmds = append(cmds, m.submit(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(msg.Width - 20)
		m.ensureSelectedVisible()
		return m, nil

	case tea.KeyMsg:
		// The help popup closes on its own keys and swallows the rest
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q", "enter":
				m.showHelp = false
			}
			return m, nil
		}

		ctx := m.inputContext()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	mode := m.inputHandler.CurrentMode()
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInputMode(mode)
	m.viewModel.UpdateTextInput(*m.inputHandler.TextInput())
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetHelpLine(m.helpLine(mode))

	vs := m.viewModel.BuildViewState()
	if m.showHelp {
		vs.HelpPopup = m.helpRenderer.RenderHelpContent()
	}
	return m.renderer.Render(vs)
}

func (m *Model) helpLine(mode inputtypes.Mode) string {
	km := m.inputHandler.Keys()
	switch mode {
	case inputtypes.ModeBrowse:
		return m.help.View(keys.BrowseHelp{KeyMap: km})
	case inputtypes.ModeNotice:
		return m.help.View(keys.NoticeHelp{KeyMap: km})
	default:
		return m.help.View(keys.QueryHelp{KeyMap: km})
	}
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{State: m.state}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.state.SetQuery(a.Text)

	case inputtypes.SubmitTextAction:
		return m.submit(a.Text)

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.LoadMoreAction:
		return m.cmdExecutor.ExecuteExtend()

	case inputtypes.OpenLinkAction:
		rec, ok := m.state.SelectedRecord()
		if !ok {
			return nil
		}
		return m.cmdExecutor.ExecuteOpen(m.viewModel.BuildCard(rec).LinkURL)

	case inputtypes.OpenCoverAction:
		rec, ok := m.state.SelectedRecord()
		if !ok {
			return nil
		}
		card := m.viewModel.BuildCard(rec)
		if !card.HasCover() {
			return m.setStatus(views.NoCoverText, false)
		}
		return m.cmdExecutor.ExecuteOpen(card.CoverURL)

	case inputtypes.DismissNoticeAction:
		m.state.DismissNotice()
		return m.inputHandler.DismissNotice(m.inputContext())

	case inputtypes.ShowHelpAction:
		if m.program != nil {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
		}
		m.showHelp = true

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

// submit starts a search, or raises the empty-field notice
func (m *Model) submit(text string) tea.Cmd {
	cmd, err := m.cmdExecutor.ExecuteSearch(text)
	if errors.Is(err, state.ErrEmptyTerm) {
		m.state.ShowNotice(views.EmptyTermNotice)
		m.inputHandler.ShowNotice(m.inputContext())
		return nil
	}
	if err != nil {
		logrus.WithError(err).Error("search not started")
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

var directions = map[string]logic.Direction{
	"up":       logic.Up,
	"down":     logic.Down,
	"left":     logic.Left,
	"right":    logic.Right,
	"pageup":   logic.PageUp,
	"pagedown": logic.PageDown,
	"home":     logic.Home,
	"end":      logic.End,
}

func (m *Model) navigator() *logic.Navigator {
	layout := views.ComputeLayout(m.width, m.height)
	count := m.state.VisibleCount
	if m.state.Searching {
		count = 0
	}
	return logic.NewNavigator(layout.Columns, layout.VisibleRows, count)
}

func (m *Model) navigate(direction string) {
	d, ok := directions[direction]
	if !ok {
		return
	}
	nav := m.navigator()
	m.state.SetSelected(nav.Move(m.state.SelectedIndex, d))
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	m.state.ViewportOffset = m.navigator().EnsureVisible(m.state.SelectedIndex, m.state.ViewportOffset)
}

// setStatus shows a transient status message
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.state.StatusMessage = msg
	m.viewModel.SetStatusError(isErr)
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.SearchResultMsg:
		if m.cmdExecutor.ApplySearchResult(msg) && msg.Err == nil {
			// The field is cleared once results arrive
			m.inputHandler.SetText("")
		}
		m.ensureSelectedVisible()
		return m, nil

	case commands.WindowExtendedMsg:
		m.cmdExecutor.ApplyWindowExtended(msg)
		return m, nil

	case commands.LinkOpenedMsg:
		m.cmdExecutor.ApplyLinkOpened(msg)
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not open link: %v", msg.Err), true)
		}
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is loading
		if !m.state.Searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			logrus.WithError(msg.err).Warn("help pager failed, falling back to popup")
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq != m.statusSeq {
			return m, nil
		}
		m.state.StatusMessage = ""
		m.viewModel.SetStatusError(false)
		return m, nil

	case quitMsg:
		m.cmdExecutor.Shutdown()
		return m, tea.Quit

	default:
		// Cursor blink and anything else the search field understands
		return m, m.inputHandler.Update(msg)
	}
}
