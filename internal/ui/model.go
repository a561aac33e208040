package ui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

const (
	optionsHeight       = 3
	statusHeight        = 1
	defaultTreeWidth    = 30
	defaultTickInterval = 250 * time.Millisecond
	minPaneWidth        = 12
)

var (
	blurBorderColor  = lipgloss.Color("#3b4261")
	focusBorderColor = lipgloss.Color("#7aa2f7")
	treeLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	treeIncluded     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	treeChanged      = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	treeSelected     = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1b26")).
				Background(lipgloss.Color("#7aa2f7")).
				Bold(true)
	treeSelectedInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457"))
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#87af87"))
	sendStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87af")).Reverse(true)
	quitStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f5f87")).Reverse(true)
	optionIdleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
)

// Model implements the Bubble Tea program around App.
type Model struct {
	app      *App
	treeVP   viewport.Model
	promptVP viewport.Model

	rootDir      string
	displayRoot  string
	modelName    string
	treeWidthPct int
	tickInterval time.Duration
	log          *slog.Logger

	width  int
	height int
	ready  bool
	action Action
	err    error

	watcher   *fsnotify.Watcher
	watchDirs []string
	watchChan chan tea.Msg
}

type tickMsg time.Time

// NewModel constructs the model with the provided initial state.
func NewModel(state State) *Model {
	treeWidth := state.TreeWidth
	if treeWidth <= 0 || treeWidth >= 90 {
		treeWidth = defaultTreeWidth
	}
	tickInterval := state.TickInterval
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	logger := state.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	treeVP := viewport.New(0, 0)
	treeVP.MouseWheelEnabled = false
	promptVP := viewport.New(0, 0)
	promptVP.MouseWheelEnabled = false

	return &Model{
		app: NewApp(
			NewFileBrowser(state.Store),
			NewPromptEditor(state.Prompt),
			NewOptionsBar(),
		),
		treeVP:       treeVP,
		promptVP:     promptVP,
		rootDir:      state.RootDir,
		displayRoot:  state.DisplayRoot,
		modelName:    state.Model,
		treeWidthPct: treeWidth,
		tickInterval: tickInterval,
		log:          logger,
		watchDirs:    state.WatchDirs,
	}
}

// App exposes the routed widget state.
func (m *Model) App() *App {
	return m.app
}

// Action is what ended the loop, or ActionNone while running.
func (m *Model) Action() Action {
	return m.action
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if len(m.watchDirs) > 0 {
		cmds = append(cmds, m.startWatching(m.watchDirs))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.app.HandleTick(time.Time(msg))
		m.refresh()
		return m, m.tick()

	case fileEventMsg:
		return m, m.handleFileEvent(msg)

	case fileWatchErrMsg:
		m.err = msg.err
		m.log.Warn("file watcher error", "error", msg.err)
		return m, m.waitForFileEvent()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		before := m.app.Focus()
		action := m.app.HandleKey(msg)
		if after := m.app.Focus(); after != before {
			m.log.Debug("focus changed", "from", before.String(), "to", after.String())
		}
		if action != ActionNone {
			m.action = action
			m.log.Info("interactive loop finished", "action", action.String())
			m.Close()
			return m, tea.Quit
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= optionsHeight+statusHeight {
		return
	}
	m.width = width
	m.height = height
	m.ready = true

	topHeight := height - optionsHeight - statusHeight
	treeWidth, promptWidth := m.paneWidths(width)

	m.treeVP.Width = max(treeWidth-2, 0)
	m.treeVP.Height = max(topHeight-2, 0)
	m.promptVP.Width = max(promptWidth-2, 0)
	m.promptVP.Height = max(topHeight-2, 0)
	m.refresh()
}

func (m *Model) paneWidths(total int) (int, int) {
	treeWidth := total * m.treeWidthPct / 100
	if treeWidth < minPaneWidth {
		treeWidth = min(minPaneWidth, total)
	}
	promptWidth := total - treeWidth
	return treeWidth, promptWidth
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.treeVP.SetContent(m.renderTree(m.treeVP.Width))
	m.ensureSelectionVisible()
	m.promptVP.SetContent(m.renderPrompt(m.promptVP.Width))
	m.promptVP.GotoBottom()
}

func (m *Model) ensureSelectionVisible() {
	cursor := m.app.FileBrowser().Cursor()
	if cursor < 0 || m.treeVP.Height == 0 {
		return
	}
	if cursor < m.treeVP.YOffset {
		m.treeVP.SetYOffset(cursor)
		return
	}
	bottom := m.treeVP.YOffset + m.treeVP.Height - 1
	if cursor > bottom {
		m.treeVP.SetYOffset(cursor - m.treeVP.Height + 1)
	}
}

// Close stops the file watcher. It is safe to call more than once.
func (m *Model) Close() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		m.log.Warn("close watcher", "error", err)
	}
	m.watcher = nil
}
