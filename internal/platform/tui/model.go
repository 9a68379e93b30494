package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
	"github.com/vovakirdan/doodle/internal/registry"
	"github.com/vovakirdan/doodle/internal/storage"
)

// Options configures a terminal game session.
type Options struct {
	Store        *storage.Store  // nil disables run history
	Logger       *log.Logger     // nil discards logs
	Watcher      *config.Watcher // nil disables hot reload
	Source       string          // recorded with every run
	HoldTicks    int
	InitialTicks int
}

// configMsg carries a reloaded config from the watcher.
type configMsg config.DoodleConfig

// configErrMsg carries a watcher failure.
type configErrMsg struct{ err error }

// Model is the Bubble Tea model for one game session.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	opts     Options
	logger   *log.Logger
	config   core.RuntimeConfig
	input    core.InputFrame
	hold     *HoldTracker
	keys     KeyMap
	help     help.Model
	state    core.GameState
	recorder *storage.Recorder
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		opts:     opts,
		logger:   logger,
		config:   cfg,
		input:    core.NewInputFrame(),
		hold:     NewHoldTracker(opts.HoldTicks, opts.InitialTicks),
		keys:     DefaultKeyMap(),
		help:     h,
		recorder: storage.NewRecorder(opts.Store, opts.Source, logger),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.seedBest()
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForConfig(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// seedBest loads the stored high score into games that display one.
func (m Model) seedBest() {
	b, ok := m.game.(registry.BestKeeper)
	if !ok || m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load high score", "game", m.game.ID(), "error", err)
		return
	}
	b.SetBest(best)
}

// waitForConfig blocks on the watcher until it has a new config or an error.
func waitForConfig(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return configMsg(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case configMsg:
		if c, ok := m.game.(registry.Configurable); ok {
			c.Configure(config.DoodleConfig(msg))
			m.logger.Info("config reloaded, applies from the next run", "game", m.game.ID())
		}
		return m, waitForConfig(m.opts.Watcher)

	case configErrMsg:
		m.logger.Warn("config reload failed", "error", msg.err)
		return m, waitForConfig(m.opts.Watcher)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("game quit", "game", m.game.ID(), "score", m.state.Score, "run", m.state.Run)
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight, core.ActionStop:
		m.hold.Press(action)
	case core.ActionPause, core.ActionRestart:
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.state.Paused {
		m.hold.Apply(&m.input)
	}

	result := m.game.Step(m.input)
	m.state = result.State
	m.recorder.Record(m.game.ID(), result.Events)

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text under ~/.doodle/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".doodle", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game above a one-line key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// SavedRuns returns how many runs were written to the store.
func (m Model) SavedRuns() int {
	return m.recorder.Saved()
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
