package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duotris/internal/core"
	"github.com/vovakirdan/duotris/internal/registry"
	"github.com/vovakirdan/duotris/internal/storage"
)

// footerHeight is the number of rows reserved below the game screen for help.
const footerHeight = 1

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// playerCounter is implemented by games that know how many local players they seat.
type playerCounter interface {
	Players() int
}

// matchSummary is implemented by games that can describe a finished match.
type matchSummary interface {
	LockCounts() []int
	Ticks() uint64
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	startedAt  time.Time
	ticking    bool // Whether a tick command is in flight
	recorded   bool // Whether the current game over has been saved
	embedded   bool // Hosted by a session model that handles back-to-menu
	quitting   bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for game events and store failures.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithEmbedded marks the model as hosted by another model. Back-to-menu then
// sets a flag instead of quitting the program.
func WithEmbedded() ModelOption {
	return func(m *Model) {
		m.embedded = true
	}
}

// NewModel creates a new Bubble Tea model for the given game and starts it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	termH := cfg.ScreenH
	cfg.ScreenH = max(termH-footerHeight, 1)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewMultiInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.game.Reset(m.config)
	if pc, ok := game.(playerCounter); ok {
		m.keys = m.keys.Limit(pc.Players())
	}
	m.gameState = m.game.State()
	m.ticking = m.gameState.Running
	m.startedAt = time.Now()
	m.logger.Info("game started", "game", game.ID(), "seed", cfg.Seed)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if !m.ticking {
		return nil
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if m.keys.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// With the clock stopped nothing else will consume the frame.
	if !m.ticking {
		return m.step()
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-footerHeight, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	// Games without in-place resize restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.ticking {
		return m, nil
	}
	return m.step()
}

// step runs one simulation step with the buffered input and decides whether
// the tick loop continues.
func (m Model) step() (tea.Model, tea.Cmd) {
	restarted := m.inputFrame.Any(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restarted {
		m.recorded = false
		m.startedAt = time.Now()
		m.logger.Info("game restarted", "game", m.game.ID())
	}
	m.logEvents(result.Events)

	if m.gameState.GameOver && !m.recorded {
		m.recordMatch()
		m.recorded = true
	}

	m.ticking = m.gameState.Running
	if !m.ticking {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// logEvents writes game events at debug level.
func (m *Model) logEvents(events []core.GameEvent) {
	for _, ev := range events {
		m.logger.Debug("game event",
			"game", m.game.ID(),
			"kind", ev.Kind,
			"player", int(ev.Player)+1,
			"value", ev.Value,
		)
	}
}

// recordMatch persists the score and match summary. Failures are logged and
// never interrupt the game.
func (m *Model) recordMatch() {
	m.logger.Info("game over",
		"game", m.game.ID(),
		"score", m.gameState.Score,
		"lines", m.gameState.Lines,
		"level", m.gameState.Level,
	)
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}

	rec := storage.MatchRecord{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		Level:    m.gameState.Level,
		Duration: time.Since(m.startedAt),
	}
	if s, ok := m.game.(matchSummary); ok {
		rec.SetLocks(s.LockCounts())
		rec.Ticks = int(s.Ticks())
	}
	if _, err := m.store.SaveMatch(rec); err != nil {
		m.logger.Warn("could not save match", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".duotris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Full help replaces the board until toggled off
	if m.help.ShowAll {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(centerText("C O N T R O L S", m.config.ScreenW))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n\n")
		b.WriteString(centerText("Press ? to return", m.config.ScreenW))
		return b.String()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (bool, error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
