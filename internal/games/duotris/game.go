// Package duotris provides the shared-well falling block game for two or
// three local players.
package duotris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duotris/internal/config"
	platformcore "github.com/vovakirdan/duotris/internal/core"
	"github.com/vovakirdan/duotris/internal/games/duotris/core"
	"github.com/vovakirdan/duotris/internal/registry"
)

// Mode selects the slot layout.
type Mode string

const (
	ModeDuo  Mode = "duotris"
	ModeTrio Mode = "trio"
)

// Game adapts a core.Match to the platform game interface.
type Game struct {
	mode  Mode
	rng   *rand.Rand
	cfg   config.DuotrisConfig
	match *core.Match
	clock *clock

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	tickRate int
	dt       time.Duration
	tick     uint64
}

// clock receives the match's start and stop callbacks.
type clock struct {
	running bool
}

func (c *clock) StartTimer() { c.running = true }
func (c *clock) StopTimer()  { c.running = false }

// Package-level variables for configuration
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger for config problems found at reset. Nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(string(ModeDuo), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeTrio), func() registry.Game {
		return NewTrio()
	})
}

// New creates a two-player game.
func New() *Game {
	return &Game{mode: ModeDuo}
}

// NewTrio creates a three-player game.
func NewTrio() *Game {
	return &Game{mode: ModeTrio}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeTrio {
		return "Duotris (Trio)"
	}
	return "Duotris"
}

// Reset loads configuration and starts a fresh match.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(g.tickRate)

	g.cfg = g.loadConfig()
	g.updateLayout()
	g.newMatch()
}

// loadConfig reads the mode's YAML config, falling back to built-in defaults.
func (g *Game) loadConfig() config.DuotrisConfig {
	cfg, err := config.Load(string(g.mode), configPath)
	if err != nil {
		logger.Warn("using default config", "game", g.ID(), "error", err)
		cfg = g.defaultConfig()
	}

	preset, err := config.ParseDifficultyPreset(difficultyPreset)
	if err != nil {
		logger.Warn("using normal difficulty", "game", g.ID(), "error", err)
		preset = config.DifficultyNormal
	}
	config.ApplyDuotrisPreset(&cfg, preset)
	return cfg
}

func (g *Game) defaultConfig() config.DuotrisConfig {
	if g.mode == ModeTrio {
		return config.DefaultTrioConfig()
	}
	return config.DefaultDuotrisConfig()
}

// newMatch builds a match seeded from the game RNG and starts it.
func (g *Game) newMatch() {
	g.clock = &clock{}
	g.match = core.NewMatch(
		g.cfg.ToMatchConfig(),
		core.WithPieceSource(core.NewRandomSource(g.rng)),
		core.WithTimerHooks(g.clock),
	)
	g.match.StartGame()
}

// Resize updates the layout without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateLayout()
}

// Step applies one tick of player input and advances gravity.
func (g *Game) Step(in platformcore.MultiInputFrame) platformcore.StepResult {
	g.tick++

	// Restart from any player
	if in.Any(platformcore.ActionRestart) {
		g.tick = 0
		g.rng = rand.New(rand.NewSource(g.rng.Int63()))
		g.newMatch()
		return platformcore.StepResult{State: g.State(), Events: g.convertEvents(g.match.DrainEvents())}
	}

	if in.Any(platformcore.ActionPause) && g.match.Running() {
		g.match.TogglePause()
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	for i := range g.match.SlotCount() {
		g.applyInput(core.SlotID(i), in.Player(platformcore.PlayerID(i)))
	}

	events := g.match.Tick(g.dt)
	return platformcore.StepResult{State: g.State(), Events: g.convertEvents(events)}
}

// applyInput replays one player's actions against their slot in the order
// they arrived. Rejected moves are silently ignored.
func (g *Game) applyInput(id core.SlotID, frame platformcore.InputFrame) {
	for _, a := range frame.Ordered() {
		switch a {
		case platformcore.ActionRotate:
			g.match.Rotate(id)
		case platformcore.ActionLeft:
			g.match.Move(id, -1, 0)
		case platformcore.ActionRight:
			g.match.Move(id, 1, 0)
		case platformcore.ActionDown:
			g.match.Move(id, 0, 1)
		case platformcore.ActionDrop:
			g.match.HardDrop(id)
		}
	}
}

// convertEvents maps engine events to platform events.
// Spawn notifications are internal and not forwarded.
func (g *Game) convertEvents(events []core.Event) []platformcore.GameEvent {
	var out []platformcore.GameEvent
	for _, ev := range events {
		ge := platformcore.GameEvent{
			Kind:   ev.Kind.String(),
			Player: platformcore.PlayerID(ev.Slot),
		}
		switch ev.Kind {
		case core.EventSpawned:
			continue
		case core.EventLinesCleared:
			ge.Value = ev.Lines
		case core.EventLevelUp:
			ge.Value = ev.Level
		default:
			ge.Value = ev.Score
		}
		out = append(out, ge)
	}
	return out
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.match.Score(),
		Level:    g.match.Level(),
		Lines:    g.match.Lines(),
		GameOver: g.match.GameOver(),
		Paused:   g.match.Paused(),
		Running:  g.clock.running,
	}
}

// Players returns the number of local players, one per slot.
// Before the first Reset it reports the mode's default layout.
func (g *Game) Players() int {
	if len(g.cfg.Slots) == 0 {
		return len(g.defaultConfig().Slots)
	}
	return len(g.cfg.Slots)
}

// LockCounts returns how many pieces each slot has locked this match.
func (g *Game) LockCounts() []int {
	counts := make([]int, g.match.SlotCount())
	for i := range counts {
		counts[i] = g.match.Locks(core.SlotID(i))
	}
	return counts
}

// Ticks returns the number of steps since the match started.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// Match exposes the underlying engine, mainly for tests and headless tools.
func (g *Game) Match() *core.Match {
	return g.match
}
