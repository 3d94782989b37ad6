package core

import (
	"math/rand"
	"time"
)

// Default timing values.
const (
	DefaultMinInterval = 100 * time.Millisecond
	DefaultLevelStep   = 100 * time.Millisecond
)

// lineScores is the base award for clearing 0..4 rows at once.
var lineScores = [5]int{0, 40, 100, 300, 1200}

// LineScore returns the award for clearing n rows at the given level.
// Clears larger than four rows score as four.
func LineScore(n, level int) int {
	if n <= 0 {
		return 0
	}
	return lineScores[min(n, 4)] * level
}

// LevelForLines returns the level reached after clearing the given total of rows.
func LevelForLines(lines int) int {
	return lines/10 + 1
}

// MatchConfig fixes the slots and gravity timing for a match.
type MatchConfig struct {
	Slots       []SlotSpec
	MinInterval time.Duration // Floor for every slot's gravity interval
	LevelStep   time.Duration // Interval reduction per level
}

// DefaultMatchConfig returns the standard two-slot layout.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Slots: []SlotSpec{
			{Name: "left", SpawnOffsetX: -3, BaseInterval: 1000 * time.Millisecond},
			{Name: "right", SpawnOffsetX: 3, BaseInterval: 1200 * time.Millisecond},
		},
		MinInterval: DefaultMinInterval,
		LevelStep:   DefaultLevelStep,
	}
}

// TimerHooks lets the driver of the match start and stop its clock when the
// match starts or ends.
type TimerHooks interface {
	StartTimer()
	StopTimer()
}

type noopHooks struct{}

func (noopHooks) StartTimer() {}
func (noopHooks) StopTimer()  {}

// Option configures a Match at construction.
type Option func(*Match)

// WithPieceSource replaces the default seeded random source.
func WithPieceSource(src PieceSource) Option {
	return func(m *Match) {
		if src != nil {
			m.source = src
		}
	}
}

// WithTimerHooks installs clock start/stop callbacks.
func WithTimerHooks(h TimerHooks) Option {
	return func(m *Match) {
		if h != nil {
			m.hooks = h
		}
	}
}

// Match is the aggregate of one game: the shared board, every slot's pieces
// and timers, and the shared score. It is not safe for concurrent use.
type Match struct {
	cfg    MatchConfig
	board  Board
	slots  []slot
	source PieceSource
	hooks  TimerHooks
	events []Event

	score int
	level int
	lines int

	gameOver bool
	paused   bool
	running  bool
}

// NewMatch creates an idle match. It panics if cfg has no slots.
func NewMatch(cfg MatchConfig, opts ...Option) *Match {
	if len(cfg.Slots) == 0 {
		panic("core: match needs at least one slot")
	}

	m := &Match{
		cfg:    cfg,
		slots:  make([]slot, len(cfg.Slots)),
		source: NewRandomSource(rand.New(rand.NewSource(0))),
		hooks:  noopHooks{},
		level:  1,
	}
	for i, spec := range cfg.Slots {
		m.slots[i].spec = spec
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// reset restores a fresh board, empty slots and zeroed totals.
func (m *Match) reset() {
	m.board = EmptyBoard()
	for i := range m.slots {
		m.slots[i] = slot{spec: m.slots[i].spec}
	}
	m.score = 0
	m.lines = 0
	m.level = 1
	m.gameOver = false
	m.paused = false
	m.events = nil
}

// StartGame resets the match, deals every slot's first pieces and starts the clock.
func (m *Match) StartGame() {
	m.reset()
	m.running = true
	m.hooks.StartTimer()

	for i := range m.slots {
		m.slots[i].next = m.newPiece(SlotID(i))
	}
	for i := range m.slots {
		if m.gameOver {
			break
		}
		m.spawn(SlotID(i))
	}
}

// ResetGame returns the match to its idle state and stops the clock.
func (m *Match) ResetGame() {
	m.reset()
	m.running = false
	m.hooks.StopTimer()
}

// TogglePause flips the paused flag.
func (m *Match) TogglePause() {
	m.paused = !m.paused
}

// Interval returns the current gravity interval for a slot.
func (m *Match) Interval(id SlotID) time.Duration {
	s := m.slot(id)
	if s == nil {
		return m.cfg.MinInterval
	}
	return max(m.cfg.MinInterval, s.spec.BaseInterval-time.Duration(m.level)*m.cfg.LevelStep)
}

// Tick advances every slot's gravity timer by dt. A slot whose timer reaches
// its interval moves down one row; the remainder carries into the next tick.
// Returns the events recorded since the last drain.
func (m *Match) Tick(dt time.Duration) []Event {
	if !m.running || m.paused || m.gameOver {
		return m.DrainEvents()
	}

	for i := range m.slots {
		if m.gameOver {
			break
		}
		s := &m.slots[i]
		if s.current == nil {
			continue
		}
		s.timer += dt
		if s.timer >= m.Interval(SlotID(i)) {
			m.gravityTick(SlotID(i))
		}
	}
	return m.DrainEvents()
}

// DrainEvents returns and forgets the events recorded so far.
func (m *Match) DrainEvents() []Event {
	events := m.events
	m.events = nil
	return events
}

func (m *Match) emit(kind EventKind, id SlotID, piece Kind, lines int) {
	m.events = append(m.events, Event{
		Kind:  kind,
		Slot:  id,
		Piece: piece,
		Lines: lines,
		Score: m.score,
		Level: m.level,
	})
}

func (m *Match) endGame(id SlotID) {
	m.gameOver = true
	m.running = false
	m.hooks.StopTimer()
	m.emit(EventGameOver, id, m.slots[id].current.Kind, 0)
}

// Board returns a copy of the static field.
func (m *Match) Board() Board {
	return m.board
}

// Current returns a copy of the slot's live piece, or nil.
func (m *Match) Current(id SlotID) *Tetromino {
	if s := m.slot(id); s != nil {
		return s.current.Clone()
	}
	return nil
}

// Next returns a copy of the slot's preview piece, or nil.
func (m *Match) Next(id SlotID) *Tetromino {
	if s := m.slot(id); s != nil {
		return s.next.Clone()
	}
	return nil
}

// Locks returns how many pieces the slot has locked this match.
func (m *Match) Locks(id SlotID) int {
	if s := m.slot(id); s != nil {
		return s.locks
	}
	return 0
}

// Slot returns the slot's fixed parameters.
func (m *Match) Slot(id SlotID) SlotSpec {
	if s := m.slot(id); s != nil {
		return s.spec
	}
	return SlotSpec{}
}

// SlotCount returns the number of slots.
func (m *Match) SlotCount() int { return len(m.slots) }

// Score returns the shared score.
func (m *Match) Score() int { return m.score }

// Level returns the current level, starting at 1.
func (m *Match) Level() int { return m.level }

// Lines returns the total rows cleared.
func (m *Match) Lines() int { return m.lines }

// GameOver reports whether the match has ended.
func (m *Match) GameOver() bool { return m.gameOver }

// Paused reports whether the match is paused.
func (m *Match) Paused() bool { return m.paused }

// Running reports whether the match has started and not yet ended or been reset.
func (m *Match) Running() bool { return m.running }
