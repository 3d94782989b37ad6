package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHooks struct {
	starts int
	stops  int
}

func (h *recordingHooks) StartTimer() { h.starts++ }
func (h *recordingHooks) StopTimer()  { h.stops++ }

func newTestMatch(t *testing.T, cfg MatchConfig, perSlot ...[]Kind) (*Match, *recordingHooks) {
	t.Helper()
	hooks := &recordingHooks{}
	m := NewMatch(cfg, WithPieceSource(NewSlotSequenceSource(perSlot...)), WithTimerHooks(hooks))
	m.StartGame()
	require.False(t, m.GameOver())
	return m, hooks
}

// place puts a spawn-orientation piece of kind k at (x, y) in the slot.
func place(m *Match, id SlotID, k Kind, x, y int) {
	p := NewTetromino(k, 0)
	p.Pos = Position{X: x, Y: y}
	m.slots[id].current = p
}

func nonEmptyRows(b *Board) int {
	n := 0
	for y := range BoardHeight {
		for x := range BoardWidth {
			if b[y][x].Filled {
				n++
				break
			}
		}
	}
	return n
}

func TestStartGameSpawnsEverySlot(t *testing.T) {
	m, hooks := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindI})

	assert.True(t, m.Running())
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, m.Level())

	left := m.Current(0)
	require.NotNil(t, left)
	assert.Equal(t, KindO, left.Kind)
	assert.Equal(t, Position{X: 1, Y: 0}, left.Pos)

	right := m.Current(1)
	require.NotNil(t, right)
	assert.Equal(t, KindI, right.Kind)
	assert.Equal(t, Position{X: 6, Y: 0}, right.Pos)

	require.NotNil(t, m.Next(0))
	require.NotNil(t, m.Next(1))

	events := m.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventSpawned, events[0].Kind)
	assert.Equal(t, SlotID(0), events[0].Slot)
	assert.Equal(t, SlotID(1), events[1].Slot)
}

func TestHardDropStacksUntilGameOver(t *testing.T) {
	m, hooks := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindI})

	for i := range 20 {
		before := m.Score()
		rows := m.HardDrop(0)

		expected := 0
		if i < 10 {
			expected = 18 - 2*i
		}
		assert.Equal(t, expected, rows, "drop %d", i)
		assert.Equal(t, before+rows, m.Score(), "drop %d", i)

		if i == 9 {
			assert.True(t, m.GameOver(), "11th spawn overlaps the stack")
		}
	}

	assert.True(t, m.GameOver())
	assert.False(t, m.Running())
	assert.Equal(t, 90, m.Score())
	assert.Equal(t, 0, m.Lines())
	assert.Equal(t, 1, hooks.stops)

	b := m.Board()
	assert.Equal(t, 40, b.FilledCount())
	assert.Equal(t, 10, m.Locks(0))
	assert.Equal(t, 0, m.Locks(1))

	// The right slot's I piece was never disturbed.
	right := m.Current(1)
	require.NotNil(t, right)
	assert.Equal(t, Position{X: 6, Y: 0}, right.Pos)

	var sawGameOver bool
	for _, e := range m.DrainEvents() {
		if e.Kind == EventGameOver {
			sawGameOver = true
			assert.Equal(t, SlotID(0), e.Slot)
		}
	}
	assert.True(t, sawGameOver)
}

func TestNeighbourBlockedPieceStaysLive(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})

	place(m, 0, KindO, 0, 18) // resting on the floor
	place(m, 1, KindO, 0, 16) // directly on top of slot 0

	assert.False(t, m.Move(1, 0, 1), "blocked by neighbour")
	assert.Equal(t, 0, m.Locks(1))
	require.NotNil(t, m.Current(1))
	assert.Equal(t, Position{X: 0, Y: 16}, m.Current(1).Pos)

	assert.False(t, m.Move(0, 0, 1), "blocked by floor")
	assert.Equal(t, 1, m.Locks(0))
	board := m.Board()
	assert.True(t, board.At(0, 19).Filled)
	assert.Equal(t, Position{X: 1, Y: 0}, m.Current(0).Pos, "slot 0 respawned")

	// Slot 1 now rests on locked cells and locks on its next downward move.
	assert.False(t, m.Move(1, 0, 1))
	assert.Equal(t, 1, m.Locks(1))
	board = m.Board()
	assert.True(t, board.At(0, 17).Filled)
}

func TestNeighbourDeadlockNeverLocks(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})

	// Slot 1 sits on slot 0, which is never moved.
	place(m, 0, KindO, 3, 10)
	place(m, 1, KindO, 3, 8)

	for range 5 {
		m.Move(1, 0, 1)
	}
	assert.Equal(t, 0, m.Locks(0))
	assert.Equal(t, 0, m.Locks(1))
	assert.Equal(t, 8, m.Current(1).Pos.Y)
}

func TestHardDropOntoNeighbourDoesNotLock(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})

	place(m, 0, KindO, 4, 10)
	place(m, 1, KindO, 4, 0)

	rows := m.HardDrop(1)
	assert.Equal(t, 8, rows)
	assert.Equal(t, 0, m.Locks(1))
	require.NotNil(t, m.Current(1))
	assert.Equal(t, Position{X: 4, Y: 8}, m.Current(1).Pos)
}

func TestCompletingRowClearsExactlyOne(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindI})

	for x := range 4 {
		m.board[19][x] = Cell{Filled: true, Color: ColorRed}
	}
	m.board[18][0] = Cell{Filled: true, Color: ColorGreen}

	place(m, 0, KindO, 4, 0)
	assert.Equal(t, 18, m.HardDrop(0))
	assert.Equal(t, 1, m.Locks(0))

	before := m.Board()
	require.Equal(t, 0, before.FullRows())
	require.Equal(t, 2, nonEmptyRows(&before))

	place(m, 1, KindI, 6, 0)
	assert.Equal(t, 18, m.HardDrop(1))

	after := m.Board()
	assert.Equal(t, 1, m.Lines())
	assert.Equal(t, 18+18+40, m.Score())
	assert.Equal(t, 0, after.FullRows())
	assert.Equal(t, 1, nonEmptyRows(&after))

	// Row 18 shifted down into row 19.
	assert.Equal(t, Cell{Filled: true, Color: ColorGreen}, after.At(0, 19))
	assert.Equal(t, ColorYellow, after.At(4, 19).Color)
	assert.Equal(t, ColorYellow, after.At(5, 19).Color)
	assert.False(t, after.At(6, 19).Filled)
	for x := range BoardWidth {
		assert.False(t, after.At(x, 0).Filled)
	}

	var cleared []Event
	for _, e := range m.DrainEvents() {
		if e.Kind == EventLinesCleared {
			cleared = append(cleared, e)
		}
	}
	require.Len(t, cleared, 1)
	assert.Equal(t, 1, cleared[0].Lines)
	assert.Equal(t, SlotID(1), cleared[0].Slot)
}

func TestLineScoreUsesLevelBeforeClear(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindI}, []Kind{KindO})
	m.lines = 9

	for x := range 6 {
		m.board[19][x] = Cell{Filled: true, Color: ColorRed}
	}
	place(m, 0, KindI, 6, 18)
	before := m.Score()
	m.Move(0, 0, 1)

	assert.Equal(t, 10, m.Lines())
	assert.Equal(t, 2, m.Level())
	assert.Equal(t, before+40, m.Score(), "scored at level 1")

	var levelUp bool
	for _, e := range m.DrainEvents() {
		if e.Kind == EventLevelUp {
			levelUp = true
			assert.Equal(t, 2, e.Level)
		}
	}
	assert.True(t, levelUp)
}

func TestRotateWithKick(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindI}, []Kind{KindO})

	vertical := &Tetromino{
		Kind:     KindI,
		Shape:    RotateClockwise(KindI.BaseShape()),
		Color:    ColorCyan,
		Pos:      Position{X: -2, Y: 5},
		Rotation: 1,
	}
	require.False(t, OverlapsBoard(vertical, vertical.Pos, &m.board))
	m.slots[0].current = vertical

	require.True(t, m.Rotate(0))
	p := m.Current(0)
	assert.Equal(t, 2, p.Rotation)
	assert.Equal(t, Position{X: 0, Y: 5}, p.Pos, "third kick (+2,0) clears the wall")
	assert.Equal(t, 4, p.Shape.Width())
}

func TestRotateRejectedLeavesPiece(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindT}, []Kind{KindO})

	// Fill the board except for the exact cells of a T at (3, 9).
	for y := range BoardHeight {
		for x := range BoardWidth {
			m.board[y][x] = Cell{Filled: true, Color: ColorRed}
		}
	}
	place(m, 0, KindT, 3, 9)
	for _, c := range m.slots[0].current.Cells() {
		m.board[c.Y][c.X] = Cell{}
	}
	m.slots[1].current = nil

	before := m.Current(0)
	assert.False(t, m.Rotate(0))
	after := m.Current(0)
	assert.Equal(t, before.Pos, after.Pos)
	assert.Equal(t, before.Rotation, after.Rotation)
	assert.True(t, before.Shape.Equal(after.Shape))
}

func TestRotateOKeepsFootprint(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})

	place(m, 0, KindO, 2, 5)
	require.True(t, m.Rotate(0))
	p := m.Current(0)
	assert.Equal(t, 1, p.Rotation)
	assert.Equal(t, Position{X: 2, Y: 5}, p.Pos)
}

func TestMoveSideways(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})
	place(m, 0, KindO, 0, 5)
	place(m, 1, KindO, 2, 5)

	assert.False(t, m.Move(0, -1, 0), "wall")
	assert.False(t, m.Move(0, 1, 0), "neighbour")
	assert.True(t, m.Move(1, 1, 0))
	assert.True(t, m.Move(0, 1, 0))
	assert.Equal(t, 0, m.Locks(0))
}

func TestOperationsIgnoredWhenPausedOrOver(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})
	m.DrainEvents()

	m.TogglePause()
	require.True(t, m.Paused())
	snap := m.Snapshot()
	assert.False(t, m.Move(0, 1, 0))
	assert.False(t, m.Rotate(0))
	assert.Equal(t, 0, m.HardDrop(0))
	assert.Empty(t, m.Tick(10*time.Second))
	assert.Equal(t, snap, m.Snapshot())

	m.TogglePause()
	assert.False(t, m.Paused())

	m.gameOver = true
	assert.False(t, m.Move(0, 1, 0))
	assert.Equal(t, 0, m.HardDrop(0))

	assert.False(t, m.Move(SlotID(7), 1, 0), "unknown slot")
}

func TestTickKeepsRemainder(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})
	m.DrainEvents()

	require.Equal(t, 900*time.Millisecond, m.Interval(0))
	require.Equal(t, 1100*time.Millisecond, m.Interval(1))

	m.Tick(600 * time.Millisecond)
	assert.Equal(t, 0, m.Current(0).Pos.Y)
	assert.Equal(t, 0, m.Current(1).Pos.Y)

	m.Tick(600 * time.Millisecond)
	assert.Equal(t, 1, m.Current(0).Pos.Y)
	assert.Equal(t, 1, m.Current(1).Pos.Y)
	assert.Equal(t, 300*time.Millisecond, m.slots[0].timer)
	assert.Equal(t, 100*time.Millisecond, m.slots[1].timer)

	// At most one gravity step per slot per tick.
	m.Tick(10 * time.Second)
	assert.Equal(t, 2, m.Current(0).Pos.Y)
	assert.Equal(t, 2, m.Current(1).Pos.Y)
}

func TestTickLocksAndRespawns(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindI})
	m.DrainEvents()
	place(m, 0, KindO, 0, 18)

	events := m.Tick(m.Interval(0))
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventLocked, EventSpawned}, kinds)
	assert.Equal(t, time.Duration(0), m.slots[0].timer, "spawn resets the timer")
}

func TestIntervalFloor(t *testing.T) {
	m := NewMatch(DefaultMatchConfig())
	m.level = 15
	assert.Equal(t, DefaultMinInterval, m.Interval(0))
	assert.Equal(t, DefaultMinInterval, m.Interval(1))

	m.level = 3
	assert.Equal(t, 700*time.Millisecond, m.Interval(0))
}

func TestTickIdleBeforeStart(t *testing.T) {
	m := NewMatch(DefaultMatchConfig())
	assert.False(t, m.Running())
	assert.Empty(t, m.Tick(time.Second))
	assert.Nil(t, m.Current(0))
}

func TestResetGameClearsEverything(t *testing.T) {
	m, hooks := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindI})
	m.HardDrop(0)
	m.TogglePause()
	m.gameOver = true
	m.lines = 12
	m.level = 2

	m.ResetGame()
	assert.Equal(t, 1, hooks.stops)
	assert.False(t, m.Running())
	assert.False(t, m.Paused())
	assert.False(t, m.GameOver())
	assert.Equal(t, 0, m.Score())
	assert.Equal(t, 0, m.Lines())
	assert.Equal(t, 1, m.Level())
	b := m.Board()
	assert.Equal(t, 0, b.FilledCount())
	assert.Nil(t, m.Current(0))
	assert.Nil(t, m.Next(1))
	assert.Equal(t, 0, m.Locks(0))
}

func TestSpawnShiftTowardSlotSide(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Slots = []SlotSpec{
		{Name: "left", SpawnOffsetX: -3, BaseInterval: time.Second},
		{Name: "centre", SpawnOffsetX: 0, BaseInterval: time.Second},
	}
	m, _ := newTestMatch(t, cfg, []Kind{KindO}, []Kind{KindO})

	place(m, 0, KindO, 4, 0)
	m.spawn(1)
	require.False(t, m.GameOver())
	assert.Equal(t, Position{X: 6, Y: 0}, m.Current(1).Pos, "x=4 sits left of centre, shift by 2")
}

func TestSpawnShiftOffBoardEndsMatch(t *testing.T) {
	m, hooks := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})

	place(m, 1, KindO, 1, 0)
	m.spawn(0)
	assert.True(t, m.GameOver())
	assert.Equal(t, -2, m.Current(0).Pos.X)
	assert.Equal(t, 1, hooks.stops)
}

func TestSpawnOverlappingNeighbourOnlyIsNotGameOver(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Slots = []SlotSpec{
		{Name: "left", SpawnOffsetX: -3, BaseInterval: time.Second},
		{Name: "centre", SpawnOffsetX: 0, BaseInterval: time.Second},
	}
	m, _ := newTestMatch(t, cfg, []Kind{KindO}, []Kind{KindI})

	// The centre I spans columns 3-6 on row 1; after a +2 shift it spans 5-8
	// and still overlaps the neighbour in columns 5 and 6.
	place(m, 0, KindO, 5, 0)
	m.spawn(1)
	assert.False(t, m.GameOver())
	assert.Equal(t, 5, m.Current(1).Pos.X)
	assert.True(t, OverlapsPiece(m.slots[1].current, m.slots[1].current.Pos, m.slots[0].current))
}

func TestGhostPositionIdempotent(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindT}, []Kind{KindO})
	snap := m.Snapshot()

	first, ok := m.GhostPosition(0)
	require.True(t, ok)
	second, ok := m.GhostPosition(0)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, snap, m.Snapshot())
	assert.Equal(t, 0, m.Current(0).Pos.Y)
	assert.Equal(t, 18, first.Y, "T is two rows tall inside a three-row box")
}

func TestGhostPositionRestsOnNeighbour(t *testing.T) {
	m, _ := newTestMatch(t, DefaultMatchConfig(), []Kind{KindO}, []Kind{KindO})
	place(m, 0, KindO, 4, 12)
	place(m, 1, KindO, 4, 0)

	pos, ok := m.GhostPosition(1)
	require.True(t, ok)
	assert.Equal(t, Position{X: 4, Y: 10}, pos)

	rows := m.HardDrop(1)
	assert.Equal(t, 10, rows)
	assert.Equal(t, pos, m.Current(1).Pos)

	m.slots[0].current = nil
	_, ok = m.GhostPosition(0)
	assert.False(t, ok)
}

func TestNewMatchWithoutSlotsPanics(t *testing.T) {
	assert.Panics(t, func() { NewMatch(MatchConfig{}) })
}

func TestThreeSlotMatch(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Slots = append(cfg.Slots, SlotSpec{Name: "middle", SpawnOffsetX: 0, BaseInterval: 1100 * time.Millisecond})
	m, _ := newTestMatch(t, cfg, []Kind{KindO}, []Kind{KindO}, []Kind{KindO})

	require.Equal(t, 3, m.SlotCount())
	assert.Equal(t, Position{X: 1, Y: 0}, m.Current(0).Pos)
	assert.Equal(t, Position{X: 7, Y: 0}, m.Current(1).Pos)
	assert.Equal(t, Position{X: 4, Y: 0}, m.Current(2).Pos)

	// The middle piece is hemmed in by nothing and drops to the floor.
	assert.Equal(t, 18, m.HardDrop(2))
	assert.Equal(t, 1, m.Locks(2))
}
