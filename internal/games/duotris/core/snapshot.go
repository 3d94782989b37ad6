package core

// SlotSnapshot captures one slot's visible state.
type SlotSnapshot struct {
	Name     string
	Current  string // Kind letter, empty when no live piece
	Next     string
	X, Y     int
	Rotation int
	Locks    int
}

// MatchSnapshot captures the complete match state for determinism testing.
type MatchSnapshot struct {
	Score    int
	Level    int
	Lines    int
	GameOver bool
	Paused   bool
	Running  bool
	Filled   int
	Rows     []string
	Slots    []SlotSnapshot
}

// Snapshot returns the current match snapshot.
func (m *Match) Snapshot() MatchSnapshot {
	snap := MatchSnapshot{
		Score:    m.score,
		Level:    m.level,
		Lines:    m.lines,
		GameOver: m.gameOver,
		Paused:   m.paused,
		Running:  m.running,
		Filled:   m.board.FilledCount(),
		Rows:     m.board.Rows(),
		Slots:    make([]SlotSnapshot, len(m.slots)),
	}
	for i, s := range m.slots {
		ss := SlotSnapshot{Name: s.spec.Name, Locks: s.locks}
		if s.current != nil {
			ss.Current = s.current.Kind.String()
			ss.X, ss.Y = s.current.Pos.X, s.current.Pos.Y
			ss.Rotation = s.current.Rotation
		}
		if s.next != nil {
			ss.Next = s.next.Kind.String()
		}
		snap.Slots[i] = ss
	}
	return snap
}
