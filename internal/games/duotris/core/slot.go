package core

import (
	"iter"
	"time"
)

// SlotID indexes a slot within a match, in construction order.
type SlotID int

// SlotSpec is the fixed per-slot parameter set.
type SlotSpec struct {
	Name         string
	SpawnOffsetX int           // Added to the centred spawn column
	BaseInterval time.Duration // Gravity interval before level speedup
}

// direction is the side of the board the slot spawns toward: -1 left, +1 right.
func (s SlotSpec) direction() int {
	if s.SpawnOffsetX < 0 {
		return -1
	}
	return 1
}

// slot is the per-lane piece state owned by a Match.
type slot struct {
	spec    SlotSpec
	current *Tetromino
	next    *Tetromino
	timer   time.Duration
	locks   int
}

func (m *Match) slot(id SlotID) *slot {
	if id < 0 || int(id) >= len(m.slots) {
		return nil
	}
	return &m.slots[id]
}

// others yields the live pieces of every slot except id.
func (m *Match) others(id SlotID) iter.Seq[*Tetromino] {
	return func(yield func(*Tetromino) bool) {
		for i := range m.slots {
			if SlotID(i) == id || m.slots[i].current == nil {
				continue
			}
			if !yield(m.slots[i].current) {
				return
			}
		}
	}
}

func (m *Match) overlapsOthers(id SlotID, t *Tetromino, pos Position) bool {
	for other := range m.others(id) {
		if OverlapsPiece(t, pos, other) {
			return true
		}
	}
	return false
}

// blocked reports whether t at pos collides with the board and, separately,
// with another slot's live piece.
func (m *Match) blocked(id SlotID, t *Tetromino, pos Position) (board, piece bool) {
	return OverlapsBoard(t, pos, &m.board), m.overlapsOthers(id, t, pos)
}

func (m *Match) newPiece(id SlotID) *Tetromino {
	return NewTetromino(m.source.Next(id), m.slots[id].spec.SpawnOffsetX)
}

// spawn promotes the slot's next piece and draws a new one.
// A spawn that overlaps another live piece is shifted once toward the slot's
// side; a spawn that overlaps the board ends the match.
func (m *Match) spawn(id SlotID) {
	s := &m.slots[id]
	piece := s.next
	if piece == nil {
		piece = m.newPiece(id)
	}
	s.next = m.newPiece(id)

	if m.overlapsOthers(id, piece, piece.Pos) {
		dir := s.spec.direction()
		shift := 3
		if (dir < 0 && piece.Pos.X > BoardWidth/2) || (dir > 0 && piece.Pos.X < BoardWidth/2) {
			shift = 2
		}
		piece.Pos.X += dir * shift
	}

	s.current = piece
	s.timer = 0
	m.emit(EventSpawned, id, piece.Kind, 0)

	if OverlapsBoard(piece, piece.Pos, &m.board) {
		m.endGame(id)
	}
}

// Move shifts the slot's piece by (dx, dy) when nothing is in the way.
// A blocked downward move locks the piece only if the board is one of the
// blockers; a piece resting on a neighbour stays live.
func (m *Match) Move(id SlotID, dx, dy int) bool {
	s := m.slot(id)
	if s == nil || m.gameOver || m.paused || s.current == nil {
		return false
	}

	p := s.current
	target := Position{X: p.Pos.X + dx, Y: p.Pos.Y + dy}
	boardHit, pieceHit := m.blocked(id, p, target)
	if !boardHit && !pieceHit {
		p.Pos = target
		return true
	}
	if dy > 0 && boardHit {
		m.lock(id)
	}
	return false
}

// Rotate turns the slot's piece clockwise, trying each kick offset in order.
// The first clear placement replaces the piece; otherwise nothing changes.
func (m *Match) Rotate(id SlotID) bool {
	s := m.slot(id)
	if s == nil || m.gameOver || m.paused || s.current == nil {
		return false
	}

	p := s.current
	shape := RotateClockwise(p.Shape)
	for _, kick := range Kicks(p.Kind, p.Rotation) {
		candidate := &Tetromino{
			Kind:     p.Kind,
			Shape:    shape,
			Color:    p.Color,
			Pos:      p.Pos.Add(kick),
			Rotation: (p.Rotation + 1) % 4,
		}
		if boardHit, pieceHit := m.blocked(id, candidate, candidate.Pos); !boardHit && !pieceHit {
			s.current = candidate
			return true
		}
	}
	return false
}

// HardDrop drops the slot's piece as far as board and neighbours allow,
// scoring one point per row. The piece locks only if the board is directly
// beneath it. Returns the number of rows dropped.
func (m *Match) HardDrop(id SlotID) int {
	s := m.slot(id)
	if s == nil || m.gameOver || m.paused || s.current == nil {
		return 0
	}

	p := s.current
	rows := 0
	for {
		next := Position{X: p.Pos.X, Y: p.Pos.Y + 1}
		if boardHit, pieceHit := m.blocked(id, p, next); boardHit || pieceHit {
			break
		}
		p.Pos = next
		rows++
	}
	m.score += rows

	if OverlapsBoard(p, Position{X: p.Pos.X, Y: p.Pos.Y + 1}, &m.board) {
		m.lock(id)
	}
	return rows
}

// gravityTick consumes one interval from the slot's timer and moves its piece down.
func (m *Match) gravityTick(id SlotID) {
	s := &m.slots[id]
	s.timer -= m.Interval(id)
	m.Move(id, 0, 1)
}

// lock writes the slot's piece into the board, clears lines and respawns.
func (m *Match) lock(id SlotID) {
	s := &m.slots[id]
	p := s.current
	if p == nil {
		return
	}

	m.board = m.board.Lock(p)
	s.current = nil
	s.locks++
	m.emit(EventLocked, id, p.Kind, 0)

	board, cleared := m.board.ClearFullLines()
	m.board = board
	if cleared > 0 {
		prevLevel := m.level
		m.score += LineScore(cleared, m.level)
		m.lines += cleared
		m.level = LevelForLines(m.lines)
		m.emit(EventLinesCleared, id, p.Kind, cleared)
		if m.level != prevLevel {
			m.emit(EventLevelUp, id, p.Kind, 0)
		}
	}

	if !m.gameOver {
		m.spawn(id)
	}
}

// GhostPosition returns where the slot's piece would land if hard-dropped now.
func (m *Match) GhostPosition(id SlotID) (Position, bool) {
	s := m.slot(id)
	if s == nil || s.current == nil {
		return Position{}, false
	}

	p := s.current
	pos := p.Pos
	for {
		next := Position{X: pos.X, Y: pos.Y + 1}
		if boardHit, pieceHit := m.blocked(id, p, next); boardHit || pieceHit {
			return pos, true
		}
		pos = next
	}
}
