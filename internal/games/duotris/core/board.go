// Package core provides the rules engine for the shared-board falling-block game.
// This package is UI-agnostic, deterministic and has no notion of wall-clock time
// beyond the durations handed to Match.Tick.
package core

import "strings"

// Board dimensions in cells.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Cell is one square of the static field.
type Cell struct {
	Filled bool
	Color  Color
}

// Board is the static field of locked cells, indexed [y][x] with y=0 at the top.
// It is a plain array so assignment yields an independent copy; Lock and
// ClearFullLines return new boards and never touch the receiver.
type Board [BoardHeight][BoardWidth]Cell

// EmptyBoard returns a board with every cell empty.
func EmptyBoard() Board {
	return Board{}
}

// IsOccupied reports whether (x, y) blocks a piece.
// Side walls and the floor are solid; rows above the board (y < 0) are open.
func (b *Board) IsOccupied(x, y int) bool {
	if x < 0 || x >= BoardWidth || y >= BoardHeight {
		return true
	}
	if y < 0 {
		return false
	}
	return b[y][x].Filled
}

// At returns the cell at (x, y), or an empty cell when out of range.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return Cell{}
	}
	return b[y][x]
}

// Lock returns a copy of the board with the piece's cells written in its color.
// Cells outside the board are dropped.
func (b *Board) Lock(t *Tetromino) Board {
	next := *b
	for _, c := range t.Cells() {
		if c.X < 0 || c.X >= BoardWidth || c.Y < 0 || c.Y >= BoardHeight {
			continue
		}
		next[c.Y][c.X] = Cell{Filled: true, Color: t.Color}
	}
	return next
}

// RowFull reports whether every cell of row y is filled.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= BoardHeight {
		return false
	}
	for x := range BoardWidth {
		if !b[y][x].Filled {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row, compacting the remaining rows toward
// the floor in their original order. Empty rows fill the top.
// Returns the new board and the number of rows removed.
func (b *Board) ClearFullLines() (Board, int) {
	var next Board
	write := BoardHeight - 1
	cleared := 0
	for y := BoardHeight - 1; y >= 0; y-- {
		if b.RowFull(y) {
			cleared++
			continue
		}
		next[write] = b[y]
		write--
	}
	return next, cleared
}

// FullRows counts rows that are completely filled.
func (b *Board) FullRows() int {
	n := 0
	for y := range BoardHeight {
		if b.RowFull(y) {
			n++
		}
	}
	return n
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for y := range BoardHeight {
		for x := range BoardWidth {
			if b[y][x].Filled {
				n++
			}
		}
	}
	return n
}

// Rows renders the board as one string per row using each color's Char.
func (b *Board) Rows() []string {
	rows := make([]string, BoardHeight)
	var sb strings.Builder
	for y := range BoardHeight {
		sb.Reset()
		for x := range BoardWidth {
			sb.WriteRune(b[y][x].Color.Char())
		}
		rows[y] = sb.String()
	}
	return rows
}
