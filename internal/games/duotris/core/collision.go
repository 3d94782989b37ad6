package core

// OverlapsBoard reports whether t placed at pos would hit a wall, the floor
// or a filled cell. Cells above the top row never collide.
func OverlapsBoard(t *Tetromino, pos Position, b *Board) bool {
	for y, row := range t.Shape {
		for x, filled := range row {
			if filled && b.IsOccupied(pos.X+x, pos.Y+y) {
				return true
			}
		}
	}
	return false
}

// OverlapsPiece reports whether a placed at pos shares any cell with other
// at other's own position. A nil other never overlaps.
func OverlapsPiece(a *Tetromino, pos Position, other *Tetromino) bool {
	if a == nil || other == nil {
		return false
	}
	for y, row := range a.Shape {
		for x, filled := range row {
			if filled && other.occupies(pos.X+x, pos.Y+y) {
				return true
			}
		}
	}
	return false
}

// occupies reports whether the piece covers board cell (x, y) at its own position.
func (t *Tetromino) occupies(x, y int) bool {
	lx, ly := x-t.Pos.X, y-t.Pos.Y
	if ly < 0 || ly >= len(t.Shape) || lx < 0 || lx >= len(t.Shape[ly]) {
		return false
	}
	return t.Shape[ly][lx]
}
