package core

import "strings"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
	KindCount // Sentinel value for iteration
)

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Color returns the fixed color of the kind.
func (k Kind) Color() Color {
	switch k {
	case KindI:
		return ColorCyan
	case KindJ:
		return ColorBlue
	case KindL:
		return ColorOrange
	case KindO:
		return ColorYellow
	case KindS:
		return ColorGreen
	case KindT:
		return ColorPurple
	case KindZ:
		return ColorRed
	default:
		return ColorNone
	}
}

// BaseShape returns a fresh copy of the kind's spawn orientation.
func (k Kind) BaseShape() Shape {
	if k >= KindCount {
		return nil
	}
	return baseShapes[k].Clone()
}

// ParseKind converts a letter such as "T" or "t" to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := range KindCount {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return KindI, false
}

// Shape is a rectangular occupancy matrix indexed [row][col].
type Shape [][]bool

var baseShapes = [KindCount]Shape{
	KindI: parseShape("....", "####", "....", "...."),
	KindJ: parseShape("#..", "###", "..."),
	KindL: parseShape("..#", "###", "..."),
	KindO: parseShape("##", "##"),
	KindS: parseShape(".##", "##.", "..."),
	KindT: parseShape(".#.", "###", "..."),
	KindZ: parseShape("##.", ".##", "..."),
}

// parseShape builds a shape from rows where '#' marks an occupied cell.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, r := range row {
			s[y][x] = r == '#'
		}
	}
	return s
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// Equal reports whether two shapes have the same dimensions and occupancy.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// RotateClockwise turns an R×C shape into a C×R shape rotated 90° clockwise.
// It panics on an empty or ragged shape.
func RotateClockwise(s Shape) Shape {
	rows := len(s)
	if rows == 0 || len(s[0]) == 0 {
		panic("core: cannot rotate empty shape")
	}
	cols := len(s[0])
	for y := range s {
		if len(s[y]) != cols {
			panic("core: cannot rotate ragged shape")
		}
	}

	out := make(Shape, cols)
	for x := range cols {
		out[x] = make([]bool, rows)
	}
	for y := range rows {
		for x := range cols {
			out[x][rows-1-y] = s[y][x]
		}
	}
	return out
}

// Position is a board coordinate. Y may be negative while a piece is above the field.
type Position struct {
	X, Y int
}

// Add returns the position shifted by an offset.
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Tetromino is a live piece: its kind, current orientation and top-left position.
type Tetromino struct {
	Kind     Kind
	Shape    Shape
	Color    Color
	Pos      Position
	Rotation int // 0..3, clockwise quarter turns from spawn
}

// SpawnPosition returns where a new piece of kind k appears for a slot with the given offset.
func SpawnPosition(k Kind, slotOffsetX int) Position {
	return Position{
		X: BoardWidth/2 - baseShapes[k].Width()/2 + slotOffsetX,
		Y: 0,
	}
}

// NewTetromino creates a piece of kind k in spawn orientation at the slot's spawn position.
func NewTetromino(k Kind, slotOffsetX int) *Tetromino {
	return &Tetromino{
		Kind:  k,
		Shape: k.BaseShape(),
		Color: k.Color(),
		Pos:   SpawnPosition(k, slotOffsetX),
	}
}

// Cells returns the absolute board coordinates of the piece's occupied cells.
func (t *Tetromino) Cells() []Position {
	return t.CellsAt(t.Pos)
}

// CellsAt returns the occupied cells as if the piece were placed at pos.
func (t *Tetromino) CellsAt(pos Position) []Position {
	cells := make([]Position, 0, 4)
	for y, row := range t.Shape {
		for x, filled := range row {
			if filled {
				cells = append(cells, Position{X: pos.X + x, Y: pos.Y + y})
			}
		}
	}
	return cells
}

// Clone returns a deep copy of the piece.
func (t *Tetromino) Clone() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	c.Shape = t.Shape.Clone()
	return &c
}
