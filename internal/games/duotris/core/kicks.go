package core

// Offset is a positional nudge tried when a rotation collides.
// Coordinates are screen oriented: positive DY moves down.
type Offset struct {
	DX, DY int
}

// Kick tables indexed by the departure rotation state. The first entry is always (0,0).
var (
	kicksJLSTZ = [4][]Offset{
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	}

	kicksI = [4][]Offset{
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	}

	kicksO = [4][]Offset{
		{{0, 0}},
		{{0, 0}},
		{{0, 0}},
		{{0, 0}},
	}
)

// Kicks returns the offsets to try, in order, when rotating kind k clockwise
// out of rotation state from.
func Kicks(k Kind, from int) []Offset {
	from = ((from % 4) + 4) % 4
	switch k {
	case KindI:
		return kicksI[from]
	case KindO:
		return kicksO[from]
	default:
		return kicksJLSTZ[from]
	}
}
