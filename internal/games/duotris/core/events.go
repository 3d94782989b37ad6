package core

// EventKind classifies something that happened inside the match.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event records one state transition. Score and Level are the match totals
// after the transition.
type Event struct {
	Kind  EventKind
	Slot  SlotID
	Piece Kind
	Lines int // Rows removed, for EventLinesCleared
	Score int
	Level int
}
