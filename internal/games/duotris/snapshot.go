package duotris

import "github.com/vovakirdan/duotris/internal/games/duotris/core"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	TooSmall bool
	core.MatchSnapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:          g.tick,
		Mode:          string(g.mode),
		TooSmall:      g.tooSmall,
		MatchSnapshot: g.match.Snapshot(),
	}
}
