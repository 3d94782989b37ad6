package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q (use: easy, normal, hard, fixed)", s)
	}
}

// IntervalScaleForPreset returns the multiplier applied to base gravity intervals.
func IntervalScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.6
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables level speedup.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyDuotrisPreset modifies the config based on a difficulty preset.
// Scaled intervals never drop below the configured minimum.
func ApplyDuotrisPreset(cfg *DuotrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Speed.LevelSpeedup = false
		return
	}

	scale := IntervalScaleForPreset(preset)
	for i := range cfg.Slots {
		scaled := int(math.Round(float64(cfg.Slots[i].BaseIntervalMs) * scale))
		cfg.Slots[i].BaseIntervalMs = max(scaled, cfg.Speed.MinIntervalMs)
	}
}
