// Package config provides YAML-based match configuration loading and
// difficulty presets for duotris.
package config

import (
	"errors"
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/duotris/internal/core"
	"github.com/vovakirdan/duotris/internal/games/duotris/core"
)

// DuotrisConfig contains all configuration for one match layout.
type DuotrisConfig struct {
	Slots []SlotConfig `yaml:"slots"`
	Speed SpeedConfig  `yaml:"speed"`
}

// SlotConfig defines one player's slot.
type SlotConfig struct {
	Name           string `yaml:"name"`
	SpawnOffset    int    `yaml:"spawn_offset"`     // Columns added to the centred spawn column
	BaseIntervalMs int    `yaml:"base_interval_ms"` // Gravity interval before level speedup
	Highlight      string `yaml:"highlight"`        // Color name for the slot's HUD and piece outline
}

// SpeedConfig defines how gravity speeds up with level.
type SpeedConfig struct {
	MinIntervalMs int  `yaml:"min_interval_ms"` // Floor for every slot interval
	LevelStepMs   int  `yaml:"level_step_ms"`   // Reduction per level
	LevelSpeedup  bool `yaml:"level_speedup"`   // false keeps intervals fixed
}

// BaseInterval returns the slot's gravity interval as a duration.
func (s SlotConfig) BaseInterval() time.Duration {
	return time.Duration(s.BaseIntervalMs) * time.Millisecond
}

// HighlightColor resolves the highlight name, falling back to the default color.
func (s SlotConfig) HighlightColor() platformcore.Color {
	c, _ := platformcore.ParseColor(s.Highlight)
	return c
}

// Validate checks that the configuration describes a playable match.
func (c DuotrisConfig) Validate() error {
	if len(c.Slots) == 0 {
		return errors.New("config: at least one slot is required")
	}
	if c.Speed.MinIntervalMs <= 0 {
		return fmt.Errorf("config: min_interval_ms must be positive, got %d", c.Speed.MinIntervalMs)
	}
	if c.Speed.LevelStepMs < 0 {
		return fmt.Errorf("config: level_step_ms must not be negative, got %d", c.Speed.LevelStepMs)
	}

	board := core.EmptyBoard()
	for i, s := range c.Slots {
		if s.BaseIntervalMs <= 0 {
			return fmt.Errorf("config: slot %d (%s): base_interval_ms must be positive, got %d", i, s.Name, s.BaseIntervalMs)
		}
		if s.Highlight != "" {
			if _, ok := platformcore.ParseColor(s.Highlight); !ok {
				return fmt.Errorf("config: slot %d (%s): unknown highlight color %q", i, s.Name, s.Highlight)
			}
		}
		for k := range core.KindCount {
			p := core.NewTetromino(k, s.SpawnOffset)
			if core.OverlapsBoard(p, p.Pos, &board) {
				return fmt.Errorf("config: slot %d (%s): spawn_offset %d puts %v off the board", i, s.Name, s.SpawnOffset, k)
			}
		}
	}
	return nil
}

// ToMatchConfig converts the YAML layout into engine configuration.
func (c DuotrisConfig) ToMatchConfig() core.MatchConfig {
	mc := core.MatchConfig{
		Slots:       make([]core.SlotSpec, len(c.Slots)),
		MinInterval: time.Duration(c.Speed.MinIntervalMs) * time.Millisecond,
	}
	if c.Speed.LevelSpeedup {
		mc.LevelStep = time.Duration(c.Speed.LevelStepMs) * time.Millisecond
	}
	for i, s := range c.Slots {
		mc.Slots[i] = core.SlotSpec{
			Name:         s.Name,
			SpawnOffsetX: s.SpawnOffset,
			BaseInterval: s.BaseInterval(),
		}
	}
	return mc
}
