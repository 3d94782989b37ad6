package config

import (
	_ "embed"
)

//go:embed defaults/duotris.yaml
var defaultDuotrisYAML []byte

//go:embed defaults/trio.yaml
var defaultTrioYAML []byte

// DefaultDuotrisConfig returns the default two-player configuration.
func DefaultDuotrisConfig() DuotrisConfig {
	return DuotrisConfig{
		Slots: []SlotConfig{
			{Name: "left", SpawnOffset: -3, BaseIntervalMs: 1000, Highlight: "blue"},
			{Name: "right", SpawnOffset: 3, BaseIntervalMs: 1200, Highlight: "orange"},
		},
		Speed: defaultSpeed(),
	}
}

// DefaultTrioConfig returns the default three-player configuration.
func DefaultTrioConfig() DuotrisConfig {
	return DuotrisConfig{
		Slots: []SlotConfig{
			{Name: "left", SpawnOffset: -3, BaseIntervalMs: 1000, Highlight: "blue"},
			{Name: "right", SpawnOffset: 3, BaseIntervalMs: 1200, Highlight: "orange"},
			{Name: "middle", SpawnOffset: 0, BaseIntervalMs: 1100, Highlight: "green"},
		},
		Speed: defaultSpeed(),
	}
}

func defaultSpeed() SpeedConfig {
	return SpeedConfig{
		MinIntervalMs: 100,
		LevelStepMs:   100,
		LevelSpeedup:  true,
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode string) []byte {
	switch mode {
	case "duotris":
		return defaultDuotrisYAML
	case "trio":
		return defaultTrioYAML
	default:
		return nil
	}
}
