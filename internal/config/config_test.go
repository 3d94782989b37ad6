package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		mode     string
		expected DuotrisConfig
	}{
		{"duotris", DefaultDuotrisConfig()},
		{"trio", DefaultTrioConfig()},
	}

	for _, tc := range tests {
		var cfg DuotrisConfig
		if err := yaml.Unmarshal(GetDefaultYAML(tc.mode), &cfg); err != nil {
			t.Fatalf("embedded %s.yaml does not parse: %v", tc.mode, err)
		}
		if !reflect.DeepEqual(cfg, tc.expected) {
			t.Errorf("embedded %s.yaml = %+v, expected %+v", tc.mode, cfg, tc.expected)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("embedded %s.yaml is invalid: %v", tc.mode, err)
		}
	}

	if GetDefaultYAML("tetris") != nil {
		t.Error("GetDefaultYAML should return nil for unknown modes")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `slots:
  - name: solo
    spawn_offset: 0
    base_interval_ms: 500
speed:
  min_interval_ms: 50
  level_step_ms: 25
  level_speedup: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDuotris(path)
	if err != nil {
		t.Fatalf("LoadDuotris() error = %v", err)
	}
	if len(cfg.Slots) != 1 || cfg.Slots[0].Name != "solo" {
		t.Errorf("Slots = %+v, expected one slot named solo", cfg.Slots)
	}
	if cfg.Speed.LevelStepMs != 25 {
		t.Errorf("LevelStepMs = %d, expected 25", cfg.Speed.LevelStepMs)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDuotris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("slots: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTrio(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("slots: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDuotris(empty); err == nil {
		t.Error("config without slots should fail validation")
	}
}

func TestLoadUnknownMode(t *testing.T) {
	if _, err := Load("tetris", ""); err == nil {
		t.Error("Load() should reject unknown modes")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DuotrisConfig)
		errMsg string
	}{
		{"default", func(*DuotrisConfig) {}, ""},
		{"no slots", func(c *DuotrisConfig) { c.Slots = nil }, "at least one slot"},
		{"zero interval", func(c *DuotrisConfig) { c.Slots[0].BaseIntervalMs = 0 }, "base_interval_ms"},
		{"zero minimum", func(c *DuotrisConfig) { c.Speed.MinIntervalMs = 0 }, "min_interval_ms"},
		{"negative step", func(c *DuotrisConfig) { c.Speed.LevelStepMs = -1 }, "level_step_ms"},
		{"offset too far left", func(c *DuotrisConfig) { c.Slots[0].SpawnOffset = -4 }, "off the board"},
		{"offset too far right", func(c *DuotrisConfig) { c.Slots[1].SpawnOffset = 4 }, "off the board"},
		{"unknown color", func(c *DuotrisConfig) { c.Slots[1].Highlight = "chartreuse" }, "highlight"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDuotrisConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.errMsg)
			}
		})
	}
}

func TestToMatchConfig(t *testing.T) {
	mc := DefaultDuotrisConfig().ToMatchConfig()

	if len(mc.Slots) != 2 {
		t.Fatalf("len(Slots) = %d, expected 2", len(mc.Slots))
	}
	if mc.Slots[0].SpawnOffsetX != -3 || mc.Slots[0].BaseInterval != time.Second {
		t.Errorf("left slot = %+v", mc.Slots[0])
	}
	if mc.Slots[1].BaseInterval != 1200*time.Millisecond {
		t.Errorf("right interval = %v, expected 1.2s", mc.Slots[1].BaseInterval)
	}
	if mc.MinInterval != 100*time.Millisecond || mc.LevelStep != 100*time.Millisecond {
		t.Errorf("speed = %v/%v, expected 100ms/100ms", mc.MinInterval, mc.LevelStep)
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tc := range tests {
		p, err := ParseDifficultyPreset(tc.input)
		if (err != nil) != tc.wantErr || p != tc.expected {
			t.Errorf("ParseDifficultyPreset(%q) = (%q, %v), expected %q", tc.input, p, err, tc.expected)
		}
	}
}

func TestApplyDuotrisPreset(t *testing.T) {
	easy := DefaultDuotrisConfig()
	ApplyDuotrisPreset(&easy, DifficultyEasy)
	if easy.Slots[0].BaseIntervalMs != 1500 || easy.Slots[1].BaseIntervalMs != 1800 {
		t.Errorf("easy intervals = %d/%d, expected 1500/1800", easy.Slots[0].BaseIntervalMs, easy.Slots[1].BaseIntervalMs)
	}

	hard := DefaultDuotrisConfig()
	ApplyDuotrisPreset(&hard, DifficultyHard)
	if hard.Slots[0].BaseIntervalMs != 600 || hard.Slots[1].BaseIntervalMs != 720 {
		t.Errorf("hard intervals = %d/%d, expected 600/720", hard.Slots[0].BaseIntervalMs, hard.Slots[1].BaseIntervalMs)
	}

	fixed := DefaultDuotrisConfig()
	ApplyDuotrisPreset(&fixed, DifficultyFixed)
	if fixed.Speed.LevelSpeedup {
		t.Error("fixed preset should disable level speedup")
	}
	if fixed.ToMatchConfig().LevelStep != 0 {
		t.Error("fixed preset should produce a zero level step")
	}

	floor := DefaultDuotrisConfig()
	floor.Slots[0].BaseIntervalMs = 120
	ApplyDuotrisPreset(&floor, DifficultyHard)
	if floor.Slots[0].BaseIntervalMs != 100 {
		t.Errorf("scaled interval = %d, expected floor 100", floor.Slots[0].BaseIntervalMs)
	}
}
