package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDuotris loads the two-player configuration.
// Search order: customPath -> ~/.duotris/configs/duotris.yaml -> ./configs/duotris.yaml -> embedded default
func LoadDuotris(customPath string) (DuotrisConfig, error) {
	return load(customPath, "duotris.yaml", defaultDuotrisYAML, DefaultDuotrisConfig)
}

// LoadTrio loads the three-player configuration.
// Search order: customPath -> ~/.duotris/configs/trio.yaml -> ./configs/trio.yaml -> embedded default
func LoadTrio(customPath string) (DuotrisConfig, error) {
	return load(customPath, "trio.yaml", defaultTrioYAML, DefaultTrioConfig)
}

// Load loads the configuration for a mode ("duotris" or "trio").
func Load(mode, customPath string) (DuotrisConfig, error) {
	switch mode {
	case "duotris":
		return LoadDuotris(customPath)
	case "trio":
		return LoadTrio(customPath)
	default:
		return DuotrisConfig{}, fmt.Errorf("config: unknown mode %q", mode)
	}
}

func load(customPath, filename string, embedded []byte, fallback func() DuotrisConfig) (DuotrisConfig, error) {
	var cfg DuotrisConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if c, ok := readValid(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := readValid(filepath.Join("configs", filename)); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readValid reads a config file, reporting false if it is missing, malformed or invalid.
func readValid(path string) (DuotrisConfig, bool) {
	var cfg DuotrisConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duotris", "configs", filename)
}
