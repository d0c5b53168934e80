package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlades loads Twisty Blades configuration.
// Search order: customPath -> ~/.twisty-blades/configs/blades.yaml -> ./configs/blades.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. The result is validated.
func LoadBlades(customPath string) (BladesConfig, error) {
	cfg, err := loadBladesYAML(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadBladesYAML(customPath string) (BladesConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultBladesConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decodeBlades(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blades.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			cfg := DefaultBladesConfig()
			if err := decodeBlades(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blades.yaml"); err == nil {
		cfg := DefaultBladesConfig()
		if err := decodeBlades(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBladesConfig()
	if err := decodeBlades(defaultBladesYAML, &cfg); err != nil {
		return DefaultBladesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeBlades unmarshals data over cfg. A levels list in data replaces the
// default list rather than merging with it. Unknown keys are rejected.
func decodeBlades(data []byte, cfg *BladesConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".twisty-blades", "configs", filename)
}

// ApplyBladesPreset modifies the config based on a difficulty preset.
func ApplyBladesPreset(cfg *BladesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust levels based on difficulty
	var timeScale, speedScale float64
	switch preset {
	case DifficultyEasy:
		timeScale, speedScale = 1.5, 0.75
	case DifficultyHard:
		timeScale, speedScale = 0.75, 1.25
	default:
		return
	}

	levels := make([]LevelSettings, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		lvl.TimeLimit *= timeScale
		lvl.Rotator.BaseSpeed *= speedScale
		lvl.Rotator.SpeedVariance *= speedScale
		levels[i] = lvl
	}
	cfg.Levels = levels
}
