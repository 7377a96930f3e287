package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const rushFile = "rush.yaml"

// LoadRush loads the runner configuration and normalizes it.
// Search order: customPath -> ~/.rush/configs/rush.yaml -> ./configs/rush.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial YAML only overrides
// the keys it names.
func LoadRush(customPath string) (RushConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RushConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseRush(data)
		if err != nil {
			return RushConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(rushFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRush(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", rushFile)); err == nil {
		if cfg, err := ParseRush(data); err == nil {
			return cfg, nil
		}
	}

	return EmbeddedRush(), nil
}

// EmbeddedRush returns the configuration shipped inside the binary.
func EmbeddedRush() RushConfig {
	cfg, err := ParseRush(defaultRushYAML)
	if err != nil {
		cfg = DefaultRushConfig() // Fallback to hardcoded if embed fails
		cfg.Normalize()
	}
	return cfg
}

// ParseRush decodes YAML on top of the built-in defaults and normalizes the result.
func ParseRush(data []byte) (RushConfig, error) {
	cfg := DefaultRushConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RushConfig{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rush", "configs", filename)
}

// ApplyRushPreset modifies the config based on a difficulty preset.
// An empty preset leaves the loaded values untouched.
func ApplyRushPreset(cfg *RushConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Fall.GraceMs = 350
		cfg.Snowman.SpacingScreens = 1.3
	case DifficultyHard:
		cfg.Fall.GraceMs = 180
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.15
	}
}
