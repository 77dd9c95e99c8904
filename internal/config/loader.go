package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "tiltmaze.yaml"

// LoadTiltMaze loads the tilt maze configuration.
// Search order: customPath -> ~/.tiltmaze/configs/tiltmaze.yaml -> ./configs/tiltmaze.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadTiltMaze(customPath string) (TiltMazeConfig, error) {
	cfg := embeddedDefault()

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := embeddedDefault()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// embeddedDefault decodes the embedded YAML, falling back to the hardcoded defaults.
func embeddedDefault() TiltMazeConfig {
	cfg := DefaultTiltMazeConfig()
	if err := yaml.Unmarshal(defaultTiltMazeYAML, &cfg); err != nil {
		return DefaultTiltMazeConfig()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tiltmaze", "configs", filename)
}

// ApplyTiltMazePreset modifies the config based on a difficulty preset.
// Easier presets brake the ball harder and soften the input.
func ApplyTiltMazePreset(cfg *TiltMazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.LinearDamping = 1.0
		cfg.Input.TiltScale = 35
		cfg.Input.PointerDivisor = 140
	case DifficultyHard:
		cfg.Player.LinearDamping = 0.25
		cfg.Input.TiltScale = 65
		cfg.Input.PointerDivisor = 75
	}
}
