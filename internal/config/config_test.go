package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	if got := embeddedDefault(); got != DefaultTiltMazeConfig() {
		t.Errorf("embedded defaults drifted from DefaultTiltMazeConfig:\n%+v\n%+v", got, DefaultTiltMazeConfig())
	}
}

func TestDefaultsValid(t *testing.T) {
	if err := DefaultTiltMazeConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := []byte("gameplay:\n  final_level: 3\nplayer:\n  linear_damping: 0.9\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTiltMaze(path)
	if err != nil {
		t.Fatalf("LoadTiltMaze failed: %v", err)
	}
	if cfg.Gameplay.FinalLevel != 3 {
		t.Errorf("FinalLevel = %d, expected 3", cfg.Gameplay.FinalLevel)
	}
	if cfg.Player.LinearDamping != 0.9 {
		t.Errorf("LinearDamping = %v, expected 0.9", cfg.Player.LinearDamping)
	}
	// Untouched keys keep their defaults
	if cfg.Gameplay.PortalBonus != 8 {
		t.Errorf("PortalBonus = %d, expected default 8", cfg.Gameplay.PortalBonus)
	}
}

func TestLoadCustomMissing(t *testing.T) {
	if _, err := LoadTiltMaze(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadCustomInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  final_level: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTiltMaze(path); err == nil {
		t.Error("expected validation error for final_level 0")
	}
}

func TestValidateInputMode(t *testing.T) {
	cfg := DefaultTiltMazeConfig()
	cfg.Input.Mode = "joystick"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown input mode")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"insane", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	def := DefaultTiltMazeConfig()
	tests := []struct {
		preset  DifficultyPreset
		damping float64
		tilt    float64
		divisor float64
	}{
		{DifficultyEasy, 1.0, 35, 140},
		{DifficultyNormal, def.Player.LinearDamping, def.Input.TiltScale, def.Input.PointerDivisor},
		{DifficultyHard, 0.25, 65, 75},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTiltMazeConfig()
			ApplyTiltMazePreset(&cfg, tt.preset)
			if cfg.Player.LinearDamping != tt.damping {
				t.Errorf("damping = %v, want %v", cfg.Player.LinearDamping, tt.damping)
			}
			if cfg.Input.TiltScale != tt.tilt || cfg.Input.PointerDivisor != tt.divisor {
				t.Errorf("input = %+v, want tilt %v divisor %v", cfg.Input, tt.tilt, tt.divisor)
			}
			// Presets only change handling; scoring stays as configured.
			if cfg.Gameplay != def.Gameplay {
				t.Errorf("gameplay = %+v, want %+v", cfg.Gameplay, def.Gameplay)
			}
		})
	}
}
