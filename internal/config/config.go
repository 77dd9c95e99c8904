// Package config provides YAML-based configuration loading and difficulty
// presets for the tilt maze.
package config

import (
	"errors"
	"fmt"
)

// TiltMazeConfig contains all tunables of the tilt maze engine.
type TiltMazeConfig struct {
	World     MazeWorld     `yaml:"world"`
	Player    MazePlayer    `yaml:"player"`
	Entities  MazeEntities  `yaml:"entities"`
	Gameplay  MazeGameplay  `yaml:"gameplay"`
	Animation MazeAnimation `yaml:"animation"`
	Input     MazeInput     `yaml:"input"`
}

// MazeWorld defines grid placement and physics units.
type MazeWorld struct {
	TileSize       float64 `yaml:"tile_size"`        // Distance between grid cells in points
	TileOffset     float64 `yaml:"tile_offset"`      // Offset of cell centers from the origin
	PointsPerMeter float64 `yaml:"points_per_meter"` // Gravity is given in m/s²
	MaxStep        float64 `yaml:"max_step"`         // Longest player move per integration substep
}

// MazePlayer defines the player body.
type MazePlayer struct {
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	Radius        float64 `yaml:"radius"`
	LinearDamping float64 `yaml:"linear_damping"`
}

// MazeEntities defines static entity shapes.
type MazeEntities struct {
	WallSize     float64 `yaml:"wall_size"`
	SensorRadius float64 `yaml:"sensor_radius"`
}

// MazeGameplay defines scoring and progression.
type MazeGameplay struct {
	FinalLevel    int `yaml:"final_level"`
	PortalBonus   int `yaml:"portal_bonus"`
	HazardPenalty int `yaml:"hazard_penalty"`
	PickupValue   int `yaml:"pickup_value"`
}

// MazeAnimation defines the shrink-into-target sequence.
type MazeAnimation struct {
	MoveSeconds  float64 `yaml:"move_seconds"`
	ScaleSeconds float64 `yaml:"scale_seconds"`
	MinScale     float64 `yaml:"min_scale"`
}

// MazeInput defines how raw directional signals become gravity.
type MazeInput struct {
	Mode           string  `yaml:"mode"`            // "tilt" or "pointer"
	PointerDivisor float64 `yaml:"pointer_divisor"` // Pointer offset divisor
	TiltScale      float64 `yaml:"tilt_scale"`      // Tilt reading multiplier
	KeyboardTilt   float64 `yaml:"keyboard_tilt"`   // Reading produced by an arrow key
}

// Input modes.
const (
	InputModeTilt    = "tilt"
	InputModePointer = "pointer"
)

// DifficultyPreset represents a named tuning preset.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// Validate checks that the config can drive a simulation.
func (c TiltMazeConfig) Validate() error {
	var errs []error
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world.tile_size must be positive, got %v", c.World.TileSize))
	}
	if c.World.PointsPerMeter <= 0 {
		errs = append(errs, fmt.Errorf("world.points_per_meter must be positive, got %v", c.World.PointsPerMeter))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %v", c.Player.Radius))
	}
	if c.Player.LinearDamping < 0 {
		errs = append(errs, fmt.Errorf("player.linear_damping must not be negative, got %v", c.Player.LinearDamping))
	}
	if c.Entities.WallSize <= 0 || c.Entities.SensorRadius <= 0 {
		errs = append(errs, errors.New("entities sizes must be positive"))
	}
	if c.Gameplay.FinalLevel < 1 {
		errs = append(errs, fmt.Errorf("gameplay.final_level must be at least 1, got %d", c.Gameplay.FinalLevel))
	}
	if c.Animation.MoveSeconds < 0 || c.Animation.ScaleSeconds < 0 {
		errs = append(errs, errors.New("animation durations must not be negative"))
	}
	if c.Input.PointerDivisor == 0 {
		errs = append(errs, errors.New("input.pointer_divisor must not be zero"))
	}
	switch c.Input.Mode {
	case "", InputModeTilt, InputModePointer:
	default:
		errs = append(errs, fmt.Errorf("input.mode must be tilt or pointer, got %q", c.Input.Mode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tilt maze config: %w", errors.Join(errs...))
	}
	return nil
}
