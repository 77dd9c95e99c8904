package config

import (
	_ "embed"
)

//go:embed defaults/tiltmaze.yaml
var defaultTiltMazeYAML []byte

// DefaultTiltMazeConfig returns the hardcoded tilt maze configuration.
// It mirrors defaults/tiltmaze.yaml and is used if the embedded file fails to parse.
func DefaultTiltMazeConfig() TiltMazeConfig {
	return TiltMazeConfig{
		World: MazeWorld{
			TileSize:       32,
			TileOffset:     18,
			PointsPerMeter: 150,
			MaxStep:        4,
		},
		Player: MazePlayer{
			StartX:        43,
			StartY:        270,
			Radius:        12,
			LinearDamping: 0.5,
		},
		Entities: MazeEntities{
			WallSize:     32,
			SensorRadius: 16,
		},
		Gameplay: MazeGameplay{
			FinalLevel:    5,
			PortalBonus:   8,
			HazardPenalty: 1,
			PickupValue:   1,
		},
		Animation: MazeAnimation{
			MoveSeconds:  0.25,
			ScaleSeconds: 0.25,
			MinScale:     0.0001,
		},
		Input: MazeInput{
			Mode:           InputModeTilt,
			PointerDivisor: 100,
			TiltScale:      50,
			KeyboardTilt:   0.4,
		},
	}
}

// DefaultYAML returns the embedded default config file contents.
func DefaultYAML() []byte {
	return defaultTiltMazeYAML
}
