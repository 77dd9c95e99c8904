package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze"
	"github.com/vovakirdan/tiltmaze/internal/platform/tui"
	"github.com/vovakirdan/tiltmaze/internal/registry"
	"github.com/vovakirdan/tiltmaze/internal/storage"
)

var (
	flagInput      string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the maze",
	Long: `Start a tilt maze run on level 1.

Controls (tilt input):
  Arrows/WASD  - Tilt the board
  Space        - Level the board
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Controls (pointer input):
  Hold the left mouse button; gravity pulls the ball toward the pointer.
  Releasing keeps the last gravity.

Difficulty options:
  easy    - More damping, gentler tilt and pointer pull
  normal  - Config values as loaded
  hard    - Less damping, stronger tilt and pointer pull

Examples:
  tiltmaze play
  tiltmaze play --input pointer
  tiltmaze play --difficulty hard
  tiltmaze play --levels ./levels --config ./tiltmaze.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagInput, "input", "", "Input mode: tilt or pointer (default from config)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	mazeCfg, err := configureGame(logger, flagInput, flagDifficulty)
	if err != nil {
		return err
	}

	game, err := registry.Create(tiltmaze.GameID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:        store,
		Logger:       logger,
		KeyboardTilt: mazeCfg.Input.KeyboardTilt,
	})
}
