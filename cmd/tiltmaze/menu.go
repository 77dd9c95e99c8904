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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Pick keyboard tilt or mouse pointer input, then play. After a run ends
you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tiltmaze menu
  tiltmaze menu --fps 30
  tiltmaze menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Track size changes made while the menu was open
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, tiltmaze.GameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		mazeCfg, err := configureGame(logger, menuResult.InputMode, "")
		if err != nil {
			return err
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:        store,
			Logger:       logger,
			KeyboardTilt: mazeCfg.Input.KeyboardTilt,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
