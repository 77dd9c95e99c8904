// tiltmaze is a terminal tilt maze: roll a ball through hand-made grid
// levels, collect every succulent, avoid black holes, leave by the portal.
//
// Usage:
//
//	tiltmaze play            - Play the maze
//	tiltmaze menu            - Start menu with input mode picker and scores
//	tiltmaze levels          - Parse every level and print its contents
//	tiltmaze scores          - Show the best runs
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.tiltmaze/scores.db)
//	--levels <dir>   - Read level<N>.txt files from a directory
//	--config <path>  - Path to a custom tiltmaze.yaml
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLevels  string
	flagConfig  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiltmaze",
	Short: "Tilt Maze - roll a ball through grid mazes in your terminal",
	Long: `Tilt Maze steers a ball with gravity. Tilt the board with the arrow
keys or hold the mouse button to pull the ball toward the pointer.
Collect every succulent to open the portal; black holes cost a point.

Available commands:
  play     - Play the maze directly
  menu     - Interactive menu
  levels   - Inspect the level pack
  scores   - View the best runs

Examples:
  tiltmaze play
  tiltmaze play --input pointer --difficulty easy
  tiltmaze levels --levels ./my-levels
  tiltmaze scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiltmaze/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with level<N>.txt files (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tiltmaze.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger opens the --log file. Without one, logs are discarded so they
// never draw over the alternate screen.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tiltmaze",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// runtimeConfig builds the runtime config from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// configureGame applies CLI settings to new tilt maze games and returns
// the loaded maze config.
func configureGame(logger *log.Logger, inputMode, difficulty string) (config.TiltMazeConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.TiltMazeConfig{}, err
	}
	mazeCfg, err := config.LoadTiltMaze(flagConfig)
	if err != nil {
		return config.TiltMazeConfig{}, err
	}
	switch inputMode {
	case "", config.InputModeTilt, config.InputModePointer:
	default:
		return config.TiltMazeConfig{}, fmt.Errorf("unknown input mode %q (want tilt or pointer)", inputMode)
	}

	tiltmaze.SetConfigPath(flagConfig)
	tiltmaze.SetDifficultyPreset(preset)
	tiltmaze.SetLevelsDir(flagLevels)
	tiltmaze.SetInputMode(inputMode)
	tiltmaze.SetLogger(logger)

	config.ApplyTiltMazePreset(&mazeCfg, preset)
	return mazeCfg, nil
}
