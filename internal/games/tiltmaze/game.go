// Package tiltmaze implements the tilt maze: a ball rolls through a
// grid maze under gravity set by device tilt or a held pointer, collects
// succulents, avoids black holes and leaves through the portal.
package tiltmaze

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
	"github.com/vovakirdan/tiltmaze/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "tiltmaze"

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	// levelsDir overrides the built-in level pack
	levelsDir string

	// inputMode overrides input.mode from the config
	inputMode string

	logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLevelsDir makes new games read level<N>.txt files from dir.
// An empty dir selects the built-in pack.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetInputMode forces tilt or pointer input. Empty keeps the config value.
func SetInputMode(mode string) {
	inputMode = mode
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LevelSource returns the level source selected via CLI.
func LevelSource() level.Source {
	if levelsDir != "" {
		return level.Dir(levelsDir)
	}
	return level.Builtin()
}

// Game adapts a Session to the terminal host.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.TiltMazeConfig
	log     *log.Logger

	session  *Session
	input    InputSource
	hud      HUD
	paused   bool
	setupErr error
	view     viewport
}

// New creates a tilt maze game. Call Reset before stepping.
func New() *Game {
	return &Game{log: logger}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tilt Maze"
}

// Reset loads the config and starts a fresh session on level 1.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.paused = false
	g.hud = HUD{}
	g.setupErr = nil
	g.session = nil

	mazeCfg, err := config.LoadTiltMaze(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		mazeCfg = config.DefaultTiltMazeConfig()
	}
	config.ApplyTiltMazePreset(&mazeCfg, difficultyPreset)
	if inputMode != "" {
		mazeCfg.Input.Mode = inputMode
	}
	g.cfg = mazeCfg
	g.start(LevelSource())
}

// start creates the session for src.
func (g *Game) start(src level.Source) {
	g.input = NewInputSource(g.cfg.Input)
	s, err := NewSession(Options{
		Config:    g.cfg,
		Levels:    src,
		Logger:    g.log,
		Observers: []Observer{g.hud.Observe},
	})
	if err != nil {
		g.log.Error("cannot start session", "err", err)
		g.setupErr = err
		return
	}
	g.session = s
	g.hud.Score = s.Score()
	g.hud.Phase = s.Phase()
	g.layout()
}

// Session returns the running session, nil when setup failed.
func (g *Game) Session() *Session {
	return g.session
}

// Input returns the active input source.
func (g *Game) Input() InputSource {
	return g.input
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.session.Phase() == PhaseGameOver {
		g.start(g.session.levels)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.session.Phase() != PhaseGameOver {
		g.paused = !g.paused
	}

	g.feed(in)

	if !g.paused {
		g.session.Tick(g.runtime.TickSeconds(), g.input)
	}
	return core.StepResult{State: g.State()}
}

// feed hands the frame's directional signal to the active input source.
func (g *Game) feed(in core.InputFrame) {
	switch src := g.input.(type) {
	case *PointerInput:
		switch in.Pointer.Event {
		case core.PointerPress:
			src.Press(g.view.toWorld(in.Pointer.X, in.Pointer.Y))
		case core.PointerMove:
			src.Move(g.view.toWorld(in.Pointer.X, in.Pointer.Y))
		case core.PointerRelease:
			src.Release()
		}
	case *TiltInput:
		if in.HasTilt {
			src.SetReading(in.Tilt)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Phase: PhaseGameOver.String(), GameOver: true}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Phase:    g.session.Phase().String(),
		GameOver: g.session.Phase() == PhaseGameOver,
		Won:      g.session.Phase() == PhaseGameOver && g.session.Err() == nil,
		Paused:   g.paused,
	}
}

// HUD returns the labels kept up to date by session events.
func (g *Game) HUD() HUD {
	return g.hud
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          GameID,
		Title:       "Tilt Maze",
		Description: "Roll the ball to every succulent, dodge black holes, exit through the portal",
	}, func() registry.Game {
		return New()
	})
}
