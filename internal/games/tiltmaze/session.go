package tiltmaze

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

// ErrNoLevels is returned when a session is created without a level source.
var ErrNoLevels = errors.New("tiltmaze: no level source")

// Options configures a new Session.
type Options struct {
	Config    config.TiltMazeConfig
	Levels    level.Source // Defaults to the built-in pack
	Logger    *log.Logger  // Defaults to a discarding logger
	Observers []Observer
}

// Session owns the world and the game state of one run: phase, score,
// level index and remaining pickups. It is not safe for concurrent use.
type Session struct {
	cfg       config.TiltMazeConfig
	levels    level.Source
	log       *log.Logger
	observers []Observer

	world *world.World
	anim  *shrinkAnimation

	phase   Phase
	score   int
	level   int
	pickups int
	rows    int
	cols    int
	ticks   uint64
	loadErr error
}

// WorldConfig derives the world geometry from the maze config.
func WorldConfig(cfg config.TiltMazeConfig) world.Config {
	return world.Config{
		TileSize:       cfg.World.TileSize,
		TileOffset:     cfg.World.TileOffset,
		PointsPerMeter: cfg.World.PointsPerMeter,
		MaxStep:        cfg.World.MaxStep,
		PlayerRadius:   cfg.Player.Radius,
		LinearDamping:  cfg.Player.LinearDamping,
		WallSize:       cfg.Entities.WallSize,
		SensorRadius:   cfg.Entities.SensorRadius,
	}
}

// NewSession creates a session in the Playing phase on level 1.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Levels == nil {
		opts.Levels = level.Builtin()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:       opts.Config,
		levels:    opts.Levels,
		log:       opts.Logger,
		observers: opts.Observers,
		world:     world.New(WorldConfig(opts.Config)),
		phase:     PhasePlaying,
		level:     1,
	}

	layout, err := level.Load(s.levels, 1)
	if err != nil {
		return nil, fmt.Errorf("tiltmaze: load first level: %w", err)
	}
	s.populate(layout)
	return s, nil
}

// Subscribe adds an observer for session events.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) emit(ev Event) {
	for _, o := range s.observers {
		o(ev)
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score. It may be negative.
func (s *Session) Score() int { return s.score }

// Level returns the current level number.
func (s *Session) Level() int { return s.level }

// RemainingPickups returns how many succulents are left on this level.
func (s *Session) RemainingPickups() int { return s.pickups }

// Size returns the grid dimensions of the loaded level.
func (s *Session) Size() (rows, cols int) { return s.rows, s.cols }

// Ticks returns the number of ticks processed outside GameOver.
func (s *Session) Ticks() uint64 { return s.ticks }

// Err returns the level load error that ended the run, if any.
func (s *Session) Err() error { return s.loadErr }

// Animating reports whether a shrink sequence is running.
func (s *Session) Animating() AnimationStep {
	if s.anim == nil {
		return StepNone
	}
	return s.anim.step()
}

// Entities returns the live entities ordered by id.
func (s *Session) Entities() []world.Entity { return s.world.Entities() }

// Player returns the live player entity.
func (s *Session) Player() (world.Entity, bool) { return s.world.Player() }

// Gravity returns the gravity currently applied to the world.
func (s *Session) Gravity() core.Vec2 { return s.world.Gravity() }

// Start returns the fixed player spawn position.
func (s *Session) Start() core.Vec2 {
	return core.V(s.cfg.Player.StartX, s.cfg.Player.StartY)
}

// Tick advances the session by dt seconds. In GameOver it does nothing.
// Otherwise a running animation is advanced, input is applied as gravity
// while Playing, the world is stepped and new contacts are resolved.
func (s *Session) Tick(dt float64, in InputSource) {
	if s.phase == PhaseGameOver {
		return
	}
	s.ticks++

	if s.anim != nil && s.anim.advance(s.world, dt) {
		done := s.anim.done
		s.anim = nil
		if done != nil {
			done()
		}
		if s.phase == PhaseGameOver {
			return
		}
	}

	if in != nil {
		player, ok := s.world.Player()
		if g, apply := in.Gravity(player.Position); apply && ok && s.phase == PhasePlaying {
			s.world.SetGravity(g)
		}
	}

	for _, c := range s.world.Tick(dt) {
		s.resolve(c)
	}
}

// setPhase moves to a new phase if the edge is allowed.
func (s *Session) setPhase(to Phase) {
	if s.phase == to {
		return
	}
	if !canTransition(s.phase, to) {
		s.log.Warn("ignored phase change", "from", s.phase, "to", to)
		return
	}
	from := s.phase
	s.phase = to
	s.log.Debug("phase", "from", from, "to", to, "level", s.level)
	s.emit(PhaseChangedEvent{From: from, To: to})
}

func (s *Session) addScore(delta int) {
	if delta == 0 {
		return
	}
	s.score += delta
	s.emit(ScoreChangedEvent{Score: s.score, Delta: delta})
}

// populate replaces every entity with the given layout and a fresh player.
// The world is cleared first so old and new entities never coexist.
func (s *Session) populate(layout level.Layout) {
	s.world.Reset()
	s.world.SpawnLayout(layout)
	s.spawnPlayer()
	s.pickups = layout.Pickups
	s.rows, s.cols = layout.Rows, layout.Cols
	s.log.Info("level loaded", "level", s.level, "pickups", s.pickups,
		"rows", layout.Rows, "cols", layout.Cols)
	s.emit(LevelLoadedEvent{Level: s.level, Pickups: s.pickups, Rows: layout.Rows, Cols: layout.Cols})
}

func (s *Session) spawnPlayer() {
	id, replaced := s.world.SpawnPlayer(s.Start())
	if replaced {
		s.log.Warn("replaced stale player body", "id", id)
	}
}

// advanceLevel loads the next level. The layout is parsed before the world
// is touched; on failure the current entities stay and the run ends.
func (s *Session) advanceLevel() {
	next := s.level + 1
	layout, err := level.Load(s.levels, next)
	if err != nil {
		s.loadErr = err
		s.log.Error("level load failed", "level", next, "err", err)
		s.emit(LevelLoadFailedEvent{Level: next, Err: err})
		s.setPhase(PhaseGameOver)
		return
	}
	s.level = next
	s.emit(LevelChangedEvent{Level: s.level})
	s.addScore(s.cfg.Gameplay.PortalBonus)
	s.populate(layout)
	s.setPhase(PhasePlaying)
}

// shrinkInto freezes the player and animates it onto target, then runs done.
func (s *Session) shrinkInto(target core.Vec2, done func()) {
	player, ok := s.world.Player()
	if !ok {
		done()
		return
	}
	s.world.SetDynamic(player.ID, false)
	s.anim = &shrinkAnimation{
		entity:   player.ID,
		from:     player.Position,
		to:       target,
		move:     s.cfg.Animation.MoveSeconds,
		scale:    s.cfg.Animation.ScaleSeconds,
		minScale: s.cfg.Animation.MinScale,
		done:     done,
	}
}
