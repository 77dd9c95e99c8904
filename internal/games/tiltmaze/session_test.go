package tiltmaze

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

const dt = 1.0 / 60.0

const scenarioGrid = "wwww\nw..w\nwswp\nwwww"

func newTestSession(t *testing.T, files map[string]string, mutate func(*config.TiltMazeConfig)) (*Session, *[]Event) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, text := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(text)}
	}
	cfg := config.DefaultTiltMazeConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	var events []Event
	s, err := NewSession(Options{
		Config:    cfg,
		Levels:    level.NewFSSource(fsys, "test"),
		Observers: []Observer{func(ev Event) { events = append(events, ev) }},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, &events
}

// touch resolves a contact between the player and the first live entity of kind.
func touch(t *testing.T, s *Session, kind level.Kind) world.EntityID {
	t.Helper()
	for _, e := range s.Entities() {
		if e.Kind == kind {
			s.resolve(world.Contact{Player: s.world.PlayerID(), Other: e.ID, Kind: kind, Position: e.Position})
			return e.ID
		}
	}
	t.Fatalf("no %v entity left", kind)
	return 0
}

// runUntil ticks until the phase differs from p or the limit is hit.
func runUntil(s *Session, in InputSource, leave Phase, limit int) int {
	for i := range limit {
		if s.Phase() != leave {
			return i
		}
		s.Tick(dt, in)
	}
	return limit
}

func phaseChanges(events []Event) []PhaseChangedEvent {
	var out []PhaseChangedEvent
	for _, ev := range events {
		if pc, ok := ev.(PhaseChangedEvent); ok {
			out = append(out, pc)
		}
	}
	return out
}

func TestNewSessionInitialState(t *testing.T) {
	s, events := newTestSession(t, map[string]string{"level1.txt": scenarioGrid}, nil)

	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
	if s.Level() != 1 || s.Score() != 0 {
		t.Errorf("level/score = %d/%d, want 1/0", s.Level(), s.Score())
	}
	if s.RemainingPickups() != 1 {
		t.Errorf("pickups = %d, want 1", s.RemainingPickups())
	}
	p, ok := s.Player()
	if !ok || p.Position != s.Start() {
		t.Errorf("player = %+v, %v; want at %v", p.Position, ok, s.Start())
	}
	if len(*events) != 1 {
		t.Fatalf("events = %d, want 1", len(*events))
	}
	if ev, ok := (*events)[0].(LevelLoadedEvent); !ok || ev.Level != 1 || ev.Pickups != 1 {
		t.Errorf("first event = %#v", (*events)[0])
	}
}

func TestNewSessionMissingFirstLevel(t *testing.T) {
	_, err := NewSession(Options{
		Config: config.DefaultTiltMazeConfig(),
		Levels: level.NewFSSource(fstest.MapFS{}, "empty"),
	})
	if !errors.Is(err, level.ErrLevelNotFound) {
		t.Errorf("err = %v, want ErrLevelNotFound", err)
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := config.DefaultTiltMazeConfig()
	cfg.World.TileSize = 0
	if _, err := NewSession(Options{Config: cfg}); err == nil {
		t.Error("expected config error")
	}
}

func TestPickupThenPortalAdvances(t *testing.T) {
	s, events := newTestSession(t, map[string]string{
		"level1.txt": scenarioGrid,
		"level2.txt": "wwww\nwssp",
	}, nil)

	touch(t, s, level.KindSucculent)
	if s.Score() != 1 || s.RemainingPickups() != 0 {
		t.Fatalf("after pickup score=%d pickups=%d", s.Score(), s.RemainingPickups())
	}

	touch(t, s, level.KindPortal)
	if s.Phase() != PhaseTransitioning {
		t.Fatalf("phase = %v, want transitioning", s.Phase())
	}
	if n := runUntil(s, nil, PhaseTransitioning, 120); n >= 120 {
		t.Fatal("transition never finished")
	}

	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 9 {
		t.Errorf("score = %d, want 9", s.Score())
	}
	if s.Level() != 2 {
		t.Errorf("level = %d, want 2", s.Level())
	}
	if s.RemainingPickups() != 2 {
		t.Errorf("pickups = %d, want 2", s.RemainingPickups())
	}
	if got := s.world.Count(level.KindWall); got != 5 {
		t.Errorf("walls = %d, want only the level 2 walls", got)
	}
	if got := s.world.Count(level.KindPlayer); got != 1 {
		t.Errorf("players = %d, want 1", got)
	}

	want := []PhaseChangedEvent{
		{From: PhasePlaying, To: PhaseTransitioning},
		{From: PhaseTransitioning, To: PhasePlaying},
	}
	got := phaseChanges(*events)
	if len(got) != len(want) {
		t.Fatalf("phase changes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase change %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFinalPortalEndsGame(t *testing.T) {
	s, events := newTestSession(t, map[string]string{"level1.txt": scenarioGrid}, func(c *config.TiltMazeConfig) {
		c.Gameplay.FinalLevel = 1
	})

	touch(t, s, level.KindSucculent)
	touch(t, s, level.KindPortal)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.Phase())
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1 (no bonus on the final portal)", s.Score())
	}
	for _, pc := range phaseChanges(*events) {
		if pc.To == PhaseTransitioning {
			t.Errorf("final portal went through %v", pc)
		}
	}

	before := s.Snapshot()
	in := NewTiltInput(50)
	in.SetReading(core.V(0.5, 0.5))
	for range 60 {
		s.Tick(dt, in)
	}
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("state changed after game over")
	}
	if s.Ticks() != before.Tick {
		t.Errorf("ticks advanced in game over: %d -> %d", before.Tick, s.Ticks())
	}
}

func TestPortalInertWithPickupsLeft(t *testing.T) {
	s, events := newTestSession(t, map[string]string{"level1.txt": scenarioGrid}, nil)
	before := len(*events)

	for range 3 {
		touch(t, s, level.KindPortal)
		s.Tick(dt, nil)
	}

	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.world.Count(level.KindPortal) != 1 {
		t.Error("portal was consumed")
	}
	if len(*events) != before {
		t.Errorf("events emitted: %v", (*events)[before:])
	}
}

func TestPickupCountsOnce(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{"level1.txt": "wsw.s"}, nil)

	id := touch(t, s, level.KindSucculent)
	if s.Score() != 1 || s.RemainingPickups() != 1 {
		t.Fatalf("score=%d pickups=%d after first pickup", s.Score(), s.RemainingPickups())
	}
	s.resolve(world.Contact{Player: s.world.PlayerID(), Other: id, Kind: level.KindSucculent})
	if s.Score() != 1 || s.RemainingPickups() != 1 {
		t.Errorf("score=%d pickups=%d after repeated contact", s.Score(), s.RemainingPickups())
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
}

func TestBlackHoleRespawns(t *testing.T) {
	s, events := newTestSession(t, map[string]string{"level1.txt": "wwwww\nwb.bw\nwwwww"}, nil)
	oldPlayer := s.world.PlayerID()

	hole := touch(t, s, level.KindBlackHole)
	if s.Phase() != PhaseDying || s.Score() != -1 {
		t.Fatalf("phase=%v score=%d after hit", s.Phase(), s.Score())
	}
	if p, _ := s.Player(); p.Body.Dynamic {
		t.Error("player still dynamic while dying")
	}

	runUntil(s, nil, PhaseDying, 120)

	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != -1 {
		t.Errorf("score = %d, want -1", s.Score())
	}
	p, ok := s.Player()
	if !ok {
		t.Fatal("no player after respawn")
	}
	if p.ID == oldPlayer {
		t.Error("player was not recreated")
	}
	if p.Position != s.Start() || p.Scale != 1 || !p.Body.Dynamic {
		t.Errorf("respawned player = %+v", p)
	}
	if _, ok := s.world.Entity(hole); !ok {
		t.Error("black hole was removed")
	}
	if s.world.Count(level.KindPlayer) != 1 {
		t.Error("more than one player body")
	}

	got := phaseChanges(*events)
	want := []PhaseChangedEvent{{PhasePlaying, PhaseDying}, {PhaseDying, PhasePlaying}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("phase changes = %v, want %v", got, want)
	}
}

func TestBlackHolePenaltyIsUniform(t *testing.T) {
	grids := []string{
		"b",
		"wwwwwwww\nw......b\nwwwwwwww",
		"b.......\n........\n........\n........\n........\n........\n........\n.......b",
	}
	for _, grid := range grids {
		s, _ := newTestSession(t, map[string]string{"level1.txt": grid}, nil)
		for _, e := range s.Entities() {
			if e.Kind != level.KindBlackHole {
				continue
			}
			score := s.Score()
			s.resolve(world.Contact{Player: s.world.PlayerID(), Other: e.ID, Kind: e.Kind})
			runUntil(s, nil, PhaseDying, 120)
			if s.Score() != score-1 {
				t.Errorf("grid %q hole %v: score %d -> %d", grid, e.Position, score, s.Score())
			}
			p, ok := s.Player()
			if s.Phase() != PhasePlaying || !ok || p.Position != s.Start() {
				t.Errorf("grid %q hole %v: phase=%v player=%v", grid, e.Position, s.Phase(), p.Position)
			}
		}
	}
}

func TestContactsIgnoredWhileDying(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{"level1.txt": "bs"}, nil)
	touch(t, s, level.KindBlackHole)
	touch(t, s, level.KindSucculent)
	if s.Score() != -1 || s.RemainingPickups() != 1 {
		t.Errorf("score=%d pickups=%d, want -1/1", s.Score(), s.RemainingPickups())
	}
}

func TestNegativeScorePersists(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{"level1.txt": "b"}, nil)
	for range 3 {
		touch(t, s, level.KindBlackHole)
		runUntil(s, nil, PhaseDying, 120)
	}
	if s.Score() != -3 {
		t.Errorf("score = %d, want -3", s.Score())
	}
}

func TestMissingNextLevelHalts(t *testing.T) {
	s, events := newTestSession(t, map[string]string{"level1.txt": scenarioGrid}, nil)
	touch(t, s, level.KindSucculent)
	touch(t, s, level.KindPortal)
	runUntil(s, nil, PhaseTransitioning, 120)

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want gameover", s.Phase())
	}
	if !errors.Is(s.Err(), level.ErrLevelNotFound) {
		t.Errorf("Err = %v, want ErrLevelNotFound", s.Err())
	}
	if s.Level() != 1 || s.Score() != 1 {
		t.Errorf("level/score = %d/%d, want 1/1", s.Level(), s.Score())
	}
	if s.world.Count(level.KindWall) != 12 {
		t.Error("previous level entities were cleared")
	}
	var failed bool
	for _, ev := range *events {
		if f, ok := ev.(LevelLoadFailedEvent); ok && f.Level == 2 {
			failed = true
		}
	}
	if !failed {
		t.Error("no LevelLoadFailedEvent")
	}
}

func TestTiltDrivesPickupAndPortal(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{
		"level1.txt": "s.p",
		"level2.txt": "p",
	}, func(c *config.TiltMazeConfig) {
		c.Player.StartX, c.Player.StartY = 50, 18
	})
	in := NewTiltInput(50)

	// Reading y > 0 pulls toward -x.
	in.SetReading(core.V(0, 0.1))
	for i := 0; i < 300 && s.RemainingPickups() > 0; i++ {
		s.Tick(dt, in)
	}
	if s.RemainingPickups() != 0 || s.Score() != 1 {
		t.Fatalf("pickup not collected: pickups=%d score=%d", s.RemainingPickups(), s.Score())
	}

	in.SetReading(core.V(0, -0.1))
	for i := 0; i < 600 && s.Phase() == PhasePlaying; i++ {
		s.Tick(dt, in)
	}
	if s.Phase() != PhaseTransitioning {
		t.Fatalf("phase = %v, want transitioning", s.Phase())
	}
	runUntil(s, in, PhaseTransitioning, 120)
	if s.Level() != 2 || s.Score() != 9 {
		t.Errorf("level/score = %d/%d, want 2/9", s.Level(), s.Score())
	}
}

func TestPointerReleaseKeepsGravity(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{"level1.txt": "w"}, nil)
	in := NewPointerInput(100)
	start := s.Start()

	in.Press(start.Add(core.V(200, -100)))
	s.Tick(dt, in)
	want := core.V(2, -1)
	if g := s.Gravity(); g != want {
		t.Fatalf("gravity = %v, want %v", g, want)
	}

	in.Release()
	s.Tick(dt, in)
	if g := s.Gravity(); g != want {
		t.Errorf("gravity after release = %v, want %v", g, want)
	}
}

func TestInputNotAppliedWhileDying(t *testing.T) {
	s, _ := newTestSession(t, map[string]string{"level1.txt": "b"}, nil)
	touch(t, s, level.KindBlackHole)
	in := NewTiltInput(50)
	in.SetReading(core.V(1, 1))
	s.Tick(dt, in)
	if !s.Gravity().IsZero() {
		t.Errorf("gravity = %v applied while dying", s.Gravity())
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() uint64 {
		s, _ := newTestSession(t, map[string]string{"level1.txt": scenarioGrid}, func(c *config.TiltMazeConfig) {
			c.Player.StartX, c.Player.StartY = 50, 50
		})
		in := NewTiltInput(50)
		for i := range 240 {
			in.SetReading(core.V(float64(i%7)/10-0.3, float64(i%5)/10-0.2))
			s.Tick(dt, in)
		}
		snap := s.Snapshot()
		return snap.Hash()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("hash mismatch: %d != %d", a, b)
	}
}
