package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/storage"
)

// scriptedGame ends after a fixed number of steps.
type scriptedGame struct {
	steps   int
	endAt   int
	won     bool
	resets  int
	lastIn  core.InputFrame
	pointer []core.PointerEvent
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in
	if in.Pointer.Event != core.PointerNone {
		g.pointer = append(g.pointer, in.Pointer.Event)
	}
	if in.Has(core.ActionRestart) && g.steps >= g.endAt {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	over := g.steps >= g.endAt
	return core.GameState{
		Score:    g.steps,
		Level:    1,
		GameOver: over,
		Won:      over && g.won,
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesRunOnceAtGameOver(t *testing.T) {
	tests := []struct {
		name    string
		won     bool
		outcome storage.Outcome
	}{
		{"completed", true, storage.OutcomeCompleted},
		{"halted", false, storage.OutcomeHalted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			game := &scriptedGame{endAt: 3, won: tt.won}
			m := NewModel(game, core.DefaultConfig(), Options{Store: store})
			m.Init()

			for range 6 {
				m = tick(t, m)
			}

			runs, err := store.TopRuns("scripted", 10)
			if err != nil {
				t.Fatalf("TopRuns: %v", err)
			}
			if len(runs) != 1 {
				t.Fatalf("runs = %d, want 1", len(runs))
			}
			if runs[0].Score != 3 || runs[0].Level != 1 {
				t.Errorf("run = %+v, want score 3 level 1", runs[0])
			}
			if runs[0].Outcome != tt.outcome {
				t.Errorf("outcome = %q, want %q", runs[0].Outcome, tt.outcome)
			}
		})
	}
}

func TestModelQuitMidRunSavesQuit(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, core.DefaultConfig(), Options{Store: store})
	m.Init()
	m = tick(t, m)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if !next.(Model).quitting {
		t.Error("model should be quitting")
	}

	runs, err := store.TopRuns("scripted", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Fatalf("runs = %+v, want one quit run", runs)
	}
}

func TestModelRestartAllowsNewSave(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 2}
	m := NewModel(game, core.DefaultConfig(), Options{Store: store})
	m.Init()

	for range 3 {
		m = tick(t, m)
	}
	next, _ := m.Update(keyMsg("r"))
	m = next.(Model)
	for range 4 {
		m = tick(t, m)
	}

	runs, err := store.TopRuns("scripted", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2 (one per run)", len(runs))
	}
}

func TestModelForwardsMouse(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, core.DefaultConfig(), Options{})
	m.Init()

	next, _ := m.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, next.(Model))

	if len(game.pointer) != 1 || game.pointer[0] != core.PointerPress {
		t.Fatalf("pointer events = %v, want [press]", game.pointer)
	}
	if game.lastIn.Pointer.X != 4 || game.lastIn.Pointer.Y != 5 {
		t.Errorf("pointer at (%d,%d), want (4,5)", game.lastIn.Pointer.X, game.lastIn.Pointer.Y)
	}

	// The frame is cleared after each tick
	tick(t, m)
	if len(game.pointer) != 1 {
		t.Errorf("pointer events = %v, want no repeat", game.pointer)
	}
}
