package registry

import (
	"testing"

	"github.com/vovakirdan/tiltmaze/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "stub_a", Title: "Stub A"}, func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist after Register")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID() = %q, expected stub_a", g.ID())
	}

	info, ok := Lookup("stub_a")
	if !ok || info.Title != "Stub A" {
		t.Errorf("Lookup = %+v, %v", info, ok)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "stub_dup"}, func() Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(GameInfo{ID: "stub_dup"}, func() Game { return &stubGame{} })
}

func TestListSorted(t *testing.T) {
	Register(GameInfo{ID: "stub_z"}, func() Game { return &stubGame{} })
	Register(GameInfo{ID: "stub_b"}, func() Game { return &stubGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %s >= %s", list[i-1].ID, list[i].ID)
		}
	}
}
