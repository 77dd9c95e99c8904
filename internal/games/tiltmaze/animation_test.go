package tiltmaze

import (
	"math"
	"testing"

	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

func TestShrinkAnimationSequence(t *testing.T) {
	w := world.New(world.DefaultConfig())
	id, _ := w.SpawnPlayer(core.V(0, 0))
	a := &shrinkAnimation{
		entity:   id,
		from:     core.V(0, 0),
		to:       core.V(100, 0),
		move:     0.25,
		scale:    0.25,
		minScale: 0.0001,
	}

	if a.step() != StepMove {
		t.Fatalf("step = %v, want move", a.step())
	}
	if a.advance(w, 0.125) {
		t.Fatal("finished during move")
	}
	e, _ := w.Entity(id)
	if math.Abs(e.Position.X-50) > 1e-9 || e.Scale != 1 {
		t.Errorf("halfway move: pos=%v scale=%v", e.Position, e.Scale)
	}

	a.advance(w, 0.25)
	if a.step() != StepScale {
		t.Fatalf("step = %v, want scale", a.step())
	}
	e, _ = w.Entity(id)
	if e.Position != core.V(100, 0) {
		t.Errorf("pos after move = %v", e.Position)
	}
	if e.Scale >= 1 || e.Scale <= 0.0001 {
		t.Errorf("scale mid shrink = %v", e.Scale)
	}

	if !a.advance(w, 0.2) {
		t.Fatal("not finished after full duration")
	}
	e, _ = w.Entity(id)
	if e.Scale != 0.0001 {
		t.Errorf("final scale = %v", e.Scale)
	}
	if a.step() != StepNone {
		t.Errorf("step after finish = %v", a.step())
	}
	if !a.advance(w, 1) {
		t.Error("finished animation reported running")
	}
}

func TestShrinkAnimationZeroDurations(t *testing.T) {
	w := world.New(world.DefaultConfig())
	id, _ := w.SpawnPlayer(core.V(0, 0))
	a := &shrinkAnimation{entity: id, to: core.V(10, 10), minScale: 0.5}
	if !a.advance(w, 0.01) {
		t.Fatal("zero-length animation did not finish")
	}
	e, _ := w.Entity(id)
	if e.Position != core.V(10, 10) || e.Scale != 0.5 {
		t.Errorf("entity = %v scale %v", e.Position, e.Scale)
	}
}
