package tiltmaze

import (
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

// AnimationStep names the running part of a shrink sequence.
type AnimationStep int

const (
	StepNone AnimationStep = iota
	StepMove
	StepScale
)

// shrinkAnimation moves an entity onto a target and shrinks it. The owner
// runs done once advance reports completion.
type shrinkAnimation struct {
	entity   world.EntityID
	from     core.Vec2
	to       core.Vec2
	move     float64 // seconds
	scale    float64 // seconds
	minScale float64
	elapsed  float64
	done     func()
	finished bool
}

// step returns the part of the sequence currently running.
func (a *shrinkAnimation) step() AnimationStep {
	switch {
	case a.finished:
		return StepNone
	case a.elapsed < a.move:
		return StepMove
	default:
		return StepScale
	}
}

// progress returns position and scale after elapsed seconds.
func (a *shrinkAnimation) progress() (core.Vec2, float64) {
	pos := a.to
	if a.move > 0 && a.elapsed < a.move {
		pos = a.from.Lerp(a.to, a.elapsed/a.move)
	}
	scale := 1.0
	if t := a.elapsed - a.move; t > 0 {
		if a.scale <= 0 || t >= a.scale {
			scale = a.minScale
		} else {
			scale = 1 + (a.minScale-1)*(t/a.scale)
		}
	}
	return pos, scale
}

// advance moves the animation forward by dt and applies the transform to w.
// It reports true once the sequence has completed.
func (a *shrinkAnimation) advance(w *world.World, dt float64) bool {
	if a.finished {
		return true
	}
	a.elapsed += dt
	pos, scale := a.progress()
	w.SetTransform(a.entity, pos, scale)
	if a.elapsed < a.move+a.scale {
		return false
	}
	a.finished = true
	return true
}
