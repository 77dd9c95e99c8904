package tiltmaze

import (
	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
)

// InputSource turns a directional signal into a gravity vector in m/s².
// ok is false when the source has nothing to apply and the previous
// gravity should stay in effect.
type InputSource interface {
	Mode() string
	Gravity(player core.Vec2) (g core.Vec2, ok bool)
}

// PointerInput steers the ball toward a held pointer.
type PointerInput struct {
	Divisor float64

	pos     core.Vec2
	pressed bool
}

// NewPointerInput creates a pointer source. A non-positive divisor falls
// back to 100.
func NewPointerInput(divisor float64) *PointerInput {
	if divisor <= 0 {
		divisor = 100
	}
	return &PointerInput{Divisor: divisor}
}

func (p *PointerInput) Mode() string { return config.InputModePointer }

// Press starts tracking the pointer at pos.
func (p *PointerInput) Press(pos core.Vec2) {
	p.pos = pos
	p.pressed = true
}

// Move updates the pointer position. Moves without a press are ignored.
func (p *PointerInput) Move(pos core.Vec2) {
	if p.pressed {
		p.pos = pos
	}
}

// Release forgets the pointer.
func (p *PointerInput) Release() {
	p.pressed = false
	p.pos = core.Vec2{}
}

// Position returns the held pointer position.
func (p *PointerInput) Position() (core.Vec2, bool) {
	return p.pos, p.pressed
}

// Gravity returns (pointer - player) / divisor while pressed. A released
// pointer leaves gravity unchanged.
func (p *PointerInput) Gravity(player core.Vec2) (core.Vec2, bool) {
	if !p.pressed {
		return core.Vec2{}, false
	}
	d := p.pos.Sub(player)
	return core.V(d.X/p.Divisor, d.Y/p.Divisor), true
}

// TiltInput maps an accelerometer-style reading onto the screen plane.
type TiltInput struct {
	Scale float64

	reading core.Vec2
	has     bool
}

// NewTiltInput creates a tilt source. A non-positive scale falls back to 50.
func NewTiltInput(scale float64) *TiltInput {
	if scale <= 0 {
		scale = 50
	}
	return &TiltInput{Scale: scale}
}

func (t *TiltInput) Mode() string { return config.InputModeTilt }

// SetReading stores the latest normalized reading.
func (t *TiltInput) SetReading(r core.Vec2) {
	t.reading = r
	t.has = true
}

// Reading returns the latest reading.
func (t *TiltInput) Reading() (core.Vec2, bool) {
	return t.reading, t.has
}

// Gravity swaps the axes and flips the sign of the first one:
// (y * -scale, x * scale).
func (t *TiltInput) Gravity(core.Vec2) (core.Vec2, bool) {
	if !t.has {
		return core.Vec2{}, false
	}
	return core.V(t.reading.Y*-t.Scale, t.reading.X*t.Scale), true
}

// NewInputSource picks the source named by the input config.
func NewInputSource(cfg config.MazeInput) InputSource {
	if cfg.Mode == config.InputModePointer {
		return NewPointerInput(cfg.PointerDivisor)
	}
	return NewTiltInput(cfg.TiltScale)
}
