package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerEvent describes what happened to the pointer during a frame.
type PointerEvent int

const (
	PointerNone    PointerEvent = iota // No pointer activity this frame
	PointerPress                       // Button pressed / touch began
	PointerMove                        // Drag while pressed
	PointerRelease                     // Button released / touch ended or cancelled
)

// Pointer is a pointer sample in screen cell coordinates.
type Pointer struct {
	Event PointerEvent
	X, Y  int
}

// InputFrame represents the input state for a single simulation tick.
// Besides discrete actions it carries the raw directional signals; the game
// decides which of them it listens to.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the latest pointer sample of the frame.
	Pointer Pointer

	// Tilt is a normalized accelerometer-style reading, valid when HasTilt is set.
	Tilt    Vec2
	HasTilt bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records a pointer sample. A release always wins over a move
// within the same frame so a quick tap still clears the pointer, and a move
// after a press keeps the press with the newer position.
func (f *InputFrame) SetPointer(p Pointer) {
	if p.Event == PointerMove {
		switch f.Pointer.Event {
		case PointerRelease:
			return
		case PointerPress:
			p.Event = PointerPress
		}
	}
	f.Pointer = p
}

// SetTilt records a tilt reading.
func (f *InputFrame) SetTilt(v Vec2) {
	f.Tilt = v
	f.HasTilt = true
}

// Clear resets all actions and signals for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = Pointer{}
	f.Tilt = Vec2{}
	f.HasTilt = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.Tilt = f.Tilt
	clone.HasTilt = f.HasTilt
	return clone
}
