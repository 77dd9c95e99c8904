package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiltmaze/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// Terminals report no key releases, so arrow keys latch a tilt reading
// that stays until another arrow or space changes it.
type KeyMapper struct {
	strength float64
	tilt     core.Vec2
}

// NewKeyMapper creates a key mapper whose arrows tilt by strength.
func NewKeyMapper(strength float64) *KeyMapper {
	if strength <= 0 {
		strength = 0.4
	}
	return &KeyMapper{strength: strength}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapTilt updates the latched tilt reading. The reading is in device
// axes: rolling left needs +Y, rolling up needs +X.
// Returns false if the key is not a tilt key.
func (km *KeyMapper) MapTilt(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "a":
		km.tilt.Y = km.strength
	case "right", "d":
		km.tilt.Y = -km.strength
	case "up", "w":
		km.tilt.X = km.strength
	case "down", "s":
		km.tilt.X = -km.strength
	case " ":
		km.tilt = core.Vec2{}
	default:
		return false
	}
	return true
}

// Tilt returns the latched tilt reading.
func (km *KeyMapper) Tilt() core.Vec2 {
	return km.tilt
}

// Level clears the latched tilt.
func (km *KeyMapper) Level() {
	km.tilt = core.Vec2{}
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if km.MapTilt(msg) {
		frame.SetTilt(km.tilt)
		return false
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records left-button activity as a pointer sample.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	var ev core.PointerEvent
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		ev = core.PointerPress
	case tea.MouseActionMotion:
		ev = core.PointerMove
	case tea.MouseActionRelease:
		ev = core.PointerRelease
	default:
		return
	}
	frame.SetPointer(core.Pointer{Event: ev, X: msg.X, Y: msg.Y})
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
