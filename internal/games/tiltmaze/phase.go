package tiltmaze

// Phase is the state of a maze session.
type Phase int

const (
	PhasePlaying       Phase = iota // Simulation active, input applied
	PhaseDying                      // Player frozen after a black hole hit
	PhaseTransitioning              // Player frozen after entering the portal
	PhaseGameOver                   // Terminal, absorbs every tick
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseDying:
		return "dying"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// canTransition lists the allowed phase edges. GameOver has none.
func canTransition(from, to Phase) bool {
	switch from {
	case PhasePlaying:
		return to == PhaseDying || to == PhaseTransitioning || to == PhaseGameOver
	case PhaseDying, PhaseTransitioning:
		return to == PhasePlaying || to == PhaseGameOver
	}
	return false
}
