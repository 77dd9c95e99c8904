package tiltmaze

// Event is a session state change delivered to observers.
type Event interface {
	sessionEvent()
}

// ScoreChangedEvent is emitted whenever the score moves.
type ScoreChangedEvent struct {
	Score int
	Delta int
}

func (ScoreChangedEvent) sessionEvent() {}

// LevelChangedEvent is emitted when the level index advances.
type LevelChangedEvent struct {
	Level int
}

func (LevelChangedEvent) sessionEvent() {}

// PhaseChangedEvent is emitted on every phase transition.
type PhaseChangedEvent struct {
	From Phase
	To   Phase
}

func (PhaseChangedEvent) sessionEvent() {}

// LevelLoadedEvent is emitted after the world has been repopulated.
type LevelLoadedEvent struct {
	Level   int
	Pickups int
	Rows    int
	Cols    int
}

func (LevelLoadedEvent) sessionEvent() {}

// LevelLoadFailedEvent is emitted when the next level cannot be loaded.
type LevelLoadFailedEvent struct {
	Level int
	Err   error
}

func (LevelLoadFailedEvent) sessionEvent() {}

// Observer receives session events synchronously.
type Observer func(Event)

// HUD keeps the label values shown next to the maze.
type HUD struct {
	Score   int
	Level   int
	Pickups int
	Phase   Phase
	Message string
}

// Observe updates the HUD from a session event.
func (h *HUD) Observe(ev Event) {
	switch e := ev.(type) {
	case ScoreChangedEvent:
		h.Score = e.Score
	case LevelChangedEvent:
		h.Level = e.Level
	case LevelLoadedEvent:
		h.Level = e.Level
		h.Pickups = e.Pickups
		h.Message = ""
	case PhaseChangedEvent:
		h.Phase = e.To
	case LevelLoadFailedEvent:
		h.Message = e.Err.Error()
	}
}
