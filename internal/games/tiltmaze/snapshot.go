package tiltmaze

import "math"

// Snapshot captures the session state for determinism checks.
// Positions are stored in hundredths of a point.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Pickups  int
	Phase    int
	Gravity  [2]int
	PlayerX  int
	PlayerY  int
	PlayerVX int
	PlayerVY int
	Scale    int

	// Static entities (each entity is 3 ints: Kind, X, Y)
	EntityCount int
	EntityData  []int
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    s.ticks,
		Score:   s.score,
		Level:   s.level,
		Pickups: s.pickups,
		Phase:   int(s.phase),
		Gravity: [2]int{fixed(s.world.Gravity().X), fixed(s.world.Gravity().Y)},
	}
	for _, e := range s.world.Entities() {
		if e.ID == s.world.PlayerID() {
			snap.PlayerX = fixed(e.Position.X)
			snap.PlayerY = fixed(e.Position.Y)
			snap.PlayerVX = fixed(e.Body.Velocity.X)
			snap.PlayerVY = fixed(e.Body.Velocity.Y)
			snap.Scale = fixed(e.Scale)
			continue
		}
		snap.EntityCount++
		snap.EntityData = append(snap.EntityData, int(e.Kind), fixed(e.Position.X), fixed(e.Position.Y))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pickups)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Gravity[0])  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Gravity[1])  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerVX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerVY)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Scale)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
