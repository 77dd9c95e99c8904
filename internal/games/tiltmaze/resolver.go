package tiltmaze

import (
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

// contactAction applies the game rule for the player touching other.
type contactAction func(s *Session, other world.Entity)

// contactPolicy maps the kind of the other party to its rule. Walls only
// block and never report contacts, so they have no entry.
var contactPolicy = map[level.Kind]contactAction{
	level.KindBlackHole: (*Session).hitBlackHole,
	level.KindSucculent: (*Session).collectSucculent,
	level.KindPortal:    (*Session).enterPortal,
}

// resolve routes one contact to its rule. Contacts arriving outside the
// Playing phase, or naming an entity that is already gone, are dropped.
func (s *Session) resolve(c world.Contact) {
	if s.phase != PhasePlaying {
		return
	}
	other, ok := s.world.Other(c.Player, c.Other)
	if !ok {
		return
	}
	if action, ok := contactPolicy[other.Kind]; ok {
		action(s, other)
	}
}

// hitBlackHole costs a point and respawns the player at the start after the
// shrink sequence. The black hole stays.
func (s *Session) hitBlackHole(hole world.Entity) {
	s.setPhase(PhaseDying)
	s.addScore(-s.cfg.Gameplay.HazardPenalty)
	s.log.Info("black hole", "score", s.score, "at", hole.Position)
	s.shrinkInto(hole.Position, func() {
		s.world.Remove(s.world.PlayerID())
		s.spawnPlayer()
		s.setPhase(PhasePlaying)
	})
}

// collectSucculent removes the pickup so it cannot count twice.
func (s *Session) collectSucculent(pickup world.Entity) {
	if !s.world.Remove(pickup.ID) {
		return
	}
	s.pickups--
	s.addScore(s.cfg.Gameplay.PickupValue)
}

// enterPortal is inert while pickups remain. On the final level it ends the
// run at once; otherwise the player shrinks into the portal and the next
// level is loaded when that finishes.
func (s *Session) enterPortal(portal world.Entity) {
	if s.pickups > 0 {
		return
	}
	if s.level >= s.cfg.Gameplay.FinalLevel {
		// Deliberately no shrink sequence here: the run ends on contact.
		if p, ok := s.world.Player(); ok {
			s.world.SetDynamic(p.ID, false)
		}
		s.log.Info("final portal reached", "score", s.score, "level", s.level)
		s.setPhase(PhaseGameOver)
		return
	}
	s.setPhase(PhaseTransitioning)
	s.shrinkInto(portal.Position, s.advanceLevel)
}
