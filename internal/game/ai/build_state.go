package ai

import (
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/combat"
)

// BuildWorldState snapshots s from the point of view of actorID. Combatants
// appear in initiative order, followed by any that have not rolled.
//
// Precondition: s must not be nil.
// Postcondition: ws.Self.ID == actorID; all combatants are represented.
func BuildWorldState(s *combat.State, actorID string) (*WorldState, error) {
	if _, ok := s.Combatant(actorID); !ok {
		return nil, fmt.Errorf("ai.BuildWorldState: unknown combatant %q", actorID)
	}
	ws := &WorldState{Round: s.Round}
	add := func(id string) {
		c := s.Combatants[id]
		cs := &CombatantState{
			ID:     c.ID,
			Name:   c.Name,
			Player: c.IsPlayer(),
			HP:     c.CurrentHP,
			MaxHP:  c.MaxHP,
			AC:     c.AC,
			Down:   c.IsDown(),
		}
		if c.Position != nil {
			cs.X, cs.Y, cs.Placed = c.Position.X, c.Position.Y, true
		}
		if id == actorID {
			ws.Self = cs
		}
		ws.Combatants = append(ws.Combatants, cs)
	}
	for _, e := range s.Order {
		add(e.CombatantID)
	}
	for _, id := range s.Roster {
		if !s.HasRolled(id) {
			add(id)
		}
	}
	return ws, nil
}
