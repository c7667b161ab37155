// Package skirmish runs a fully automated encounter: it assembles a party
// and a monster group into combatants, then lets tactics planners choose
// every action until one side falls.
package skirmish

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/combat"
	"github.com/cory-johannsen/encounter/internal/game/dice"
	"github.com/cory-johannsen/encounter/internal/game/npc"
)

// Arsenal maps a combatant ID to the attack it makes on its turn.
type Arsenal map[string]combat.AttackerStats

// Lineup is an assembled encounter roster ready for InitiateCombat.
type Lineup struct {
	Combatants []combat.Combatant
	Arsenal    Arsenal
}

// Assemble converts party members and spawned monsters into combatants. A
// character attacks with its first weapon and a monster with the first
// attack of its stat block. A character without a weapon has no Arsenal
// entry and passes its turns. When roller is non-nil monster hit points are
// rolled from their hit dice.
//
// Postcondition: Returns a Lineup with the party first, or an error naming
// every unknown monster template.
func Assemble(party []*character.Character, bestiary *npc.Bestiary, monsters []string, roller *dice.Roller) (Lineup, error) {
	l := Lineup{Arsenal: make(Arsenal, len(party)+len(monsters))}
	for _, c := range party {
		pc, err := combat.FromCharacter(c)
		if err != nil {
			return Lineup{}, err
		}
		l.Combatants = append(l.Combatants, pc)
		if len(c.Equipment.Weapons) > 0 {
			l.Arsenal[c.ID] = combat.StatsFor(c, c.Equipment.Weapons[0])
		}
	}
	var errs []error
	for _, id := range monsters {
		inst, err := bestiary.Spawn(id, roller)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.Combatants = append(l.Combatants, combat.FromNPC(inst))
		l.Arsenal[inst.ID] = combat.StatsForNPC(inst.Attacks[0])
	}
	if len(errs) > 0 {
		return Lineup{}, fmt.Errorf("skirmish: assembling lineup: %w", errors.Join(errs...))
	}
	return l, nil
}
