// Package combat implements the encounter state machine: initiative order,
// turn advancement, attack and damage resolution, conditions and end-of-combat
// detection.
package combat

import (
	"slices"

	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Kind distinguishes player characters from NPCs and monsters.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindNPC     Kind = "npc"
	KindMonster Kind = "monster"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindPlayer || k == KindNPC || k == KindMonster
}

// IsEnemy reports whether k fights on the enemy side.
func (k Kind) IsEnemy() bool { return k == KindNPC || k == KindMonster }

// Position is a square on the battlefield grid.
type Position struct {
	X int
	Y int
}

// Grid is the optional battlefield size, in squares. Bounds are not enforced
// by the engine.
type Grid struct {
	Width  int
	Height int
}

// Combatant is one participant in an encounter.
//
// Invariant: 0 <= CurrentHP <= MaxHP; TempHP >= 0.
type Combatant struct {
	ID        string
	Name      string
	Kind      Kind
	CurrentHP int
	MaxHP     int
	TempHP    int
	AC        int
	// DexMod is the initiative bonus and initiative tiebreak key.
	DexMod        int
	Conditions    condition.Set
	Position      *Position
	ReactionsUsed int
	Concentrating bool

	Resistances         []dice.DamageType
	Immunities          []dice.DamageType
	Vulnerabilities     []dice.DamageType
	ConditionImmunities []condition.Type
}

// IsDown reports whether the combatant is at 0 hit points.
func (c *Combatant) IsDown() bool { return c.CurrentHP <= 0 }

// IsPlayer reports whether this combatant is a player character.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// Effects returns the merged effects of every active condition.
func (c *Combatant) Effects() condition.Effects { return c.Conditions.Effects() }

// clone returns a deep copy of c.
func (c *Combatant) clone() *Combatant {
	out := *c
	out.Conditions = c.Conditions.Clone()
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	out.Resistances = slices.Clone(c.Resistances)
	out.Immunities = slices.Clone(c.Immunities)
	out.Vulnerabilities = slices.Clone(c.Vulnerabilities)
	out.ConditionImmunities = slices.Clone(c.ConditionImmunities)
	return &out
}

// takeDamage drains TempHP first, then CurrentHP, flooring both at zero.
// It returns the amount absorbed by temporary hit points.
//
// Precondition: amount >= 0.
func (c *Combatant) takeDamage(amount int) (absorbed int) {
	absorbed = min(c.TempHP, amount)
	c.TempHP -= absorbed
	c.CurrentHP = max(0, c.CurrentHP-(amount-absorbed))
	return absorbed
}

// adjustDamage applies immunity, resistance and vulnerability to amount.
// Immunity wins; resistance and vulnerability of the same type cancel.
func (c *Combatant) adjustDamage(amount int, dt dice.DamageType) int {
	if slices.Contains(c.Immunities, dt) {
		return 0
	}
	resist := slices.Contains(c.Resistances, dt) || c.Effects().ResistsAllDamage
	vulnerable := slices.Contains(c.Vulnerabilities, dt)
	switch {
	case resist && !vulnerable:
		return amount / 2
	case vulnerable && !resist:
		return amount * 2
	default:
		return amount
	}
}
