package rules

import (
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
)

// DerivedStats is the computed view of a character sheet. It is never stored;
// call Derive again whenever the sheet changes.
type DerivedStats struct {
	ProficiencyBonus  int
	ArmorClass        int
	InitiativeBonus   int
	PassivePerception int
	// SpellSaveDC is nil for characters without a spellcasting ability.
	SpellSaveDC      *int
	AttackBonuses    map[string]int // keyed by weapon ID
	CarryingCapacity int
}

// Derive computes every derived stat for c. Attack bonuses are computed for
// weapons, or for every equipped weapon when none are given.
//
// Postcondition: Returns an error wrapping *character.FieldError when an
// ability score is outside 1-30.
func Derive(c *character.Character, weapons ...*inventory.WeaponDef) (DerivedStats, error) {
	if err := c.Abilities.Validate(); err != nil {
		return DerivedStats{}, fmt.Errorf("rules: deriving stats for %q: %w", c.Name, err)
	}
	if len(weapons) == 0 {
		weapons = c.Equipment.Weapons
	}
	d := DerivedStats{
		ProficiencyBonus:  ProficiencyBonus(c.Level),
		ArmorClass:        ArmorClass(c),
		InitiativeBonus:   InitiativeBonus(c),
		PassivePerception: PassivePerception(c),
		AttackBonuses:     make(map[string]int, len(weapons)),
		CarryingCapacity:  CarryingCapacity(c),
	}
	if dc, ok := SpellSaveDC(c); ok {
		d.SpellSaveDC = &dc
	}
	for _, w := range weapons {
		d.AttackBonuses[w.ID] = AttackBonus(c, w)
	}
	return d, nil
}
