package rules

import (
	"github.com/cory-johannsen/encounter/internal/game/character"
)

// UnarmoredBase is the AC of a character wearing no body armor, before DEX.
const UnarmoredBase = 10

// ArmorClass computes AC from the equipped body armor and shield.
//
// Unarmored: 10 + DEX. Armored: BaseAC, plus DEX when the armor adds it,
// capped at MaxDexBonus when the armor carries one. A shield adds its own
// bonus. Only one body armor and one shield are read.
func ArmorClass(c *character.Character) int {
	dex := AbilityModifier(c, character.Dexterity)
	ac := UnarmoredBase + dex
	if a := c.Equipment.Armor; a != nil {
		ac = a.BaseAC
		if a.AddDexModifier {
			if a.MaxDexBonus != nil {
				dex = min(dex, *a.MaxDexBonus)
			}
			ac += dex
		}
	}
	if s := c.Equipment.Shield; s != nil {
		ac += s.ShieldBonus()
	}
	return ac
}
