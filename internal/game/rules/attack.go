package rules

import (
	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
)

// AttackAbility returns the ability used to attack with w: STR for melee,
// DEX for ranged, and whichever modifier is higher for finesse weapons.
func AttackAbility(c *character.Character, w *inventory.WeaponDef) character.Ability {
	if w.Has(inventory.PropertyFinesse) {
		if AbilityModifier(c, character.Dexterity) > AbilityModifier(c, character.Strength) {
			return character.Dexterity
		}
		return character.Strength
	}
	if w.IsRanged() {
		return character.Dexterity
	}
	return character.Strength
}

// IsProficientWith reports whether the character's weapon proficiencies name
// the weapon's category or the weapon itself.
func IsProficientWith(c *character.Character, w *inventory.WeaponDef) bool {
	return c.Proficiencies.Weapons.Has(string(w.Category)) || c.Proficiencies.Weapons.Has(w.ID)
}

// AttackBonus returns the attack ability modifier plus the proficiency
// bonus when proficient.
func AttackBonus(c *character.Character, w *inventory.WeaponDef) int {
	b := AbilityModifier(c, AttackAbility(c, w))
	if IsProficientWith(c, w) {
		b += ProficiencyBonus(c.Level)
	}
	return b
}

// DamageModifier returns the flat damage bonus for attacks with w, the same
// ability modifier used for the attack roll.
func DamageModifier(c *character.Character, w *inventory.WeaponDef) int {
	return AbilityModifier(c, AttackAbility(c, w))
}
