// Package rules derives every numeric character fact from a character
// sheet: ability modifiers, proficiency, armor class, attack bonuses, save
// DCs, experience levels and hit points. All functions are pure.
package rules

import (
	"github.com/cory-johannsen/encounter/internal/game/character"
)

// Modifier returns floor((score-10)/2).
//
// Precondition: score is in [1, 30]; use CheckedModifier for untrusted input.
// Postcondition: Result is in [-5, 10] for valid scores.
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// CheckedModifier is Modifier with the 1-30 domain enforced.
//
// Postcondition: Returns a *character.FieldError for scores outside 1-30.
func CheckedModifier(score int) (int, error) {
	if err := character.CheckScore("score", score); err != nil {
		return 0, err
	}
	return Modifier(score), nil
}

// AbilityModifier returns the modifier for ability a on c.
func AbilityModifier(c *character.Character, a character.Ability) int {
	return Modifier(c.Abilities.Score(a))
}

// ProficiencyBonus returns 2 + floor((level-1)/4) with level clamped to [1, 20].
//
// Postcondition: Result is in [2, 6].
func ProficiencyBonus(level int) int {
	level = min(max(level, 1), character.MaxLevel)
	return 2 + (level-1)/4
}

// InitiativeBonus returns the DEX modifier.
func InitiativeBonus(c *character.Character) int {
	return AbilityModifier(c, character.Dexterity)
}

// PassivePerception returns 10 + WIS modifier, plus the proficiency bonus
// when the character is proficient in perception.
func PassivePerception(c *character.Character) int {
	p := 10 + AbilityModifier(c, character.Wisdom)
	if c.Proficiencies.Skills.Has(SkillPerception) {
		p += ProficiencyBonus(c.Level)
	}
	return p
}

// SpellSaveDC returns 8 + proficiency + spellcasting ability modifier.
//
// Postcondition: ok is false when the character has no spellcasting ability.
func SpellSaveDC(c *character.Character) (dc int, ok bool) {
	if !c.SpellcastingAbility.Valid() {
		return 0, false
	}
	return 8 + ProficiencyBonus(c.Level) + AbilityModifier(c, c.SpellcastingAbility), true
}

// CarryingCapacity returns STR score × 15, in pounds.
func CarryingCapacity(c *character.Character) int {
	return c.Abilities.Strength * 15
}

// SavingThrowModifier returns the ability modifier plus the proficiency
// bonus when the character is proficient in saves of that ability.
func SavingThrowModifier(c *character.Character, a character.Ability) int {
	m := AbilityModifier(c, a)
	if c.Proficiencies.SavingThrows.Has(string(a)) {
		m += ProficiencyBonus(c.Level)
	}
	return m
}

// ConcentrationSaveDC returns max(10, floor(damageTaken/2)).
func ConcentrationSaveDC(damageTaken int) int {
	return max(10, damageTaken/2)
}
