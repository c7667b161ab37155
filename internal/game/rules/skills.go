package rules

import (
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/character"
)

// Skill keys, as stored in character.Proficiencies.Skills.
const (
	SkillAcrobatics     = "acrobatics"
	SkillAnimalHandling = "animal_handling"
	SkillArcana         = "arcana"
	SkillAthletics      = "athletics"
	SkillDeception      = "deception"
	SkillHistory        = "history"
	SkillInsight        = "insight"
	SkillIntimidation   = "intimidation"
	SkillInvestigation  = "investigation"
	SkillMedicine       = "medicine"
	SkillNature         = "nature"
	SkillPerception     = "perception"
	SkillPerformance    = "performance"
	SkillPersuasion     = "persuasion"
	SkillReligion       = "religion"
	SkillSleightOfHand  = "sleight_of_hand"
	SkillStealth        = "stealth"
	SkillSurvival       = "survival"
)

var skillAbilities = map[string]character.Ability{
	SkillAcrobatics:     character.Dexterity,
	SkillAnimalHandling: character.Wisdom,
	SkillArcana:         character.Intelligence,
	SkillAthletics:      character.Strength,
	SkillDeception:      character.Charisma,
	SkillHistory:        character.Intelligence,
	SkillInsight:        character.Wisdom,
	SkillIntimidation:   character.Charisma,
	SkillInvestigation:  character.Intelligence,
	SkillMedicine:       character.Wisdom,
	SkillNature:         character.Intelligence,
	SkillPerception:     character.Wisdom,
	SkillPerformance:    character.Charisma,
	SkillPersuasion:     character.Charisma,
	SkillReligion:       character.Intelligence,
	SkillSleightOfHand:  character.Dexterity,
	SkillStealth:        character.Dexterity,
	SkillSurvival:       character.Wisdom,
}

// SkillAbility returns the ability a skill is rolled with.
func SkillAbility(skill string) (character.Ability, bool) {
	a, ok := skillAbilities[skill]
	return a, ok
}

// SkillModifier returns the skill's ability modifier plus the proficiency
// bonus when the character is proficient in the skill.
//
// Postcondition: Returns an error for a skill outside the standard eighteen.
func SkillModifier(c *character.Character, skill string) (int, error) {
	a, ok := SkillAbility(skill)
	if !ok {
		return 0, fmt.Errorf("rules: unknown skill %q", skill)
	}
	m := AbilityModifier(c, a)
	if c.Proficiencies.Skills.Has(skill) {
		m += ProficiencyBonus(c.Level)
	}
	return m, nil
}
