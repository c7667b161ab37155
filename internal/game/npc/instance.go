package npc

import (
	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Instance is one spawned monster or NPC.
type Instance struct {
	ID         string
	TemplateID string
	Name       string
	Kind       Kind
	CurrentHP  int
	MaxHP      int
	AC         int
	Abilities  character.AbilityScores
	// HPRoll records the hit point roll when the spawn rolled its hit dice.
	HPRoll *dice.RollResult

	DamageResistances     []dice.DamageType
	DamageImmunities      []dice.DamageType
	DamageVulnerabilities []dice.DamageType
	ConditionImmunities   []condition.Type

	Attacks []Attack
}

// NewInstance creates a live instance from tmpl with the template's fixed hit points.
//
// Precondition: id must be non-empty; tmpl must be non-nil.
// Postcondition: CurrentHP equals MaxHP equals tmpl.HitPoints.
func NewInstance(id string, tmpl *Template) *Instance {
	return &Instance{
		ID:                    id,
		TemplateID:            tmpl.ID,
		Name:                  tmpl.Name,
		Kind:                  tmpl.Kind,
		CurrentHP:             tmpl.HitPoints,
		MaxHP:                 tmpl.HitPoints,
		AC:                    tmpl.AC,
		Abilities:             tmpl.Abilities,
		DamageResistances:     append([]dice.DamageType(nil), tmpl.DamageResistances...),
		DamageImmunities:      append([]dice.DamageType(nil), tmpl.DamageImmunities...),
		DamageVulnerabilities: append([]dice.DamageType(nil), tmpl.DamageVulnerabilities...),
		ConditionImmunities:   append([]condition.Type(nil), tmpl.ConditionImmunities...),
		Attacks:               append([]Attack(nil), tmpl.Attacks...),
	}
}

// NewRolledInstance is NewInstance with hit points rolled from tmpl.HitDice.
// A template without hit dice falls back to its fixed hit points.
//
// Precondition: tmpl passed Validate; roller is non-nil.
// Postcondition: MaxHP >= 1.
func NewRolledInstance(id string, tmpl *Template, roller *dice.Roller) *Instance {
	inst := NewInstance(id, tmpl)
	if tmpl.HitDice == "" {
		return inst
	}
	roll := roller.Roll(dice.MustParse(tmpl.HitDice), dice.RollOptions{})
	hp := max(1, roll.Total())
	inst.MaxHP = hp
	inst.CurrentHP = hp
	inst.HPRoll = &roll
	return inst
}
