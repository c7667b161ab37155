// Package character defines the character sheet data model: ability scores,
// proficiencies, hit dice and rest recovery.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/inventory"
)

// MaxLevel is the highest character level.
const MaxLevel = 20

// FieldError reports a character field holding an illegal value.
type FieldError struct {
	Field  string
	Value  int
	Reason string
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("character: %s = %d: %s", e.Field, e.Value, e.Reason)
}

// Character is a snapshot of a player character sheet. Derived numbers
// (AC, attack bonuses, save DCs) are not stored; compute them with the rules
// package.
type Character struct {
	ID         string
	Name       string
	Class      string
	Level      int
	Experience int

	Abilities     AbilityScores
	Proficiencies Proficiencies
	// SpellcastingAbility is empty for characters that cannot cast spells.
	SpellcastingAbility Ability

	HitDie  DieType // class hit die
	HitDice HitDice

	MaxHP     int
	CurrentHP int
	TempHP    int
	// Exhaustion is the persistent exhaustion level, 0-6.
	Exhaustion int

	Equipment inventory.Equipment
}

// Validate checks ability scores, level, hit points and hit dice.
//
// Postcondition: Returns nil or an error wrapping one *FieldError per violation.
func (c *Character) Validate() error {
	var errs []error
	if err := c.Abilities.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Level < 1 || c.Level > MaxLevel {
		errs = append(errs, &FieldError{Field: "level", Value: c.Level, Reason: fmt.Sprintf("must be 1-%d", MaxLevel)})
	}
	if c.SpellcastingAbility != "" && !c.SpellcastingAbility.Valid() {
		errs = append(errs, fmt.Errorf("character: unknown spellcasting ability %q", c.SpellcastingAbility))
	}
	if !c.HitDie.Valid() {
		errs = append(errs, &FieldError{Field: "hit_die", Value: int(c.HitDie), Reason: "must be d6, d8, d10 or d12"})
	}
	if c.MaxHP < 1 {
		errs = append(errs, &FieldError{Field: "max_hp", Value: c.MaxHP, Reason: "must be >= 1"})
	}
	if c.CurrentHP < 0 || c.CurrentHP > c.MaxHP {
		errs = append(errs, &FieldError{Field: "current_hp", Value: c.CurrentHP, Reason: "must be 0-max_hp"})
	}
	if c.TempHP < 0 {
		errs = append(errs, &FieldError{Field: "temp_hp", Value: c.TempHP, Reason: "must be >= 0"})
	}
	if c.Exhaustion < 0 || c.Exhaustion > 6 {
		errs = append(errs, &FieldError{Field: "exhaustion", Value: c.Exhaustion, Reason: "must be 0-6"})
	}
	if err := c.HitDice.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of c. Equipment definitions are shared; they are
// immutable once loaded.
func (c *Character) Clone() *Character {
	out := *c
	out.Proficiencies = c.Proficiencies.Clone()
	out.HitDice = c.HitDice.Clone()
	out.Equipment.Weapons = append([]*inventory.WeaponDef(nil), c.Equipment.Weapons...)
	return &out
}
