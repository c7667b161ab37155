// Package inventory provides definitions and loaders for the armor and
// weapons a combatant can equip.
package inventory

import (
	"errors"
	"fmt"
)

// ArmorCategory classifies an armor record.
type ArmorCategory string

const (
	ArmorLight  ArmorCategory = "light"
	ArmorMedium ArmorCategory = "medium"
	ArmorHeavy  ArmorCategory = "heavy"
	ArmorShield ArmorCategory = "shield"
)

var validArmorCategories = map[ArmorCategory]struct{}{
	ArmorLight:  {},
	ArmorMedium: {},
	ArmorHeavy:  {},
	ArmorShield: {},
}

// DefaultShieldBonus is the AC granted by a shield whose record leaves BaseAC at 0.
const DefaultShieldBonus = 2

// ArmorDef defines the static properties of an armor piece or shield loaded from YAML.
//
// For body armor BaseAC replaces the unarmored 10. For shields BaseAC is the
// bonus added on top of the body AC.
type ArmorDef struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Category       ArmorCategory `yaml:"category"`
	BaseAC         int           `yaml:"base_ac"`
	AddDexModifier bool          `yaml:"add_dex_modifier"`
	// MaxDexBonus caps the DEX modifier when non-nil. nil means uncapped.
	MaxDexBonus         *int `yaml:"max_dex_bonus"`
	StrengthRequirement int  `yaml:"strength_requirement"`
	StealthDisadvantage bool `yaml:"stealth_disadvantage"`
	Weight              int  `yaml:"weight"`
}

// IsShield reports whether the record occupies the shield slot.
func (a *ArmorDef) IsShield() bool { return a.Category == ArmorShield }

// ShieldBonus returns the AC a shield adds: its BaseAC, or DefaultShieldBonus when BaseAC is 0.
//
// Precondition: a.IsShield().
func (a *ArmorDef) ShieldBonus() int {
	if a.BaseAC == 0 {
		return DefaultShieldBonus
	}
	return a.BaseAC
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
//
// Medium armor that adds DEX must carry an explicit max_dex_bonus; a missing
// cap would otherwise read as uncapped.
//
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validArmorCategories[a.Category]; !ok {
		errs = append(errs, fmt.Errorf("category %q is not a valid armor category", a.Category))
	}
	if a.BaseAC < 0 {
		errs = append(errs, errors.New("base_ac must be >= 0"))
	}
	if a.Category != ArmorShield && a.BaseAC == 0 {
		errs = append(errs, errors.New("base_ac must be > 0 for body armor"))
	}
	if a.MaxDexBonus != nil && *a.MaxDexBonus < 0 {
		errs = append(errs, errors.New("max_dex_bonus must be >= 0"))
	}
	if a.Category == ArmorMedium && a.AddDexModifier && a.MaxDexBonus == nil {
		errs = append(errs, errors.New("max_dex_bonus is required for medium armor"))
	}
	if a.Category == ArmorHeavy && a.AddDexModifier {
		errs = append(errs, errors.New("add_dex_modifier must be false for heavy armor"))
	}
	if a.StrengthRequirement < 0 || a.StrengthRequirement > 30 {
		errs = append(errs, errors.New("strength_requirement must be 0-30"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadArmors reads all .yaml files in dir and returns the parsed ArmorDef slice.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil slice and nil error on success; all returned defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	armors, err := loadDir[ArmorDef](dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmors: %w", err)
	}
	return armors, nil
}
