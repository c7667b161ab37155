package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// WeaponCategory is the proficiency group a weapon belongs to.
type WeaponCategory string

const (
	SimpleMelee   WeaponCategory = "simple_melee"
	SimpleRanged  WeaponCategory = "simple_ranged"
	MartialMelee  WeaponCategory = "martial_melee"
	MartialRanged WeaponCategory = "martial_ranged"
)

var validWeaponCategories = map[WeaponCategory]struct{}{
	SimpleMelee:   {},
	SimpleRanged:  {},
	MartialMelee:  {},
	MartialRanged: {},
}

// WeaponProperty is one entry of the fixed weapon-property vocabulary.
type WeaponProperty string

const (
	PropertyAmmunition WeaponProperty = "ammunition"
	PropertyFinesse    WeaponProperty = "finesse"
	PropertyHeavy      WeaponProperty = "heavy"
	PropertyLight      WeaponProperty = "light"
	PropertyLoading    WeaponProperty = "loading"
	PropertyRanged     WeaponProperty = "ranged"
	PropertyReach      WeaponProperty = "reach"
	PropertySpecial    WeaponProperty = "special"
	PropertyThrown     WeaponProperty = "thrown"
	PropertyTwoHanded  WeaponProperty = "two_handed"
	PropertyVersatile  WeaponProperty = "versatile"
)

var validWeaponProperties = map[WeaponProperty]struct{}{
	PropertyAmmunition: {},
	PropertyFinesse:    {},
	PropertyHeavy:      {},
	PropertyLight:      {},
	PropertyLoading:    {},
	PropertyRanged:     {},
	PropertyReach:      {},
	PropertySpecial:    {},
	PropertyThrown:     {},
	PropertyTwoHanded:  {},
	PropertyVersatile:  {},
}

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Category   WeaponCategory   `yaml:"category"`
	DamageDice string           `yaml:"damage_dice"`
	DamageType dice.DamageType  `yaml:"damage_type"`
	Properties []WeaponProperty `yaml:"properties"`
	// VersatileDice is the two-handed damage of a versatile weapon.
	VersatileDice string `yaml:"versatile_dice"`
	NormalRange   int    `yaml:"normal_range"` // feet; 0 = melee only
	LongRange     int    `yaml:"long_range"`
	Weight        int    `yaml:"weight"`
}

// Has reports whether the weapon carries property p.
func (w *WeaponDef) Has(p WeaponProperty) bool {
	for _, q := range w.Properties {
		if q == p {
			return true
		}
	}
	return false
}

// IsRanged reports whether attacks with the weapon use DEX by default.
func (w *WeaponDef) IsRanged() bool {
	return w.Category == SimpleRanged || w.Category == MartialRanged || w.Has(PropertyRanged)
}

// IsMelee reports whether the weapon is a melee weapon.
func (w *WeaponDef) IsMelee() bool { return !w.IsRanged() }

// Validate checks that the WeaponDef satisfies its invariants.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validWeaponCategories[w.Category]; !ok {
		errs = append(errs, fmt.Errorf("category %q is not a valid weapon category", w.Category))
	}
	if _, err := dice.Parse(w.DamageDice); err != nil {
		errs = append(errs, fmt.Errorf("damage_dice: %w", err))
	}
	if !w.DamageType.Valid() {
		errs = append(errs, fmt.Errorf("damage_type %q is not a valid damage type", w.DamageType))
	}
	for _, p := range w.Properties {
		if _, ok := validWeaponProperties[p]; !ok {
			errs = append(errs, fmt.Errorf("property %q is not a valid weapon property", p))
		}
	}
	if w.Has(PropertyVersatile) {
		if _, err := dice.Parse(w.VersatileDice); err != nil {
			errs = append(errs, fmt.Errorf("versatile_dice: %w", err))
		}
	}
	if w.NormalRange < 0 || w.LongRange < w.NormalRange {
		errs = append(errs, errors.New("ranges must satisfy 0 <= normal_range <= long_range"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	weapons, err := loadDir[WeaponDef](dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: %w", err)
	}
	return weapons, nil
}
