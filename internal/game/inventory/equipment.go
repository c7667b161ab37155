package inventory

import (
	"errors"
	"fmt"
)

// Loadout names the equipment a character carries by definition ID, as it
// appears in a roster file.
type Loadout struct {
	Armor   string   `yaml:"armor"`
	Shield  string   `yaml:"shield"`
	Weapons []string `yaml:"weapons"`
}

// Equipment holds resolved definitions for one character. Only one body
// armor slot and one shield slot exist; either may be nil.
type Equipment struct {
	Armor   *ArmorDef
	Shield  *ArmorDef
	Weapons []*WeaponDef
}

// Weapon returns the equipped weapon with the given id.
func (e Equipment) Weapon(id string) (*WeaponDef, bool) {
	for _, w := range e.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// Resolve looks up every ID in l.
//
// Postcondition: Returns an Equipment whose Armor is body armor and whose
// Shield is a shield, or an error listing every unknown or misplaced ID.
func (r *Registry) Resolve(l Loadout) (Equipment, error) {
	var (
		eq   Equipment
		errs []error
	)
	if l.Armor != "" {
		a, ok := r.Armor(l.Armor)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("armor %q not found", l.Armor))
		case a.IsShield():
			errs = append(errs, fmt.Errorf("armor %q is a shield", l.Armor))
		default:
			eq.Armor = a
		}
	}
	if l.Shield != "" {
		s, ok := r.Armor(l.Shield)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("shield %q not found", l.Shield))
		case !s.IsShield():
			errs = append(errs, fmt.Errorf("shield %q is not a shield", l.Shield))
		default:
			eq.Shield = s
		}
	}
	for _, id := range l.Weapons {
		w, ok := r.Weapon(id)
		if !ok {
			errs = append(errs, fmt.Errorf("weapon %q not found", id))
			continue
		}
		eq.Weapons = append(eq.Weapons, w)
	}
	if len(errs) > 0 {
		return Equipment{}, fmt.Errorf("inventory: resolving loadout: %w", errors.Join(errs...))
	}
	return eq, nil
}
