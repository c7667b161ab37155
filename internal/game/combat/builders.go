package combat

import (
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
	"github.com/cory-johannsen/encounter/internal/game/npc"
	"github.com/cory-johannsen/encounter/internal/game/rules"
)

// FromCharacter builds a player combatant from a character sheet. AC and
// initiative come from the rules package; persistent exhaustion carries over
// as the exhaustion condition.
//
// Postcondition: Returns an error when c.Exhaustion is outside 0-6.
func FromCharacter(c *character.Character) (Combatant, error) {
	out := Combatant{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      KindPlayer,
		CurrentHP: c.CurrentHP,
		MaxHP:     c.MaxHP,
		TempHP:    c.TempHP,
		AC:        rules.ArmorClass(c),
		DexMod:    rules.InitiativeBonus(c),
	}
	if c.Exhaustion != 0 {
		if err := out.Conditions.Apply(condition.Active{Type: condition.Exhaustion, Level: c.Exhaustion}); err != nil {
			return Combatant{}, fmt.Errorf("combat: character %q: %w", c.ID, err)
		}
	}
	return out, nil
}

// FromNPC builds an enemy combatant from a spawned instance.
func FromNPC(inst *npc.Instance) Combatant {
	kind := KindMonster
	if inst.Kind == npc.KindNPC {
		kind = KindNPC
	}
	c := Combatant{
		ID:        inst.ID,
		Name:      inst.Name,
		Kind:      kind,
		CurrentHP: inst.CurrentHP,
		MaxHP:     inst.MaxHP,
		AC:        inst.AC,
		DexMod:    rules.Modifier(inst.Abilities.Dexterity),
	}
	c.Resistances = append(c.Resistances, inst.DamageResistances...)
	c.Immunities = append(c.Immunities, inst.DamageImmunities...)
	c.Vulnerabilities = append(c.Vulnerabilities, inst.DamageVulnerabilities...)
	c.ConditionImmunities = append(c.ConditionImmunities, inst.ConditionImmunities...)
	return c
}

// StatsFor returns the attack numbers for c wielding w: the rules attack
// bonus and the weapon's damage dice plus the attack ability modifier.
func StatsFor(c *character.Character, w *inventory.WeaponDef) AttackerStats {
	dmg := w.DamageDice
	if mod := rules.DamageModifier(c, w); mod != 0 {
		dmg = fmt.Sprintf("%s%+d", dmg, mod)
	}
	return AttackerStats{
		AttackBonus: rules.AttackBonus(c, w),
		DamageDice:  dmg,
		DamageType:  w.DamageType,
	}
}

// StatsForNPC returns the attack numbers printed on a stat block line.
func StatsForNPC(a npc.Attack) AttackerStats {
	return AttackerStats{
		AttackBonus: a.AttackBonus,
		DamageDice:  a.Damage,
		DamageType:  a.DamageType,
	}
}
