package rules_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/dice"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
	"github.com/cory-johannsen/encounter/internal/game/rules"
)

func intPtr(v int) *int { return &v }

func sheet() *character.Character {
	return &character.Character{
		Name:  "Thorin",
		Level: 5,
		Abilities: character.AbilityScores{
			Strength: 16, Dexterity: 14, Constitution: 14,
			Intelligence: 10, Wisdom: 12, Charisma: 8,
		},
		Proficiencies: character.Proficiencies{
			SavingThrows: character.NewSet("str", "con"),
			Skills:       character.NewSet("athletics", "perception"),
			Weapons:      character.NewSet("simple_melee", "martial_melee"),
		},
		HitDie:    character.D10,
		HitDice:   character.HitDice{character.D10: {Total: 5}},
		MaxHP:     44,
		CurrentHP: 44,
	}
}

var (
	longsword = &inventory.WeaponDef{
		ID: "longsword", Name: "Longsword", Category: inventory.MartialMelee,
		DamageDice: "1d8", DamageType: dice.Slashing,
	}
	rapier = &inventory.WeaponDef{
		ID: "rapier", Name: "Rapier", Category: inventory.MartialMelee,
		DamageDice: "1d8", DamageType: dice.Piercing,
		Properties: []inventory.WeaponProperty{inventory.PropertyFinesse},
	}
	shortbow = &inventory.WeaponDef{
		ID: "shortbow", Name: "Shortbow", Category: inventory.SimpleRanged,
		DamageDice: "1d6", DamageType: dice.Piercing,
	}
	leather   = &inventory.ArmorDef{ID: "leather", Name: "Leather", Category: inventory.ArmorLight, BaseAC: 11, AddDexModifier: true}
	scaleMail = &inventory.ArmorDef{ID: "scale_mail", Name: "Scale Mail", Category: inventory.ArmorMedium, BaseAC: 14, AddDexModifier: true, MaxDexBonus: intPtr(2)}
	chainMail = &inventory.ArmorDef{ID: "chain_mail", Name: "Chain Mail", Category: inventory.ArmorHeavy, BaseAC: 16}
	shield    = &inventory.ArmorDef{ID: "shield", Name: "Shield", Category: inventory.ArmorShield, BaseAC: 2}
)

func TestModifier_SpotValues(t *testing.T) {
	assert.Equal(t, 0, rules.Modifier(10))
	assert.Equal(t, -5, rules.Modifier(1))
	assert.Equal(t, 5, rules.Modifier(20))
	assert.Equal(t, -1, rules.Modifier(8))
	assert.Equal(t, -1, rules.Modifier(9))
	assert.Equal(t, 10, rules.Modifier(30))
}

func TestModifier_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.IntRange(1, 30).Draw(rt, "score")
		want := int(math.Floor(float64(s-10) / 2))
		assert.Equal(rt, want, rules.Modifier(s))
		got, err := rules.CheckedModifier(s)
		require.NoError(rt, err)
		assert.Equal(rt, want, got)
	})
}

func TestCheckedModifier_OutOfRange(t *testing.T) {
	for _, s := range []int{0, -3, 31} {
		_, err := rules.CheckedModifier(s)
		var fe *character.FieldError
		require.True(t, errors.As(err, &fe), "score %d", s)
		assert.Equal(t, s, fe.Value)
	}
}

func TestProficiencyBonus_Table(t *testing.T) {
	want := map[int]int{1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 12: 4, 13: 5, 16: 5, 17: 6, 20: 6, 0: 2, -4: 2, 21: 6, 99: 6}
	for level, pb := range want {
		assert.Equal(t, pb, rules.ProficiencyBonus(level), "level %d", level)
	}
}

func TestProficiencyBonus_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(-10, 40).Draw(rt, "level")
		clamped := min(max(level, 1), 20)
		assert.Equal(rt, 2+(clamped-1)/4, rules.ProficiencyBonus(level))
	})
}

func TestArmorClass(t *testing.T) {
	tests := []struct {
		name   string
		dex    int
		armor  *inventory.ArmorDef
		shield *inventory.ArmorDef
		want   int
	}{
		{"unarmored", 14, nil, nil, 12},
		{"unarmored low dex", 8, nil, nil, 9},
		{"light uncapped", 18, leather, nil, 15},
		{"medium capped", 18, scaleMail, nil, 16},
		{"medium under cap", 12, scaleMail, nil, 15},
		{"medium negative dex", 6, scaleMail, nil, 12},
		{"heavy ignores dex", 18, chainMail, nil, 16},
		{"heavy and shield", 18, chainMail, shield, 18},
		{"shield only", 14, nil, shield, 14},
		{"shield default bonus", 10, nil, &inventory.ArmorDef{ID: "buckler", Category: inventory.ArmorShield}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sheet()
			c.Abilities.Dexterity = tt.dex
			c.Equipment = inventory.Equipment{Armor: tt.armor, Shield: tt.shield}
			assert.Equal(t, tt.want, rules.ArmorClass(c))
		})
	}
}

func TestPassivePerception(t *testing.T) {
	c := sheet()
	assert.Equal(t, 10+1+3, rules.PassivePerception(c))
	c.Proficiencies.Skills = nil
	assert.Equal(t, 11, rules.PassivePerception(c))
}

func TestSpellSaveDC(t *testing.T) {
	c := sheet()
	_, ok := rules.SpellSaveDC(c)
	assert.False(t, ok)

	c.SpellcastingAbility = character.Wisdom
	dc, ok := rules.SpellSaveDC(c)
	require.True(t, ok)
	assert.Equal(t, 8+3+1, dc)
}

func TestAttackBonus(t *testing.T) {
	c := sheet()
	assert.Equal(t, 6, rules.AttackBonus(c, longsword), "STR +3, proficient +3")
	assert.Equal(t, 2, rules.AttackBonus(c, shortbow), "DEX +2, not proficient with simple ranged")

	c.Proficiencies.Weapons.Add("shortbow")
	assert.Equal(t, 5, rules.AttackBonus(c, shortbow), "proficiency by weapon id")

	c.Abilities.Dexterity = 18
	assert.Equal(t, character.Dexterity, rules.AttackAbility(c, rapier))
	assert.Equal(t, 7, rules.AttackBonus(c, rapier), "finesse takes the higher of STR and DEX")
	assert.Equal(t, character.Strength, rules.AttackAbility(c, longsword))
	assert.Equal(t, 3, rules.DamageModifier(c, longsword))
}

func TestConcentrationSaveDC(t *testing.T) {
	assert.Equal(t, 10, rules.ConcentrationSaveDC(0))
	assert.Equal(t, 10, rules.ConcentrationSaveDC(21))
	assert.Equal(t, 11, rules.ConcentrationSaveDC(22))
	assert.Equal(t, 25, rules.ConcentrationSaveDC(51))
}

func TestCarryingCapacity(t *testing.T) {
	assert.Equal(t, 240, rules.CarryingCapacity(sheet()))
}

func TestSavingThrowModifier(t *testing.T) {
	c := sheet()
	assert.Equal(t, 6, rules.SavingThrowModifier(c, character.Strength))
	assert.Equal(t, 2, rules.SavingThrowModifier(c, character.Dexterity))
	assert.Equal(t, -1, rules.SavingThrowModifier(c, character.Charisma))
}

func TestSkillModifier(t *testing.T) {
	c := sheet()
	m, err := rules.SkillModifier(c, rules.SkillAthletics)
	require.NoError(t, err)
	assert.Equal(t, 6, m)

	m, err = rules.SkillModifier(c, rules.SkillStealth)
	require.NoError(t, err)
	assert.Equal(t, 2, m)

	_, err = rules.SkillModifier(c, "basket_weaving")
	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	c := sheet()
	c.Equipment = inventory.Equipment{Armor: chainMail, Shield: shield, Weapons: []*inventory.WeaponDef{longsword, shortbow}}

	d, err := rules.Derive(c)
	require.NoError(t, err)
	assert.Equal(t, 3, d.ProficiencyBonus)
	assert.Equal(t, 18, d.ArmorClass)
	assert.Equal(t, 2, d.InitiativeBonus)
	assert.Equal(t, 14, d.PassivePerception)
	assert.Nil(t, d.SpellSaveDC)
	assert.Equal(t, map[string]int{"longsword": 6, "shortbow": 2}, d.AttackBonuses)
	assert.Equal(t, 240, d.CarryingCapacity)

	d, err = rules.Derive(c, rapier)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rapier": 6}, d.AttackBonuses)
}

func TestDerive_InvalidScores(t *testing.T) {
	c := sheet()
	c.Abilities.Wisdom = 0
	_, err := rules.Derive(c)
	var fe *character.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "wis", fe.Field)
}
