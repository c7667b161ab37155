package condition_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/encounter/internal/game/condition"
)

func TestAll_FourteenConditions(t *testing.T) {
	all := condition.All()
	require.Len(t, all, 14)
	seen := map[string]bool{}
	for _, c := range all {
		assert.True(t, c.Valid())
		assert.NotEqual(t, "unknown", c.String())
		assert.False(t, seen[c.String()], "duplicate name %q", c)
		seen[c.String()] = true
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, c := range condition.All() {
		got, err := condition.Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := condition.Parse("  Prone ")
	require.NoError(t, err)
	assert.Equal(t, condition.Prone, got)
}

func TestParse_Unknown(t *testing.T) {
	_, err := condition.Parse("deafened")
	var ute *condition.UnknownTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "deafened", ute.Name)
}

func TestType_InvalidString(t *testing.T) {
	assert.Equal(t, "unknown", condition.Type(0).String())
	assert.False(t, condition.Type(99).Valid())
}

func TestType_YAML(t *testing.T) {
	var doc struct {
		Conditions []condition.Type `yaml:"conditions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("conditions: [poisoned, prone]"), &doc))
	assert.Equal(t, []condition.Type{condition.Poisoned, condition.Prone}, doc.Conditions)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "poisoned")

	var bad struct {
		Conditions []condition.Type `yaml:"conditions"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("conditions: [sleepy]"), &bad))
}

func TestEffectsOf_Exhaustive(t *testing.T) {
	for _, c := range condition.All() {
		assert.NotEqual(t, condition.Effects{}, condition.EffectsOf(c), "condition %s has no effects", c)
	}
	assert.Equal(t, condition.Effects{}, condition.EffectsOf(condition.Type(0)))
}

func TestEffectsOf_IncapacitatingConditions(t *testing.T) {
	for _, c := range []condition.Type{
		condition.Incapacitated, condition.Paralyzed, condition.Petrified,
		condition.Stunned, condition.Unconscious,
	} {
		e := condition.EffectsOf(c)
		assert.True(t, e.Incapacitated, "%s", c)
		assert.True(t, e.CantTakeActions, "%s", c)
		assert.True(t, e.CantTakeReactions, "%s", c)
	}
}

func TestEffectsOf_SaveAutoFail(t *testing.T) {
	for _, c := range []condition.Type{condition.Paralyzed, condition.Petrified, condition.Stunned, condition.Unconscious} {
		e := condition.EffectsOf(c)
		assert.True(t, e.AutoFailStrengthSaves, "%s", c)
		assert.True(t, e.AutoFailDexteritySaves, "%s", c)
	}
	assert.False(t, condition.EffectsOf(condition.Restrained).AutoFailDexteritySaves)
	assert.True(t, condition.EffectsOf(condition.Restrained).DexSavesHaveDisadvantage)
}

func TestExhaustionEffects_Cumulative(t *testing.T) {
	assert.Equal(t, condition.Effects{}, condition.ExhaustionEffects(0))
	assert.True(t, condition.ExhaustionEffects(1).AbilityChecksHaveDisadvantage)
	assert.False(t, condition.ExhaustionEffects(1).SpeedHalved)
	assert.True(t, condition.ExhaustionEffects(2).SpeedHalved)
	assert.True(t, condition.ExhaustionEffects(3).AttacksHaveDisadvantage)
	assert.True(t, condition.ExhaustionEffects(4).HitPointMaxHalved)
	assert.True(t, condition.ExhaustionEffects(5).SpeedZero)
	six := condition.ExhaustionEffects(6)
	assert.True(t, six.Dead)
	assert.True(t, six.CantTakeActions)
	assert.True(t, six.AbilityChecksHaveDisadvantage)
}

func TestEffects_Union_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := condition.EffectsOf(rapid.SampledFrom(condition.All()).Draw(rt, "a"))
		b := condition.EffectsOf(rapid.SampledFrom(condition.All()).Draw(rt, "b"))
		u := a.Union(b)
		assert.Equal(rt, u, b.Union(a), "union must be commutative")
		assert.Equal(rt, u, u.Union(a), "union must absorb its operands")
		assert.Equal(rt, a, a.Union(condition.Effects{}))
	})
}
