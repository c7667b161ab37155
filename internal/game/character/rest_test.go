package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// fixedSource always returns val, so every die shows val+1.
type fixedSource struct{ val int }

func (f fixedSource) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestLongRest_RecoversHalfHitDice(t *testing.T) {
	c := fighter()
	c.HitDice = character.HitDice{character.D10: {Total: 5, Used: 3}}
	c.CurrentHP = 10
	c.TempHP = 4
	c.Exhaustion = 2

	res := character.LongRest(c)

	assert.Equal(t, 1, c.HitDice[character.D10].Used)
	assert.Equal(t, 2, res.HitDiceRecovered)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
	assert.Equal(t, 34, res.HPRestored)
	assert.Zero(t, c.TempHP)
	assert.Equal(t, 1, c.Exhaustion)
	assert.Equal(t, 1, res.Exhaustion)
}

func TestLongRest_RecoversAtLeastOne(t *testing.T) {
	c := fighter()
	c.Level = 1
	c.HitDice = character.HitDice{character.D10: {Total: 1, Used: 1}}
	character.LongRest(c)
	assert.Equal(t, 0, c.HitDice[character.D10].Used)
}

func TestLongRest_ExhaustionFloor(t *testing.T) {
	c := fighter()
	res := character.LongRest(c)
	assert.Zero(t, c.Exhaustion)
	assert.Zero(t, res.Exhaustion)
	assert.Zero(t, res.HitDiceRecovered, "nothing spent, nothing recovered")
}

func TestSpendHitDie_Heals(t *testing.T) {
	c := fighter()
	c.CurrentHP = 20
	roller := dice.NewRoller(fixedSource{val: 5}) // d10 shows 6

	res, err := character.SpendHitDie(c, character.D10, 2, roller)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Roll.Dice()[0])
	assert.Equal(t, 8, res.Healed)
	assert.Equal(t, 28, c.CurrentHP)
	assert.Equal(t, 1, c.HitDice[character.D10].Used)
}

func TestSpendHitDie_CappedAtMax(t *testing.T) {
	c := fighter()
	c.CurrentHP = c.MaxHP - 1
	res, err := character.SpendHitDie(c, character.D10, 0, dice.NewRoller(fixedSource{val: 9}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Healed)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
}

func TestSpendHitDie_NegativeConNeverHurts(t *testing.T) {
	c := fighter()
	c.CurrentHP = 10
	res, err := character.SpendHitDie(c, character.D10, -3, dice.NewRoller(fixedSource{val: 0}))
	require.NoError(t, err)
	assert.Zero(t, res.Healed)
	assert.Equal(t, 10, c.CurrentHP)
}

func TestSpendHitDie_NoneLeft(t *testing.T) {
	c := fighter()
	c.CurrentHP = 10
	c.HitDice = character.HitDice{character.D10: {Total: 1, Used: 1}}
	_, err := character.SpendHitDie(c, character.D10, 0, dice.NewRoller(fixedSource{}))
	assert.Error(t, err)
	assert.Equal(t, 10, c.CurrentHP)
}
