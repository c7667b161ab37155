package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/rules"
)

func TestLevelFromXP(t *testing.T) {
	tests := []struct{ xp, level int }{
		{0, 1}, {299, 1}, {300, 2}, {899, 2}, {900, 3}, {6500, 5},
		{354999, 19}, {355000, 20}, {1_000_000, 20}, {-10, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, rules.LevelFromXP(tt.xp), "xp %d", tt.xp)
	}
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 300, rules.XPForNextLevel(1))
	assert.Equal(t, 6500, rules.XPForNextLevel(4))
	assert.Equal(t, 355000, rules.XPForNextLevel(19))
	assert.Equal(t, 0, rules.XPForNextLevel(20))
	assert.Equal(t, 0, rules.XPForNextLevel(25))
}

func TestXP_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 19).Draw(rt, "level")
		next := rules.XPForNextLevel(level)
		assert.Equal(rt, level+1, rules.LevelFromXP(next))
		assert.Equal(rt, level, rules.LevelFromXP(next-1))
	})
}

func TestHitPointsOnLevelUp(t *testing.T) {
	assert.Equal(t, 6, rules.HitPointsOnLevelUp(10, 0, nil))
	assert.Equal(t, 8, rules.HitPointsOnLevelUp(10, 2, nil))
	assert.Equal(t, 5, rules.HitPointsOnLevelUp(8, 0, nil))
	assert.Equal(t, 4, rules.HitPointsOnLevelUp(6, 0, nil))
	assert.Equal(t, 8, rules.HitPointsOnLevelUp(12, 1, intPtr(7)))
	assert.Equal(t, 1, rules.HitPointsOnLevelUp(6, -5, intPtr(1)), "floored at 1")
}

func TestHitPointsOnLevelUp_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		die := rapid.SampledFrom([]int{6, 8, 10, 12}).Draw(rt, "die")
		con := rapid.IntRange(-5, 10).Draw(rt, "con")
		roll := rapid.IntRange(1, die).Draw(rt, "roll")
		assert.GreaterOrEqual(rt, rules.HitPointsOnLevelUp(die, con, nil), 1)
		assert.Equal(rt, max(1, roll+con), rules.HitPointsOnLevelUp(die, con, &roll))
	})
}

func TestStartingAndMaxHitPoints(t *testing.T) {
	assert.Equal(t, 12, rules.StartingHitPoints(10, 2))
	assert.Equal(t, 12+4*8, rules.MaxHitPoints(10, 2, 5))
	assert.Equal(t, rules.StartingHitPoints(8, 1), rules.MaxHitPoints(8, 1, 1))
}

func TestAdvanceLevel(t *testing.T) {
	c := sheet()
	gain, err := rules.AdvanceLevel(c, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, gain, "d10 average 6 + CON 2")
	assert.Equal(t, 6, c.Level)
	assert.Equal(t, 52, c.MaxHP)
	assert.Equal(t, 52, c.CurrentHP)
	assert.Equal(t, 6, c.HitDice[character.D10].Total)

	gain, err = rules.AdvanceLevel(c, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 3, gain)
}

func TestAdvanceLevel_Errors(t *testing.T) {
	c := sheet()
	_, err := rules.AdvanceLevel(c, intPtr(11))
	assert.Error(t, err)
	assert.Equal(t, 5, c.Level, "unchanged on error")

	c.Level = 20
	_, err = rules.AdvanceLevel(c, nil)
	assert.ErrorIs(t, err, rules.ErrMaxLevel)
}
