package dice_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/encounter/internal/game/dice"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		expr     string
		groups   []dice.Term
		modifier int
		canon    string
	}{
		{"d20", []dice.Term{{Count: 1, Sides: 20}}, 0, "1d20"},
		{"2d6", []dice.Term{{Count: 2, Sides: 6}}, 0, "2d6"},
		{"2d6+3", []dice.Term{{Count: 2, Sides: 6}}, 3, "2d6+3"},
		{"4D8-2", []dice.Term{{Count: 4, Sides: 8}}, -2, "4d8-2"},
		{"2d6+1d4-2", []dice.Term{{Count: 2, Sides: 6}, {Count: 1, Sides: 4}}, -2, "2d6+1d4-2"},
		{" 3 + 1d8 - 1d4 ", []dice.Term{{Count: 1, Sides: 8}, {Count: 1, Sides: 4, Negative: true}}, 3, "1d8-1d4+3"},
		{"-1d4+5", []dice.Term{{Count: 1, Sides: 4, Negative: true}}, 5, "-1d4+5"},
		{"1+2-4", nil, -1, "-1"},
		{"100d1000", []dice.Term{{Count: 100, Sides: 1000}}, 0, "100d1000"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := dice.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, e.Raw)
			assert.Equal(t, tt.groups, e.Groups)
			assert.Equal(t, tt.modifier, e.Modifier)
			assert.Equal(t, tt.canon, e.String())
		})
	}
}

func TestParse_ModifierBounds(t *testing.T) {
	e, err := dice.Parse("1d4+10000")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxModifier, e.Modifier)

	e, err = dice.Parse("-10000+5000+5000")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Modifier)

	_, err = dice.Parse("1d4+10000+1")
	assert.ErrorContains(t, err, "total modifier")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		expr     string
		fragment string
	}{
		{"", ""},
		{"   ", ""},
		{"2x6", "2x6"},
		{"2d", "2d"},
		{"0d6", "0d6"},
		{"1d0", "1d0"},
		{"101d6", "101d6"},
		{"2+1d1001", "+1d1001"},
		{"2d6+", "+"},
		{"2d6++3", "++"},
		{"1d6+abc", "+abc"},
		{"1d6d8", "1d6d8"},
		{"1d4+10001", "+10001"},
		{"1d4+9223372036854775807+1", "+9223372036854775807"},
		{"6000+6000", "+6000"},
		{"-6000-6000", "-6000"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := dice.Parse(tt.expr)
			require.Error(t, err)
			var pe *dice.ParseError
			require.True(t, errors.As(err, &pe), "must be a *ParseError, got %T", err)
			assert.Equal(t, tt.expr, pe.Expression)
			assert.Equal(t, tt.fragment, pe.Fragment)
			assert.Contains(t, pe.Error(), "dice:")
		})
	}
}

func TestExpression_IsSingleD20(t *testing.T) {
	assert.True(t, dice.MustParse("1d20+7").IsSingleD20())
	assert.True(t, dice.MustParse("d20").IsSingleD20())
	assert.False(t, dice.MustParse("2d20").IsSingleD20())
	assert.False(t, dice.MustParse("1d20+1d4").IsSingleD20())
	assert.False(t, dice.MustParse("-1d20").IsSingleD20())
}

func TestExpression_DiceOnly(t *testing.T) {
	e := dice.MustParse("2d6+1d4+3")
	d := e.DiceOnly()
	assert.Zero(t, d.Modifier)
	assert.Equal(t, e.Groups, d.Groups)
	assert.Equal(t, "2d6+1d4", d.String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

// TestParse_RoundTrip_Property verifies canonical strings re-parse to the same terms.
func TestParse_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, dice.MaxDiceCount).Draw(rt, "count")
		sides := rapid.IntRange(1, dice.MaxDieSides).Draw(rt, "sides")
		mod := rapid.IntRange(-50, 50).Draw(rt, "mod")
		e, err := dice.Parse(fmt.Sprintf("%dd%d%+d", count, sides, mod))
		require.NoError(rt, err)
		again, err := dice.Parse(e.String())
		require.NoError(rt, err)
		assert.Equal(rt, e.Groups, again.Groups)
		assert.Equal(rt, e.Modifier, again.Modifier)
	})
}
