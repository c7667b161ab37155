package character

import (
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// LongRestResult reports what a long rest restored.
type LongRestResult struct {
	HitDiceRecovered int
	HPRestored       int
	Exhaustion       int // level after the rest
}

// LongRest restores the character after eight hours of rest: hit points to
// maximum, temporary hit points cleared, spent hit dice recovered up to
// max(1, total/2), and exhaustion reduced by one.
//
// Precondition: c is non-nil.
// Postcondition: CurrentHP == MaxHP; TempHP == 0; Exhaustion is lowered by one, floored at 0.
func LongRest(c *Character) LongRestResult {
	res := LongRestResult{HPRestored: c.MaxHP - c.CurrentHP}
	c.CurrentHP = c.MaxHP
	c.TempHP = 0
	res.HitDiceRecovered = c.HitDice.Recover(max(1, c.HitDice.Total()/2))
	if c.Exhaustion > 0 {
		c.Exhaustion--
	}
	res.Exhaustion = c.Exhaustion
	return res
}

// ShortRestResult reports one hit die spent during a short rest.
type ShortRestResult struct {
	Die    DieType
	Roll   dice.RollResult
	Healed int
}

// SpendHitDie spends one hit die of size d during a short rest, rolling it
// and healing the result plus conMod (never less than 0), capped at MaxHP.
//
// Precondition: c and roller are non-nil.
// Postcondition: On error c is unchanged.
func SpendHitDie(c *Character, d DieType, conMod int, roller *dice.Roller) (ShortRestResult, error) {
	if err := c.HitDice.Spend(d); err != nil {
		return ShortRestResult{}, err
	}
	roll := roller.Roll(dice.Expression{
		Raw:      fmt.Sprintf("1%s%+d", d, conMod),
		Groups:   []dice.Term{{Count: 1, Sides: d.Sides()}},
		Modifier: conMod,
	}, dice.RollOptions{})
	healed := min(max(0, roll.Total()), c.MaxHP-c.CurrentHP)
	c.CurrentHP += healed
	return ShortRestResult{Die: d, Roll: roll, Healed: healed}, nil
}
