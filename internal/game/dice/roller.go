package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultCriticalRange is the lowest natural d20 face that scores a critical hit.
const DefaultCriticalRange = 20

// Roller wraps a Source and logger and adjudicates every d20 and damage roll
// the engine makes. All rolls are logged at debug level with expression,
// dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and does not log.
//
// Precondition: src must be non-nil.
func NewRoller(src Source) *Roller {
	return NewLoggedRoller(src, zap.NewNop())
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollDie returns a uniform integer in [1, sides].
//
// Postcondition: Returns a value in [1, sides], or an error if sides < 1.
func (r *Roller) RollDie(sides int) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("dice: die must have at least 1 side, got %d", sides)
	}
	return r.src.Intn(sides) + 1, nil
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression, opts RollOptions) RollResult {
	result := Roll(expr, opts, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice()),
		zap.Int("modifier", result.Modifier),
		zap.Stringer("mode", result.Mode),
		zap.Int("discarded", result.Discarded),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a *ParseError.
func (r *Roller) RollExpr(expr string, opts RollOptions) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e, opts), nil
}

// AttackOptions configures an attack roll.
type AttackOptions struct {
	RollOptions
	// CriticalRange is the lowest natural face that crits. Zero means
	// DefaultCriticalRange; values are clamped to [2, 20] so a natural 1
	// is never both a critical and a critical miss.
	CriticalRange int
}

func (o AttackOptions) critRange() int {
	switch {
	case o.CriticalRange <= 0:
		return DefaultCriticalRange
	case o.CriticalRange < 2:
		return 2
	case o.CriticalRange > 20:
		return 20
	default:
		return o.CriticalRange
	}
}

// RollAttack rolls 1d20+attackBonus against targetAC.
//
// A natural face >= CriticalRange always hits and is critical; a natural 1
// always misses and is a critical miss; otherwise the attack hits iff
// total >= targetAC.
//
// Postcondition: Critical and CriticalMiss are never both true.
func (r *Roller) RollAttack(attackBonus, targetAC int, opts AttackOptions) AttackResult {
	crit := opts.critRange()
	roll := r.Roll(d20(attackBonus), opts.RollOptions)
	res := AttackResult{
		Roll:          roll,
		Natural:       roll.Natural,
		AttackBonus:   attackBonus,
		Total:         roll.Total(),
		TargetAC:      targetAC,
		CriticalRange: crit,
	}
	switch {
	case res.Natural >= crit:
		res.Hit = true
		res.Critical = true
	case res.Natural == 1:
		res.CriticalMiss = true
	default:
		res.Hit = res.Total >= targetAC
	}
	return res
}

// RollDamage parses expr and rolls it as damage of type dt.
//
// On a critical hit the dice portion is rolled a second time and added; the
// flat modifier is applied exactly once.
//
// Postcondition: Returns a DamageResult with Total >= 0, or a *ParseError.
func (r *Roller) RollDamage(expr string, dt DamageType, critical bool) (DamageResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return DamageResult{}, err
	}
	return r.RollDamageExpr(e, dt, critical), nil
}

// RollDamageExpr is RollDamage for an already parsed expression.
//
// Precondition: e must come from Parse.
func (r *Roller) RollDamageExpr(e Expression, dt DamageType, critical bool) DamageResult {
	res := DamageResult{
		Type:     dt,
		Roll:     r.Roll(e, RollOptions{}),
		Critical: critical,
	}
	total := res.Roll.Total()
	if critical {
		extra := r.Roll(e.DiceOnly(), RollOptions{})
		res.Extra = &extra
		total += extra.DiceTotal()
	}
	if total < 0 {
		total = 0
	}
	res.Total = total
	return res
}

// SaveOptions configures a saving throw.
type SaveOptions struct {
	RollOptions
	// AutoFail forces failure regardless of the roll.
	AutoFail bool
}

// RollSavingThrow rolls 1d20+modifier against dc.
//
// Postcondition: Success is true iff !opts.AutoFail && Total >= dc.
func (r *Roller) RollSavingThrow(modifier, dc int, opts SaveOptions) SavingThrowResult {
	roll := r.Roll(d20(modifier), opts.RollOptions)
	total := roll.Total()
	return SavingThrowResult{
		Roll:       roll,
		Natural:    roll.Natural,
		Modifier:   modifier,
		DC:         dc,
		Total:      total,
		Success:    !opts.AutoFail && total >= dc,
		AutoFailed: opts.AutoFail,
	}
}

// RollSkillCheck rolls 1d20+modifier. When dc is nil, Success is left nil.
func (r *Roller) RollSkillCheck(modifier int, dc *int, opts RollOptions) SkillCheckResult {
	roll := r.Roll(d20(modifier), opts)
	res := SkillCheckResult{
		Roll:     roll,
		Natural:  roll.Natural,
		Modifier: modifier,
		Total:    roll.Total(),
	}
	if dc != nil {
		target := *dc
		ok := res.Total >= target
		res.DC = &target
		res.Success = &ok
	}
	return res
}

// RollAbilityScores rolls six ability scores with 4d6, dropping the lowest die.
//
// Postcondition: every Total is in [3, 18] and equals the sum of the three kept faces.
func (r *Roller) RollAbilityScores() [6]AbilityRoll {
	var out [6]AbilityRoll
	for i := range out {
		var a AbilityRoll
		sum := 0
		for j := range a.Faces {
			a.Faces[j] = r.src.Intn(6) + 1
			sum += a.Faces[j]
			if a.Faces[j] < a.Faces[a.Dropped] {
				a.Dropped = j
			}
		}
		a.Total = sum - a.Faces[a.Dropped]
		out[i] = a
	}
	r.logger.Debug("ability scores rolled", zap.Any("rolls", out))
	return out
}
