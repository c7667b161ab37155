// Package dice provides the core randomness abstraction, expression parser
// and roll-result types for the encounter engine.
package dice

import (
	"fmt"
	"strings"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Mode is the net advantage state of a d20 roll.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdvantage
	ModeDisadvantage
)

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

// ResolveMode nets advantage against disadvantage. Having both cancels to
// ModeNormal no matter how many sources granted each.
//
// Postcondition: Returns ModeAdvantage iff advantage && !disadvantage,
// ModeDisadvantage iff disadvantage && !advantage, ModeNormal otherwise.
func ResolveMode(advantage, disadvantage bool) Mode {
	switch {
	case advantage && !disadvantage:
		return ModeAdvantage
	case disadvantage && !advantage:
		return ModeDisadvantage
	default:
		return ModeNormal
	}
}

// RollOptions controls d20 behaviour for a roll. Both flags together cancel.
type RollOptions struct {
	Advantage    bool
	Disadvantage bool
}

// Mode returns the net mode for these options.
func (o RollOptions) Mode() Mode { return ResolveMode(o.Advantage, o.Disadvantage) }

// GroupResult holds the faces rolled for one dice group.
type GroupResult struct {
	Term  Term
	Faces []int
}

// Sum returns the signed sum of the group's faces.
func (g GroupResult) Sum() int {
	total := 0
	for _, f := range g.Faces {
		total += f
	}
	if g.Term.Negative {
		return -total
	}
	return total
}

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum of signed group sums + Modifier.
type RollResult struct {
	Expression string        // canonical expression, e.g. "2d6+3"
	Groups     []GroupResult // faces per dice group, in expression order
	Modifier   int           // flat modifier (may be negative)
	Mode       Mode          // net advantage state; always ModeNormal unless single d20
	// Natural is the kept d20 face for single-d20 rolls, 0 otherwise.
	Natural int
	// D20Faces holds both faces when advantage or disadvantage applied.
	D20Faces []int
	// Discarded is the d20 face dropped by advantage or disadvantage, 0 if none.
	Discarded int
}

// Dice returns every kept face across all groups, in roll order.
func (r RollResult) Dice() []int {
	var out []int
	for _, g := range r.Groups {
		out = append(out, g.Faces...)
	}
	return out
}

// DiceTotal returns the signed sum of all dice, excluding the modifier.
func (r RollResult) DiceTotal() int {
	total := 0
	for _, g := range r.Groups {
		total += g.Sum()
	}
	return total
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == r.DiceTotal() + r.Modifier.
func (r RollResult) Total() int {
	return r.DiceTotal() + r.Modifier
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// Advantage rolls show both faces: "1d20+5 → [17 (8)] adv +5 = 22".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	diceStr := fmt.Sprintf("%v", r.Dice())
	if r.Discarded != 0 {
		diceStr = fmt.Sprintf("[%d (%d)] %s", r.Natural, r.Discarded, shortMode(r.Mode))
	}
	modStr := fmt.Sprintf("%+d", r.Modifier)
	return fmt.Sprintf("%s → %s %s = %d", r.Expression, diceStr, modStr, r.Total())
}

func shortMode(m Mode) string {
	switch m {
	case ModeAdvantage:
		return "adv"
	case ModeDisadvantage:
		return "dis"
	default:
		return ""
	}
}

// AttackResult is the outcome of a d20 attack roll against an armor class.
//
// Invariant: Critical and CriticalMiss are never both true; Critical implies Hit;
// CriticalMiss implies !Hit.
type AttackResult struct {
	Roll          RollResult
	Natural       int
	AttackBonus   int
	Total         int
	TargetAC      int
	CriticalRange int
	Hit           bool
	Critical      bool
	CriticalMiss  bool
}

// String renders the attack for narration, e.g.
// "1d20+6 → [14] +6 = 20 vs AC 15: hit".
func (a AttackResult) String() string {
	verdict := "miss"
	switch {
	case a.Critical:
		verdict = "hit, critical"
	case a.CriticalMiss:
		verdict = "miss, critical miss"
	case a.Hit:
		verdict = "hit"
	}
	return fmt.Sprintf("%s vs AC %d: %s", a.Roll, a.TargetAC, verdict)
}

// DamageResult is the outcome of a damage roll.
//
// Postcondition: Total == max(0, Roll.Total() + Extra.DiceTotal()).
type DamageResult struct {
	Type     DamageType
	Roll     RollResult
	Critical bool
	// Extra holds the second dice roll of a critical hit; nil otherwise.
	// Its Modifier is always 0.
	Extra *RollResult
	Total int
}

// String renders the damage roll, e.g. "1d8+3 → [6] +3 = 9 (+ [4]) = 13 slashing".
func (d DamageResult) String() string {
	var b strings.Builder
	b.WriteString(d.Roll.String())
	if d.Extra != nil {
		fmt.Fprintf(&b, " (+ %v crit) = %d", d.Extra.Dice(), d.Total)
	}
	if d.Type != "" {
		b.WriteString(" ")
		b.WriteString(string(d.Type))
	}
	return b.String()
}

// SavingThrowResult is the outcome of a d20 saving throw against a DC.
type SavingThrowResult struct {
	Roll     RollResult
	Natural  int
	Modifier int
	DC       int
	Total    int
	Success  bool
	// AutoFailed is true when a condition forced the failure; the die is
	// still rolled and recorded.
	AutoFailed bool
}

// SkillCheckResult is the outcome of a d20 ability or skill check.
// Success is nil when no DC was supplied.
type SkillCheckResult struct {
	Roll     RollResult
	Natural  int
	Modifier int
	DC       *int
	Total    int
	Success  *bool
}

// AbilityRoll is one 4d6-drop-lowest ability score roll.
//
// Postcondition: Total == sum(Faces) - Faces[Dropped].
type AbilityRoll struct {
	Faces   [4]int
	Dropped int // index into Faces of the discarded lowest die
	Total   int
}

// DroppedFace returns the value of the discarded die.
func (a AbilityRoll) DroppedFace() int { return a.Faces[a.Dropped] }

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// A single d20 under a net advantage or disadvantage rolls a second d20 and
// keeps the higher or lower face. Other expressions ignore opts.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: result.Total() == sum of signed group faces + expr.Modifier.
func Roll(expr Expression, opts RollOptions, src Source) RollResult {
	res := RollResult{
		Expression: expr.String(),
		Groups:     make([]GroupResult, 0, len(expr.Groups)),
		Modifier:   expr.Modifier,
	}
	for _, g := range expr.Groups {
		faces := make([]int, g.Count)
		for i := range faces {
			faces[i] = src.Intn(g.Sides) + 1
		}
		res.Groups = append(res.Groups, GroupResult{Term: g, Faces: faces})
	}
	if !expr.IsSingleD20() {
		return res
	}

	first := res.Groups[0].Faces[0]
	res.Natural = first
	res.Mode = opts.Mode()
	if res.Mode == ModeNormal {
		return res
	}
	second := src.Intn(20) + 1
	kept, dropped := first, second
	if (res.Mode == ModeAdvantage && second > first) || (res.Mode == ModeDisadvantage && second < first) {
		kept, dropped = second, first
	}
	res.Groups[0].Faces[0] = kept
	res.Natural = kept
	res.D20Faces = []int{first, second}
	res.Discarded = dropped
	return res
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or a *ParseError.
func RollExpr(expr string, opts RollOptions, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, opts, src), nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}

// d20 builds the expression 1d20+modifier without going through the parser.
func d20(modifier int) Expression {
	return Expression{
		Raw:      fmt.Sprintf("1d20%+d", modifier),
		Groups:   []Term{{Count: 1, Sides: 20}},
		Modifier: modifier,
	}
}
