package dice

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDiceCount is the largest die count accepted for one group.
	MaxDiceCount = 100
	// MaxDieSides is the largest die size accepted.
	MaxDieSides = 1000
	// MaxModifier bounds each flat term and the summed modifier in magnitude.
	MaxModifier = 10000
)

// ParseError reports a malformed dice expression.
type ParseError struct {
	Expression string // original input
	Fragment   string // offending substring, whitespace removed
	Reason     string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("dice: invalid expression %q: %s", e.Expression, e.Reason)
	}
	return fmt.Sprintf("dice: invalid expression %q at %q: %s", e.Expression, e.Fragment, e.Reason)
}

// Term is one signed dice group, e.g. the "-1d4" in "2d6-1d4+2".
type Term struct {
	Count    int
	Sides    int
	Negative bool
}

// String renders the term without its sign.
func (t Term) String() string {
	return fmt.Sprintf("%dd%d", t.Count, t.Sides)
}

// Expression represents a parsed dice expression ready to be rolled.
// Invariant after a successful Parse: every Term has 1 <= Count <= MaxDiceCount
// and 1 <= Sides <= MaxDieSides, and |Modifier| <= MaxModifier.
type Expression struct {
	Raw      string // original input string
	Groups   []Term // dice groups in source order
	Modifier int    // sum of all signed flat terms
}

// IsSingleD20 reports whether the expression is exactly one positive d20
// plus any flat modifier. Only these expressions honour advantage and
// disadvantage and expose a natural roll.
func (e Expression) IsSingleD20() bool {
	return len(e.Groups) == 1 && !e.Groups[0].Negative && e.Groups[0].Count == 1 && e.Groups[0].Sides == 20
}

// DiceOnly returns a copy of e without its flat modifier.
func (e Expression) DiceOnly() Expression {
	groups := make([]Term, len(e.Groups))
	copy(groups, e.Groups)
	return Expression{Raw: e.diceString(), Groups: groups}
}

// String returns the canonical form of the expression, e.g. "2d6+1d4-2".
func (e Expression) String() string {
	s := e.diceString()
	switch {
	case s == "":
		return strconv.Itoa(e.Modifier)
	case e.Modifier != 0:
		return s + fmt.Sprintf("%+d", e.Modifier)
	default:
		return s
	}
}

func (e Expression) diceString() string {
	var b strings.Builder
	for i, g := range e.Groups {
		switch {
		case g.Negative:
			b.WriteByte('-')
		case i > 0:
			b.WriteByte('+')
		}
		b.WriteString(g.String())
	}
	return b.String()
}

// Parse parses a dice expression string into an Expression.
//
// Supported forms are signed sums of dice groups and flat numbers in any
// order: "d20", "2d6", "2d6+3", "1d8 + 1d6 - 1", "-1d4+5", "3".
// Whitespace and case are ignored. Group counts above MaxDiceCount and die
// sizes above MaxDieSides are rejected, never clamped, as are flat terms or
// a summed modifier beyond MaxModifier.
//
// Postcondition: Returns a valid Expression or a *ParseError naming the
// offending fragment.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	if s == "" {
		return Expression{}, &ParseError{Expression: expr, Reason: "empty expression"}
	}

	e := Expression{Raw: expr}
	i := 0
	for i < len(s) {
		start := i
		negative := false
		if s[i] == '+' || s[i] == '-' {
			negative = s[i] == '-'
			i++
		}
		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		term := s[i:j]
		if term == "" {
			return Expression{}, &ParseError{Expression: expr, Fragment: s[start:min(j+1, len(s))], Reason: "missing term after sign"}
		}
		if reason := e.addTerm(term, negative); reason != "" {
			return Expression{}, &ParseError{Expression: expr, Fragment: s[start:j], Reason: reason}
		}
		i = j
	}
	return e, nil
}

// addTerm appends a dice group or folds a flat number into the modifier.
// It returns a non-empty reason when term is malformed.
func (e *Expression) addTerm(term string, negative bool) string {
	dIdx := strings.IndexByte(term, 'd')
	if dIdx < 0 {
		n, ok := parseNatural(term)
		if !ok {
			return "flat modifier must be a whole number"
		}
		if n > MaxModifier {
			return fmt.Sprintf("flat modifier must be <= %d", MaxModifier)
		}
		if negative {
			n = -n
		}
		if sum := e.Modifier + n; sum > MaxModifier || sum < -MaxModifier {
			return fmt.Sprintf("total modifier must be between %d and %d", -MaxModifier, MaxModifier)
		}
		e.Modifier += n
		return ""
	}

	count := 1
	if countStr := term[:dIdx]; countStr != "" {
		n, ok := parseNatural(countStr)
		if !ok {
			return "die count must be a whole number"
		}
		count = n
	}
	if count < 1 {
		return "die count must be >= 1"
	}
	if count > MaxDiceCount {
		return fmt.Sprintf("die count must be <= %d", MaxDiceCount)
	}

	sides, ok := parseNatural(term[dIdx+1:])
	if !ok {
		return "die sides must be a whole number"
	}
	if sides < 1 {
		return "die sides must be >= 1"
	}
	if sides > MaxDieSides {
		return fmt.Sprintf("die sides must be <= %d", MaxDieSides)
	}

	e.Groups = append(e.Groups, Term{Count: count, Sides: sides, Negative: negative})
	return ""
}

// parseNatural parses a non-empty run of ASCII digits.
func parseNatural(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
