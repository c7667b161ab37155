// Package condition defines the fixed 5e condition vocabulary, the set of
// conditions active on one combatant, and the mechanical effects of each
// condition.
package condition

import (
	"fmt"
	"strings"
)

// Type is one of the fourteen standard conditions. The zero value is invalid.
type Type int

const (
	Blinded Type = iota + 1
	Charmed
	Frightened
	Grappled
	Incapacitated
	Invisible
	Paralyzed
	Petrified
	Poisoned
	Prone
	Restrained
	Stunned
	Unconscious
	Exhaustion

	numTypes = iota
)

var typeNames = [numTypes + 1]string{
	"", "blinded", "charmed", "frightened", "grappled", "incapacitated", "invisible",
	"paralyzed", "petrified", "poisoned", "prone", "restrained", "stunned",
	"unconscious", "exhaustion",
}

// MaxExhaustion is the highest exhaustion level; reaching it is death.
const MaxExhaustion = 6

// UnknownTypeError reports a condition name outside the fixed vocabulary.
type UnknownTypeError struct {
	Name string
}

// Error implements error.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("condition: unknown condition %q", e.Name)
}

// All returns every condition type in declaration order.
func All() []Type {
	out := make([]Type, 0, numTypes)
	for t := Blinded; t <= Exhaustion; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the fourteen conditions.
func (t Type) Valid() bool { return t >= Blinded && t <= Exhaustion }

// String returns the lower-case condition name, or "unknown".
func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return typeNames[t]
}

// Parse maps a condition name (case-insensitive) to its Type.
//
// Postcondition: Returns a valid Type or an *UnknownTypeError.
func Parse(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t := Blinded; t <= Exhaustion; t++ {
		if typeNames[t] == n {
			return t, nil
		}
	}
	return 0, &UnknownTypeError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("condition: cannot marshal invalid type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DurationKind distinguishes timed conditions from open-ended ones.
type DurationKind int

const (
	// UntilRemoved lasts until explicitly removed. It is the zero value.
	UntilRemoved DurationKind = iota
	// Rounds counts down at the start of each of the affected combatant's turns.
	Rounds
)

// Duration describes how long a condition lasts.
type Duration struct {
	Kind      DurationKind
	Remaining int // rounds left; only meaningful when Kind == Rounds
}

// ForRounds returns a Duration of n rounds.
func ForRounds(n int) Duration { return Duration{Kind: Rounds, Remaining: n} }

// Active is one condition applied to a combatant.
type Active struct {
	Type     Type
	Source   string // who or what imposed it; empty if unknown
	Duration Duration
	// Level is the exhaustion level (1..MaxExhaustion). Ignored for other types.
	Level int
}
