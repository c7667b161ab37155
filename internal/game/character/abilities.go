package character

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinAbilityScore = 1
	MaxAbilityScore = 30
)

// Ability names one of the six ability scores by its short key.
type Ability string

const (
	Strength     Ability = "str"
	Dexterity    Ability = "dex"
	Constitution Ability = "con"
	Intelligence Ability = "int"
	Wisdom       Ability = "wis"
	Charisma     Ability = "cha"
)

// Abilities lists the six abilities in sheet order.
var Abilities = [6]Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

var abilityAliases = map[string]Ability{
	"str": Strength, "strength": Strength,
	"dex": Dexterity, "dexterity": Dexterity,
	"con": Constitution, "constitution": Constitution,
	"int": Intelligence, "intelligence": Intelligence,
	"wis": Wisdom, "wisdom": Wisdom,
	"cha": Charisma, "charisma": Charisma,
}

// ParseAbility accepts the short key or the full name, case-insensitive.
func ParseAbility(s string) (Ability, error) {
	a, ok := abilityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("character: unknown ability %q", s)
	}
	return a, nil
}

// Valid reports whether a is one of the six abilities.
func (a Ability) Valid() bool {
	for _, b := range Abilities {
		if a == b {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Ability) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = ""
		return nil
	}
	parsed, err := ParseAbility(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AbilityScores holds the six ability score values, each in 1-30.
type AbilityScores struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// Score returns the score for ability a, or 0 for an unknown ability.
func (s AbilityScores) Score(a Ability) int {
	switch a {
	case Strength:
		return s.Strength
	case Dexterity:
		return s.Dexterity
	case Constitution:
		return s.Constitution
	case Intelligence:
		return s.Intelligence
	case Wisdom:
		return s.Wisdom
	case Charisma:
		return s.Charisma
	default:
		return 0
	}
}

// Validate reports every score outside 1-30.
//
// Postcondition: Returns nil, a single *FieldError, or a join of them.
func (s AbilityScores) Validate() error {
	var errs []error
	for _, a := range Abilities {
		if err := CheckScore(a, s.Score(a)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// CheckScore returns a *FieldError when score is outside 1-30.
func CheckScore(a Ability, score int) error {
	if score < MinAbilityScore || score > MaxAbilityScore {
		return &FieldError{
			Field:  string(a),
			Value:  score,
			Reason: fmt.Sprintf("ability score must be %d-%d", MinAbilityScore, MaxAbilityScore),
		}
	}
	return nil
}
