// Package roster loads a party of player characters from YAML and resolves
// their equipment and derived hit points.
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
	"github.com/cory-johannsen/encounter/internal/game/rules"
)

// Member is one character entry of a party file.
type Member struct {
	// ID defaults to NameToID(Name).
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	// Level defaults to the level reached with Experience.
	Level      int `yaml:"level"`
	Experience int `yaml:"experience"`

	Abilities           character.AbilityScores `yaml:"abilities"`
	Proficiencies       character.Proficiencies `yaml:"proficiencies"`
	SpellcastingAbility character.Ability       `yaml:"spellcasting_ability"`

	HitDie      character.DieType `yaml:"hit_die"`
	HitDiceUsed int               `yaml:"hit_dice_used"`
	// CurrentHP defaults to the derived maximum; use Wounds to start hurt.
	Wounds     int `yaml:"wounds"`
	TempHP     int `yaml:"temp_hp"`
	Exhaustion int `yaml:"exhaustion"`

	Loadout inventory.Loadout `yaml:"loadout"`
}

// Party is the top-level layout of a party file.
type Party struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"members"`
}

// NameToID converts a display name to a stable snake_case identifier.
//
// Postcondition: result is lowercase, contains only [a-z0-9_], and is
// idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Build turns m into a character: the level is derived from experience when
// unset, hit points from the class die and CON, and equipment from reg.
//
// Postcondition: Returns a character that passes Validate, or an error.
func (m Member) Build(reg *inventory.Registry) (*character.Character, error) {
	id := m.ID
	if id == "" {
		id = NameToID(m.Name)
	}
	if id == "" {
		return nil, errors.New("member has neither id nor a usable name")
	}
	level := m.Level
	if level == 0 {
		level = rules.LevelFromXP(m.Experience)
	}
	if err := m.Abilities.Validate(); err != nil {
		return nil, fmt.Errorf("member %q: %w", id, err)
	}
	if !m.HitDie.Valid() {
		return nil, fmt.Errorf("member %q: %w", id, &character.FieldError{Field: "hit_die", Value: int(m.HitDie), Reason: "must be d6, d8, d10 or d12"})
	}
	saves, err := savingThrowSet(m.Proficiencies.SavingThrows)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", id, err)
	}
	eq, err := reg.Resolve(m.Loadout)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", id, err)
	}
	profs := m.Proficiencies.Clone()
	profs.SavingThrows = saves

	maxHP := rules.MaxHitPoints(m.HitDie.Sides(), rules.Modifier(m.Abilities.Constitution), level)
	c := &character.Character{
		ID:                  id,
		Name:                m.Name,
		Class:               m.Class,
		Level:               level,
		Experience:          m.Experience,
		Abilities:           m.Abilities,
		Proficiencies:       profs,
		SpellcastingAbility: m.SpellcastingAbility,
		HitDie:              m.HitDie,
		HitDice:             character.HitDice{m.HitDie: {Total: level, Used: m.HitDiceUsed}},
		MaxHP:               maxHP,
		CurrentHP:           maxHP - m.Wounds,
		TempHP:              m.TempHP,
		Exhaustion:          m.Exhaustion,
		Equipment:           eq,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("member %q: %w", id, err)
	}
	return c, nil
}

// savingThrowSet rewrites saving throw names ("wisdom", "WIS") to ability
// keys and rejects anything that is not an ability.
func savingThrowSet(in character.Set) (character.Set, error) {
	if in == nil {
		return nil, nil
	}
	out := make(character.Set, len(in))
	for _, k := range in.Keys() {
		a, err := character.ParseAbility(k)
		if err != nil {
			return nil, fmt.Errorf("saving_throws: %w", err)
		}
		out.Add(string(a))
	}
	return out, nil
}

// LoadFromBytes parses a party file and builds every member. All member
// errors are reported together.
//
// Postcondition: Returns one character per member in file order, or an error.
func LoadFromBytes(data []byte, reg *inventory.Registry) ([]*character.Character, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Party
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("roster: parsing party: %w", err)
	}
	if len(p.Members) == 0 {
		return nil, errors.New("roster: party has no members")
	}

	var (
		out  []*character.Character
		errs []error
		seen = make(map[string]bool, len(p.Members))
	)
	for i, m := range p.Members {
		c, err := m.Build(reg)
		if err != nil {
			errs = append(errs, fmt.Errorf("roster: members[%d]: %w", i, err))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("roster: members[%d]: duplicate id %q", i, c.ID))
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Load reads and builds the party file at path.
func Load(path string, reg *inventory.Registry) ([]*character.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: reading %s: %w", path, err)
	}
	return LoadFromBytes(data, reg)
}
