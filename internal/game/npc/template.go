// Package npc provides monster and NPC stat blocks loaded from YAML and the
// live instances spawned from them.
package npc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Kind separates hostile monsters from non-player characters. Both fight on
// the enemy side of an encounter.
type Kind string

const (
	KindMonster Kind = "monster"
	KindNPC     Kind = "npc"
)

// Attack is one attack line of a stat block.
type Attack struct {
	Name        string          `yaml:"name"`
	AttackBonus int             `yaml:"attack_bonus"`
	Damage      string          `yaml:"damage"`
	DamageType  dice.DamageType `yaml:"damage_type"`
	Reach       int             `yaml:"reach"` // feet; 0 for ranged-only attacks
	Range       int             `yaml:"range"` // feet; 0 for melee-only attacks
}

// Template is a monster or NPC stat block.
type Template struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Kind      Kind   `yaml:"kind"`
	Challenge string `yaml:"challenge"`
	XP        int    `yaml:"xp"`
	AC        int    `yaml:"ac"`
	HitPoints int    `yaml:"hit_points"`
	// HitDice, when set, lets a spawn roll its hit points instead of taking HitPoints.
	HitDice   string                  `yaml:"hit_dice"`
	Speed     int                     `yaml:"speed"`
	Abilities character.AbilityScores `yaml:"abilities"`

	DamageResistances     []dice.DamageType `yaml:"damage_resistances"`
	DamageImmunities      []dice.DamageType `yaml:"damage_immunities"`
	DamageVulnerabilities []dice.DamageType `yaml:"damage_vulnerabilities"`
	ConditionImmunities   []condition.Type  `yaml:"condition_immunities"`

	Attacks []Attack `yaml:"attacks"`
}

// Validate checks that the template satisfies its invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff the stat block is complete and every
// enumerated value is known; otherwise returns every violation.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if t.Kind != KindMonster && t.Kind != KindNPC {
		errs = append(errs, fmt.Errorf("kind %q must be %q or %q", t.Kind, KindMonster, KindNPC))
	}
	if t.AC < 1 {
		errs = append(errs, errors.New("ac must be >= 1"))
	}
	if t.HitPoints < 1 {
		errs = append(errs, errors.New("hit_points must be >= 1"))
	}
	if t.HitDice != "" {
		if _, err := dice.Parse(t.HitDice); err != nil {
			errs = append(errs, fmt.Errorf("hit_dice: %w", err))
		}
	}
	if err := t.Abilities.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, group := range [][]dice.DamageType{t.DamageResistances, t.DamageImmunities, t.DamageVulnerabilities} {
		for _, dt := range group {
			if !dt.Valid() {
				errs = append(errs, fmt.Errorf("unknown damage type %q", dt))
			}
		}
	}
	if len(t.Attacks) == 0 {
		errs = append(errs, errors.New("at least one attack is required"))
	}
	for i, a := range t.Attacks {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("attacks[%d]: name must not be empty", i))
		}
		if _, err := dice.Parse(a.Damage); err != nil {
			errs = append(errs, fmt.Errorf("attacks[%d].damage: %w", i, err))
		}
		if !a.DamageType.Valid() {
			errs = append(errs, fmt.Errorf("attacks[%d]: unknown damage type %q", i, a.DamageType))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single stat block from raw YAML bytes.
// Unknown fields are rejected.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
