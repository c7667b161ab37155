package character

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is an unordered set of proficiency keys. Keys are lower-cased on
// insertion and lookup.
type Set map[string]struct{}

// NewSet returns a Set holding keys.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key.
//
// Precondition: s is non-nil.
func (s Set) Add(key string) { s[normalizeKey(key)] = struct{}{} }

// Has reports whether key is in the set. A nil Set is empty.
func (s Set) Has(key string) bool {
	_, ok := s[normalizeKey(key)]
	return ok
}

// Keys returns the members in sorted order.
func (s Set) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// UnmarshalYAML decodes a YAML sequence of keys.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var keys []string
	if err := node.Decode(&keys); err != nil {
		return err
	}
	*s = NewSet(keys...)
	return nil
}

// MarshalYAML encodes the set as a sorted sequence.
func (s Set) MarshalYAML() (interface{}, error) { return s.Keys(), nil }

func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
}

// Proficiencies groups every proficiency set on a character sheet.
//
// SavingThrows holds ability keys ("str", "dex", ...). Weapons holds weapon
// categories ("martial_melee") or individual weapon IDs ("longsword").
type Proficiencies struct {
	SavingThrows Set `yaml:"saving_throws"`
	Skills       Set `yaml:"skills"`
	Tools        Set `yaml:"tools"`
	Weapons      Set `yaml:"weapons"`
	Armor        Set `yaml:"armor"`
	Languages    Set `yaml:"languages"`
}

// Clone returns an independent copy of p.
func (p Proficiencies) Clone() Proficiencies {
	return Proficiencies{
		SavingThrows: p.SavingThrows.Clone(),
		Skills:       p.Skills.Clone(),
		Tools:        p.Tools.Clone(),
		Weapons:      p.Weapons.Clone(),
		Armor:        p.Armor.Clone(),
		Languages:    p.Languages.Clone(),
	}
}
