package condition

import (
	"fmt"
	"sort"
)

// Set tracks all conditions currently applied to one combatant. At most one
// instance of each Type is held; applying a Type again replaces the earlier
// instance rather than stacking with it.
//
// The zero value is an empty, usable Set. It is not safe for concurrent use;
// the caller must serialise access.
type Set struct {
	conditions map[Type]Active
}

// NewSet creates an empty Set.
func NewSet() Set {
	return Set{conditions: make(map[Type]Active)}
}

// Apply adds a to the set, replacing any active condition of the same Type.
// Exhaustion with Level 0 is stored at level 1.
//
// Postcondition: Has(a.Type) is true and Get(a.Type) returns a (normalised);
// returns an error and leaves the set unchanged if a is invalid.
func (s *Set) Apply(a Active) error {
	if !a.Type.Valid() {
		return &UnknownTypeError{Name: a.Type.String()}
	}
	if a.Duration.Kind == Rounds && a.Duration.Remaining < 1 {
		return fmt.Errorf("condition %s: rounds duration must be >= 1, got %d", a.Type, a.Duration.Remaining)
	}
	if a.Type == Exhaustion {
		if a.Level == 0 {
			a.Level = 1
		}
		if a.Level < 1 || a.Level > MaxExhaustion {
			return fmt.Errorf("condition exhaustion: level must be 1-%d, got %d", MaxExhaustion, a.Level)
		}
	} else {
		a.Level = 0
	}
	if s.conditions == nil {
		s.conditions = make(map[Type]Active)
	}
	s.conditions[a.Type] = a
	return nil
}

// Remove deletes the condition of type t and reports whether it was present.
//
// Postcondition: Has(t) is false.
func (s *Set) Remove(t Type) bool {
	if _, ok := s.conditions[t]; !ok {
		return false
	}
	delete(s.conditions, t)
	return true
}

// Has reports whether a condition of type t is currently active.
func (s Set) Has(t Type) bool {
	_, ok := s.conditions[t]
	return ok
}

// Get returns the active condition of type t.
func (s Set) Get(t Type) (Active, bool) {
	a, ok := s.conditions[t]
	return a, ok
}

// Len returns the number of active conditions.
func (s Set) Len() int { return len(s.conditions) }

// All returns the active conditions ordered by Type.
func (s Set) All() []Active {
	out := make([]Active, 0, len(s.conditions))
	for _, a := range s.conditions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s.conditions == nil {
		return Set{}
	}
	c := Set{conditions: make(map[Type]Active, len(s.conditions))}
	for t, a := range s.conditions {
		c.conditions[t] = a
	}
	return c
}

// Tick decrements every Rounds-duration condition by one and removes those
// that reach zero. UntilRemoved conditions are not affected.
//
// Postcondition: For every t in the returned slice, Has(t) is false. The
// slice is ordered by Type.
func (s *Set) Tick() []Type {
	var expired []Type
	for t, a := range s.conditions {
		if a.Duration.Kind != Rounds {
			continue
		}
		a.Duration.Remaining--
		if a.Duration.Remaining <= 0 {
			expired = append(expired, t)
			delete(s.conditions, t)
			continue
		}
		s.conditions[t] = a
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// ExhaustionLevel returns the current exhaustion level, 0 when not exhausted.
func (s Set) ExhaustionLevel() int {
	return s.conditions[Exhaustion].Level
}

// ReduceExhaustion lowers exhaustion by n levels, removing the condition at
// zero, and returns the remaining level.
//
// Postcondition: Returns max(0, previous level - n).
func (s *Set) ReduceExhaustion(n int) int {
	a, ok := s.conditions[Exhaustion]
	if !ok {
		return 0
	}
	a.Level -= n
	if a.Level <= 0 {
		delete(s.conditions, Exhaustion)
		return 0
	}
	s.conditions[Exhaustion] = a
	return a.Level
}

// TableEffects returns the union of each active condition's fixed table
// entry. Exhaustion contributes only its level-1 entry.
func (s Set) TableEffects() Effects {
	var e Effects
	for _, a := range s.conditions {
		e = e.Union(EffectsOf(a.Type))
	}
	return e
}

// Effects returns the union of the effects of every active condition,
// taking the exhaustion level into account.
func (s Set) Effects() Effects {
	var e Effects
	for _, a := range s.conditions {
		if a.Type == Exhaustion {
			e = e.Union(ExhaustionEffects(a.Level))
			continue
		}
		e = e.Union(EffectsOf(a.Type))
	}
	return e
}
