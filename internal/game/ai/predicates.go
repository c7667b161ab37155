package ai

import (
	"maps"
	"slices"
)

// Predicate is a named condition a method may require before it applies.
type Predicate func(ws *WorldState) bool

var predicates = map[string]Predicate{
	// has_enemies holds while at least one opponent is standing.
	"has_enemies": func(ws *WorldState) bool {
		return len(ws.Enemies()) > 0
	},
	// enemy_bloodied holds when some standing opponent is at half hit points or less.
	"enemy_bloodied": func(ws *WorldState) bool {
		return slices.ContainsFunc(ws.Enemies(), (*CombatantState).Bloodied)
	},
	"self_bloodied": func(ws *WorldState) bool {
		return ws.Self.Bloodied()
	},
	// outnumbered holds when standing opponents exceed the actor's side, self included.
	"outnumbered": func(ws *WorldState) bool {
		return len(ws.Enemies()) > len(ws.Allies())+1
	},
}

// PredicateNames returns the known precondition names in sorted order.
func PredicateNames() []string {
	return slices.Sorted(maps.Keys(predicates))
}

// Evaluate reports whether the named predicate holds for ws. Unknown names
// are false.
func Evaluate(name string, ws *WorldState) bool {
	p, ok := predicates[name]
	return ok && p(ws)
}
