package combat

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Status is the encounter lifecycle stage. No transition leaves StatusEnded.
type Status string

const (
	StatusInitiative Status = "initiative"
	StatusActive     Status = "active"
	StatusEnded      Status = "ended"
)

// Winner names the side left standing.
type Winner string

const (
	WinnerPlayers Winner = "players"
	WinnerEnemies Winner = "enemies"
	// WinnerNone means both sides fell at once.
	WinnerNone Winner = "none"
)

// EndResult reports whether one faction has no living members.
type EndResult struct {
	Ended  bool
	Winner Winner // empty when !Ended
}

// InitiativeEntry is one combatant's place in the turn order.
type InitiativeEntry struct {
	CombatantID string
	Initiative  int
	Tiebreak    int // DEX modifier
	Roll        dice.RollResult
	Seq         int // roster insertion index
}

// Config configures a new encounter.
type Config struct {
	// ID names the encounter; a random UUID is used when empty.
	ID                 string
	AutoRollInitiative bool
	// CriticalRange is the lowest natural d20 that crits; 0 means 20.
	CriticalRange int
	Grid          *Grid
}

// State is the complete encounter aggregate. Orchestrator operations never
// modify a State they are given; they return a modified copy.
//
// Invariant: when Status is StatusActive, Order is non-empty and sorted, and
// TurnIndex indexes Order.
type State struct {
	ID            string
	Status        Status
	Round         int
	TurnIndex     int
	Combatants    map[string]*Combatant
	Roster        []string // combatant IDs in insertion order
	Order         []InitiativeEntry
	History       []TurnRecord
	Grid          *Grid
	CriticalRange int
	Winner        Winner
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	out.Combatants = make(map[string]*Combatant, len(s.Combatants))
	for id, c := range s.Combatants {
		out.Combatants[id] = c.clone()
	}
	out.Roster = slices.Clone(s.Roster)
	out.Order = slices.Clone(s.Order)
	out.History = slices.Clone(s.History)
	if s.Grid != nil {
		g := *s.Grid
		out.Grid = &g
	}
	return &out
}

// Combatant returns the combatant with the given ID.
func (s *State) Combatant(id string) (*Combatant, bool) {
	c, ok := s.Combatants[id]
	return c, ok
}

// Living returns the IDs of combatants above 0 HP in roster order.
func (s *State) Living() []string {
	var out []string
	for _, id := range s.Roster {
		if !s.Combatants[id].IsDown() {
			out = append(out, id)
		}
	}
	return out
}

// HasRolled reports whether id has an initiative entry.
func (s *State) HasRolled(id string) bool {
	return slices.ContainsFunc(s.Order, func(e InitiativeEntry) bool { return e.CombatantID == id })
}

// Current returns the combatant whose turn it is.
//
// Postcondition: ok is false unless Status is StatusActive.
func (s *State) Current() (c *Combatant, ok bool) {
	if s.Status != StatusActive || len(s.Order) == 0 {
		return nil, false
	}
	return s.Combatants[s.Order[s.TurnIndex].CombatantID], true
}

// CombatantIDs returns every combatant ID in sorted order.
func (s *State) CombatantIDs() []string {
	return slices.Sorted(maps.Keys(s.Combatants))
}

func (s *State) record(r TurnRecord) {
	r.Round = s.Round
	s.History = append(s.History, r)
}
