package combat

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Operation is one orchestrator call against an encounter held by an Engine.
type Operation func(o *Orchestrator, s *State) (*State, error)

type encounter struct {
	mu    sync.Mutex
	state *State
}

// Engine owns many encounters keyed by ID and serialises operations on each
// one. Operations on different encounters run concurrently.
// All methods are safe for concurrent use.
type Engine struct {
	orch *Orchestrator

	mu         sync.RWMutex
	encounters map[string]*encounter
}

// NewEngine creates an empty Engine.
//
// Precondition: o must be non-nil.
func NewEngine(o *Orchestrator) *Engine {
	return &Engine{orch: o, encounters: make(map[string]*encounter)}
}

// StartCombat initiates an encounter and stores it under its ID.
//
// Postcondition: Returns an error if an encounter with cfg.ID is already held.
func (e *Engine) StartCombat(combatants []Combatant, cfg Config) (*State, error) {
	s, err := e.orch.InitiateCombat(combatants, cfg)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.encounters[s.ID]; exists {
		return nil, fmt.Errorf("encounter %q already exists", s.ID)
	}
	e.encounters[s.ID] = &encounter{state: s}
	return s.Clone(), nil
}

func (e *Engine) lookup(id string) (*encounter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enc, ok := e.encounters[id]
	return enc, ok
}

// GetCombat returns a copy of the encounter's current state.
func (e *Engine) GetCombat(id string) (*State, bool) {
	enc, ok := e.lookup(id)
	if !ok {
		return nil, false
	}
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return enc.state.Clone(), true
}

// Apply runs op against encounter id under that encounter's lock and stores
// the returned state. On error, or when op returns no state, the stored
// state is unchanged.
//
// Postcondition: Returns a copy of the new state, or an error.
func (e *Engine) Apply(id string, op Operation) (*State, error) {
	enc, ok := e.lookup(id)
	if !ok {
		return nil, fmt.Errorf("encounter %q not found", id)
	}
	enc.mu.Lock()
	defer enc.mu.Unlock()
	next, err := op(e.orch, enc.state)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, fmt.Errorf("encounter %q: operation returned no state", id)
	}
	enc.state = next
	return next.Clone(), nil
}

// EndCombat forces encounter id to ended, removes it and returns its final state.
func (e *Engine) EndCombat(id string) (*State, bool) {
	e.mu.Lock()
	enc, ok := e.encounters[id]
	delete(e.encounters, id)
	e.mu.Unlock()
	if !ok {
		return nil, false
	}
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return e.orch.EndCombat(enc.state), true
}

// IDs returns the IDs of all held encounters in sorted order.
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Sorted(maps.Keys(e.encounters))
}
