package npc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Bestiary indexes templates by ID and spawns numbered instances from them.
// All methods are safe for concurrent use.
type Bestiary struct {
	mu        sync.RWMutex
	templates map[string]*Template
	counters  map[string]int // templateID → instances spawned
}

// NewBestiary creates a Bestiary holding templates.
//
// Postcondition: Returns an error if two templates share an ID.
func NewBestiary(templates []*Template) (*Bestiary, error) {
	b := &Bestiary{
		templates: make(map[string]*Template, len(templates)),
		counters:  make(map[string]int),
	}
	for _, t := range templates {
		if _, dup := b.templates[t.ID]; dup {
			return nil, fmt.Errorf("npc.NewBestiary: template ID %q already registered", t.ID)
		}
		b.templates[t.ID] = t
	}
	return b, nil
}

// LoadBestiary loads every template in dir into a new Bestiary.
func LoadBestiary(dir string) (*Bestiary, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	return NewBestiary(templates)
}

// Template returns the template with the given ID.
//
// Postcondition: Returns (tmpl, true) if found, or (nil, false) otherwise.
func (b *Bestiary) Template(id string) (*Template, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.templates[id]
	return t, ok
}

// IDs returns every template ID in sorted order.
func (b *Bestiary) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.templates))
	for id := range b.templates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Spawn creates the next instance of templateID, named "<id>-<n>". When
// roller is non-nil hit points are rolled from the template's hit dice.
//
// Postcondition: Returns a new Instance with a unique ID, or an error if the
// template is unknown.
func (b *Bestiary) Spawn(templateID string, roller *dice.Roller) (*Instance, error) {
	b.mu.Lock()
	tmpl, ok := b.templates[templateID]
	if !ok {
		b.mu.Unlock()
		return nil, fmt.Errorf("npc.Bestiary.Spawn: template %q not found", templateID)
	}
	b.counters[templateID]++
	id := fmt.Sprintf("%s-%d", templateID, b.counters[templateID])
	b.mu.Unlock()

	if roller == nil {
		return NewInstance(id, tmpl), nil
	}
	return NewRolledInstance(id, tmpl, roller), nil
}
