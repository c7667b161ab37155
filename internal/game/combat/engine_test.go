package combat_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/combat"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

func newEngine() *combat.Engine {
	return combat.NewEngine(combat.NewOrchestrator(dice.NewRoller(dice.NewCryptoSource()), zap.NewNop()))
}

func TestEngine_StartAndGet(t *testing.T) {
	e := newEngine()
	s, err := e.StartCombat([]combat.Combatant{player("p", 10), monster("m", 10)}, combat.Config{ID: "cave", AutoRollInitiative: true})
	require.NoError(t, err)
	assert.Equal(t, "cave", s.ID)
	assert.Equal(t, combat.StatusActive, s.Status)

	got, ok := e.GetCombat("cave")
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, err = e.StartCombat([]combat.Combatant{player("p", 10)}, combat.Config{ID: "cave"})
	assert.Error(t, err, "duplicate encounter IDs must be rejected")

	_, ok = e.GetCombat("nowhere")
	assert.False(t, ok)
	assert.Equal(t, []string{"cave"}, e.IDs())
}

func TestEngine_StartCombat_ValidationError(t *testing.T) {
	e := newEngine()
	_, err := e.StartCombat(nil, combat.Config{ID: "empty"})
	assert.Error(t, err)
	assert.Empty(t, e.IDs())
}

func TestEngine_Apply_StoresResult(t *testing.T) {
	e := newEngine()
	_, err := e.StartCombat([]combat.Combatant{player("p", 10), monster("m", 10)}, combat.Config{ID: "cave", AutoRollInitiative: true})
	require.NoError(t, err)

	s, err := e.Apply("cave", func(o *combat.Orchestrator, s *combat.State) (*combat.State, error) {
		next, _, err := o.ApplyDamage(s, "m", 3)
		return next, err
	})
	require.NoError(t, err)
	assert.Equal(t, 7, s.Combatants["m"].CurrentHP)

	// The returned copy is the caller's; mutating it does not reach the engine.
	s.Combatants["m"].CurrentHP = 1
	got, _ := e.GetCombat("cave")
	assert.Equal(t, 7, got.Combatants["m"].CurrentHP)
}

func TestEngine_Apply_ErrorLeavesStateUnchanged(t *testing.T) {
	e := newEngine()
	before, err := e.StartCombat([]combat.Combatant{player("p", 10), monster("m", 10)}, combat.Config{ID: "cave"})
	require.NoError(t, err)

	_, err = e.Apply("cave", func(o *combat.Orchestrator, s *combat.State) (*combat.State, error) {
		next, _, err := o.NextTurn(s)
		return next, err
	})
	assert.True(t, combat.IsIllegal(err))
	got, _ := e.GetCombat("cave")
	assert.Equal(t, before, got)

	_, err = e.Apply("nowhere", func(o *combat.Orchestrator, s *combat.State) (*combat.State, error) { return s, nil })
	assert.Error(t, err)
}

func TestEngine_Apply_NilStateRejected(t *testing.T) {
	e := newEngine()
	before, err := e.StartCombat([]combat.Combatant{player("p", 10), monster("m", 10)}, combat.Config{ID: "cave"})
	require.NoError(t, err)

	s, err := e.Apply("cave", func(*combat.Orchestrator, *combat.State) (*combat.State, error) { return nil, nil })
	assert.Nil(t, s)
	assert.ErrorContains(t, err, "no state")

	got, ok := e.GetCombat("cave")
	require.True(t, ok)
	assert.Equal(t, before, got)

	s, err = e.Apply("cave", func(o *combat.Orchestrator, s *combat.State) (*combat.State, error) {
		next, _, err := o.ApplyDamage(s, "m", 2)
		return next, err
	})
	require.NoError(t, err)
	assert.Equal(t, 8, s.Combatants["m"].CurrentHP)
}

func TestEngine_Apply_SerialisesPerEncounter(t *testing.T) {
	e := newEngine()
	_, err := e.StartCombat([]combat.Combatant{player("p", 500), monster("m", 500)}, combat.Config{ID: "a"})
	require.NoError(t, err)
	_, err = e.StartCombat([]combat.Combatant{player("p", 500), monster("m", 500)}, combat.Config{ID: "b"})
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for _, id := range []string{"a", "b"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := e.Apply(id, func(o *combat.Orchestrator, s *combat.State) (*combat.State, error) {
					next, _, err := o.ApplyDamage(s, "m", 1)
					return next, err
				})
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for _, id := range []string{"a", "b"} {
		s, ok := e.GetCombat(id)
		require.True(t, ok)
		assert.Equal(t, 500-n, s.Combatants["m"].CurrentHP)
		assert.Len(t, s.History, n)
	}
}

func TestEngine_EndCombat(t *testing.T) {
	e := newEngine()
	_, err := e.StartCombat([]combat.Combatant{player("p", 10), monster("m", 10)}, combat.Config{ID: "cave", AutoRollInitiative: true})
	require.NoError(t, err)

	final, ok := e.EndCombat("cave")
	require.True(t, ok)
	assert.Equal(t, combat.StatusEnded, final.Status)
	_, ok = e.GetCombat("cave")
	assert.False(t, ok)
	_, ok = e.EndCombat("cave")
	assert.False(t, ok)
}
