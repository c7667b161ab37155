package npc_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/encounter/internal/game/dice"
	"github.com/cory-johannsen/encounter/internal/game/npc"
)

func goblin(t *testing.T) *npc.Template {
	t.Helper()
	tmpl, err := npc.LoadTemplateFromBytes([]byte(goblinYAML))
	require.NoError(t, err)
	return tmpl
}

func TestNewBestiary_Duplicate(t *testing.T) {
	g := goblin(t)
	_, err := npc.NewBestiary([]*npc.Template{g, g})
	assert.Error(t, err)
}

func TestBestiary_Spawn_FixedHP(t *testing.T) {
	b, err := npc.NewBestiary([]*npc.Template{goblin(t)})
	require.NoError(t, err)

	first, err := b.Spawn("goblin", nil)
	require.NoError(t, err)
	second, err := b.Spawn("goblin", nil)
	require.NoError(t, err)

	assert.Equal(t, "goblin-1", first.ID)
	assert.Equal(t, "goblin-2", second.ID)
	assert.Equal(t, 7, first.MaxHP)
	assert.Equal(t, 7, first.CurrentHP)
	assert.Nil(t, first.HPRoll)
	assert.Equal(t, npc.KindMonster, first.Kind)
}

func TestBestiary_Spawn_RolledHP(t *testing.T) {
	b, err := npc.NewBestiary([]*npc.Template{goblin(t)})
	require.NoError(t, err)
	inst, err := b.Spawn("goblin", dice.NewRoller(dice.NewSeededSource(7)))
	require.NoError(t, err)
	require.NotNil(t, inst.HPRoll)
	assert.Equal(t, inst.HPRoll.Total(), inst.MaxHP)
	assert.GreaterOrEqual(t, inst.MaxHP, 2)
	assert.LessOrEqual(t, inst.MaxHP, 12)
}

func TestBestiary_Spawn_Unknown(t *testing.T) {
	b, err := npc.NewBestiary(nil)
	require.NoError(t, err)
	_, err = b.Spawn("dragon", nil)
	assert.Error(t, err)
}

func TestBestiary_Spawn_ConcurrentIDsUnique(t *testing.T) {
	b, err := npc.NewBestiary([]*npc.Template{goblin(t)})
	require.NoError(t, err)

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := b.Spawn("goblin", nil)
			if err == nil {
				ids <- inst.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestNewInstance_CopiesSlices(t *testing.T) {
	tmpl := goblin(t)
	inst := npc.NewInstance("g", tmpl)
	inst.Attacks[0].AttackBonus = 99
	assert.Equal(t, 4, tmpl.Attacks[0].AttackBonus)
}

func TestLoadBestiary_BundledContent(t *testing.T) {
	b, err := npc.LoadBestiary("../../../content/monsters")
	require.NoError(t, err)
	assert.Contains(t, b.IDs(), "goblin")
	tmpl, ok := b.Template("skeleton")
	require.True(t, ok)
	assert.NotEmpty(t, tmpl.DamageVulnerabilities)
}
