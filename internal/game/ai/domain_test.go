package ai_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/encounter/internal/game/ai"
)

const tacticsDir = "../../../content/tactics"

func TestDomain_Validate_Valid(t *testing.T) {
	require.NoError(t, bruteDomain().Validate())
}

func TestDomain_Validate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *ai.Domain)
		fragment string
	}{
		{"empty id", func(d *ai.Domain) { d.ID = "" }, "ID must not be empty"},
		{"no tasks", func(d *ai.Domain) { d.Tasks = nil }, "at least one task"},
		{"missing root", func(d *ai.Domain) { d.Tasks[0].ID = "idle" }, `root task "behave"`},
		{"duplicate task", func(d *ai.Domain) { d.Tasks[1].ID = "behave" }, "duplicate task ID"},
		{"unknown action", func(d *ai.Domain) { d.Operators[0].Action = "flee" }, `unknown action "flee"`},
		{"bad attack target", func(d *ai.Domain) { d.Operators[0].Target = "self" }, "attack target"},
		{"duplicate operator", func(d *ai.Domain) { d.Operators[1].ID = d.Operators[0].ID }, "duplicate operator ID"},
		{"unknown precondition", func(d *ai.Domain) { d.Methods[0].Precondition = "is_raining" }, `unknown precondition "is_raining"`},
		{"empty subtasks", func(d *ai.Domain) { d.Methods[0].Subtasks = nil }, "subtasks must not be empty"},
		{"unknown task ref", func(d *ai.Domain) { d.Methods[0].TaskID = "sleep" }, "references unknown task"},
		{"dangling subtask", func(d *ai.Domain) { d.Methods[0].Subtasks = []string{"dance"} }, `subtask "dance"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := bruteDomain()
			tt.mutate(d)
			assert.ErrorContains(t, d.Validate(), tt.fragment)
		})
	}
}

func TestDomain_Lookups(t *testing.T) {
	d := bruteDomain()
	op, ok := d.OperatorByID("attack_weakest")
	require.True(t, ok)
	assert.Equal(t, ai.TargetWeakestEnemy, op.Target)
	_, ok = d.OperatorByID("nope")
	assert.False(t, ok)

	methods := d.MethodsForTask("fight")
	require.Len(t, methods, 2)
	assert.Equal(t, "finish_off", methods[0].ID, "declaration order is preserved")
}

func TestLoadDomainFromBytes_RejectsUnknownFields(t *testing.T) {
	_, err := ai.LoadDomainFromBytes([]byte("domain:\n  id: x\n  script: boss\n"))
	assert.Error(t, err)

	_, err = ai.LoadDomainFromBytes([]byte("tasks: []\n"))
	assert.Error(t, err)
}

func TestLoadDomains_Content(t *testing.T) {
	domains, err := ai.LoadDomains(tacticsDir)
	require.NoError(t, err)
	ids := make([]string, 0, len(domains))
	for _, d := range domains {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"brute", "skirmisher"}, ids)
}

func TestLoadDomains_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("domain:\n  id: bad\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	_, err := ai.LoadDomains(dir)
	assert.ErrorContains(t, err, "bad.yaml")
}

func TestLoadDomains_MissingDir(t *testing.T) {
	_, err := ai.LoadDomains(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := ai.NewRegistry()
	require.NoError(t, r.Register(bruteDomain()))
	assert.ErrorContains(t, r.Register(bruteDomain()), "already registered")

	p, ok := r.PlannerFor("brute")
	require.True(t, ok)
	assert.Equal(t, "brute", p.DomainID())
	_, ok = r.PlannerFor("coward")
	assert.False(t, ok)
}

func TestLoadRegistry(t *testing.T) {
	r, err := ai.LoadRegistry(tacticsDir)
	require.NoError(t, err)
	for _, id := range []string{"brute", "skirmisher"} {
		_, ok := r.PlannerFor(id)
		assert.True(t, ok, id)
	}
}

func TestNewPlanner_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { ai.NewPlanner(nil) })
}
