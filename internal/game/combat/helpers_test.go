package combat_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/combat"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// faceSource returns pre-scripted die faces in order. Intn returns face-1.
type faceSource struct {
	faces []int
	pos   int
}

func (s *faceSource) Intn(n int) int {
	if s.pos >= len(s.faces) {
		panic("faceSource exhausted")
	}
	f := s.faces[s.pos]
	s.pos++
	if f < 1 || f > n {
		panic(fmt.Sprintf("scripted face %d out of range for d%d", f, n))
	}
	return f - 1
}

func (s *faceSource) push(f ...int) { s.faces = append(s.faces, f...) }

// remaining reports how many scripted faces were not consumed.
func (s *faceSource) remaining() int { return len(s.faces) - s.pos }

func newOrchestrator(faces ...int) (*combat.Orchestrator, *faceSource) {
	src := &faceSource{faces: faces}
	return combat.NewOrchestrator(dice.NewRoller(src), zap.NewNop()), src
}

func player(id string, hp int) combat.Combatant {
	return combat.Combatant{ID: id, Name: id, Kind: combat.KindPlayer, CurrentHP: hp, MaxHP: hp, AC: 15}
}

func monster(id string, hp int) combat.Combatant {
	return combat.Combatant{ID: id, Name: id, Kind: combat.KindMonster, CurrentHP: hp, MaxHP: hp, AC: 13}
}

// started builds an active encounter whose initiative order equals the
// roster order: combatant i rolls a natural 20-i with DexMod 0.
func started(t *testing.T, o *combat.Orchestrator, src *faceSource, cs ...combat.Combatant) *combat.State {
	t.Helper()
	for i := range cs {
		cs[i].DexMod = 0
		src.push(20 - i)
	}
	s, err := o.InitiateCombat(cs, combat.Config{ID: "enc-1", AutoRollInitiative: true})
	require.NoError(t, err)
	require.Equal(t, combat.StatusActive, s.Status)
	return s
}

func orderIDs(s *combat.State) []string {
	ids := make([]string, len(s.Order))
	for i, e := range s.Order {
		ids[i] = e.CombatantID
	}
	return ids
}
