package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// HPChange reports a combatant's hit points after an HP operation.
type HPChange struct {
	CombatantID    string
	Amount         int // damage taken, healing received or temp HP granted
	TempHPAbsorbed int
	CurrentHP      int
	TempHP         int
	Down           bool
	End            EndResult
}

func (o *Orchestrator) hpOperation(s *State, id string, amount int, field string) (*State, *Combatant, error) {
	if amount < 0 {
		return nil, nil, &ValidationError{Field: field, Reason: fmt.Sprintf("must be >= 0, got %d", amount)}
	}
	if _, ok := s.Combatants[id]; !ok {
		return nil, nil, unknownCombatant(id)
	}
	next := s.Clone()
	return next, next.Combatants[id], nil
}

// ApplyDamage deals amount untyped damage to id: temporary hit points absorb
// first, the rest comes off CurrentHP, floored at 0.
//
// Postcondition: TempHP >= 0 and CurrentHP >= 0. An active encounter ends
// when a faction falls.
func (o *Orchestrator) ApplyDamage(s *State, id string, amount int) (*State, HPChange, error) {
	next, c, err := o.hpOperation(s, id, amount, "damage")
	if err != nil {
		return nil, HPChange{}, err
	}
	absorbed := c.takeDamage(amount)
	next.record(TurnRecord{
		Action:  ActionDamage,
		Targets: []string{id},
		Success: true,
		Summary: fmt.Sprintf("%s takes %d damage (%d absorbed) → %d HP", id, amount, absorbed, c.CurrentHP),
	})
	change := HPChange{
		CombatantID:    id,
		Amount:         amount,
		TempHPAbsorbed: absorbed,
		CurrentHP:      c.CurrentHP,
		TempHP:         c.TempHP,
		Down:           c.IsDown(),
	}
	change.End = o.detectEnd(next)
	o.logger.Debug("damage applied", zap.String("combatant", id), zap.Int("amount", amount), zap.Int("hp", c.CurrentHP))
	return next, change, nil
}

// Heal restores up to amount hit points to id, never above MaxHP.
func (o *Orchestrator) Heal(s *State, id string, amount int) (*State, HPChange, error) {
	next, c, err := o.hpOperation(s, id, amount, "healing")
	if err != nil {
		return nil, HPChange{}, err
	}
	healed := min(amount, c.MaxHP-c.CurrentHP)
	c.CurrentHP += healed
	next.record(TurnRecord{
		Action:  ActionHeal,
		Targets: []string{id},
		Success: true,
		Summary: fmt.Sprintf("%s heals %d → %d HP", id, healed, c.CurrentHP),
	})
	o.logger.Debug("healed", zap.String("combatant", id), zap.Int("amount", healed), zap.Int("hp", c.CurrentHP))
	return next, HPChange{CombatantID: id, Amount: healed, CurrentHP: c.CurrentHP, TempHP: c.TempHP}, nil
}

// AddTemporaryHP sets id's temporary hit points to the larger of the current
// and new value. Temporary hit points never stack.
func (o *Orchestrator) AddTemporaryHP(s *State, id string, amount int) (*State, HPChange, error) {
	next, c, err := o.hpOperation(s, id, amount, "temp_hp")
	if err != nil {
		return nil, HPChange{}, err
	}
	c.TempHP = max(c.TempHP, amount)
	next.record(TurnRecord{
		Action:  ActionTempHP,
		Targets: []string{id},
		Success: c.TempHP == amount,
		Summary: fmt.Sprintf("%s temporary HP %d", id, c.TempHP),
	})
	return next, HPChange{CombatantID: id, Amount: amount, CurrentHP: c.CurrentHP, TempHP: c.TempHP}, nil
}
