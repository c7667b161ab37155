package combat

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/character"
	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
	"github.com/cory-johannsen/encounter/internal/game/rules"
)

// ConditionChange reports the outcome of ApplyCondition.
type ConditionChange struct {
	CombatantID string
	Type        condition.Type
	// Applied is false when the combatant is immune.
	Applied  bool
	Immune   bool
	Replaced bool
	// BrokeConcentration is true when an incapacitating condition ended the
	// combatant's concentration.
	BrokeConcentration bool
	End                EndResult
}

// ApplyCondition puts a on combatant id, replacing any condition of the same
// type. A combatant immune to the type is left unchanged and the outcome
// reports Immune; that is a result, not an error. An incapacitating condition
// ends concentration, and exhaustion at level 6 drops the combatant to 0 HP.
//
// Postcondition: Returns a *ValidationError for an unknown type, a rounds
// duration below 1 or an exhaustion level outside 1-6.
func (o *Orchestrator) ApplyCondition(s *State, id string, a condition.Active) (*State, ConditionChange, error) {
	if !a.Type.Valid() {
		return nil, ConditionChange{}, &ValidationError{Field: "condition", Reason: fmt.Sprintf("unknown condition type %d", int(a.Type))}
	}
	if _, ok := s.Combatants[id]; !ok {
		return nil, ConditionChange{}, unknownCombatant(id)
	}
	next := s.Clone()
	c := next.Combatants[id]
	change := ConditionChange{CombatantID: id, Type: a.Type}

	if slices.Contains(c.ConditionImmunities, a.Type) {
		change.Immune = true
		next.record(TurnRecord{
			ActorID: a.Source,
			Action:  ActionApplyCondition,
			Targets: []string{id},
			Summary: fmt.Sprintf("%s is immune to %s", id, a.Type),
		})
		return next, change, nil
	}

	change.Replaced = c.Conditions.Has(a.Type)
	if err := c.Conditions.Apply(a); err != nil {
		return nil, ConditionChange{}, &ValidationError{Field: "condition", Reason: err.Error()}
	}
	change.Applied = true

	fx := c.Effects()
	if fx.Incapacitated && c.Concentrating {
		c.Concentrating = false
		change.BrokeConcentration = true
	}
	if fx.Dead {
		c.CurrentHP = 0
		c.TempHP = 0
	}
	next.record(TurnRecord{
		ActorID: a.Source,
		Action:  ActionApplyCondition,
		Targets: []string{id},
		Success: true,
		Summary: fmt.Sprintf("%s is %s", id, a.Type),
	})
	o.logger.Debug("condition applied",
		zap.String("encounter", s.ID),
		zap.String("combatant", id),
		zap.Stringer("condition", a.Type),
		zap.Bool("replaced", change.Replaced),
	)
	if fx.Dead {
		change.End = o.detectEnd(next)
	}
	return next, change, nil
}

// RemoveCondition removes condition t from id and reports whether it was
// present. Removing an absent condition is not an error.
func (o *Orchestrator) RemoveCondition(s *State, id string, t condition.Type) (*State, bool, error) {
	if !t.Valid() {
		return nil, false, &ValidationError{Field: "condition", Reason: fmt.Sprintf("unknown condition type %d", int(t))}
	}
	if _, ok := s.Combatants[id]; !ok {
		return nil, false, unknownCombatant(id)
	}
	next := s.Clone()
	removed := next.Combatants[id].Conditions.Remove(t)
	next.record(TurnRecord{
		Action:  ActionRemoveCondition,
		Targets: []string{id},
		Success: removed,
		Summary: fmt.Sprintf("%s is no longer %s", id, t),
	})
	return next, removed, nil
}

// MoveCombatant overwrites id's position. Grid bounds and terrain are the
// caller's concern.
func (o *Orchestrator) MoveCombatant(s *State, id string, to Position) (*State, error) {
	if _, ok := s.Combatants[id]; !ok {
		return nil, unknownCombatant(id)
	}
	next := s.Clone()
	pos := to
	next.Combatants[id].Position = &pos
	next.record(TurnRecord{
		ActorID: id,
		Action:  ActionMove,
		Success: true,
		Summary: fmt.Sprintf("%s moves to (%d,%d)", id, to.X, to.Y),
	})
	return next, nil
}

// UseReaction spends id's reaction for the round.
//
// Postcondition: Returns ErrIllegalOperation unless the encounter is active
// and id is standing, has its reaction available and is not barred from
// reacting by a condition.
func (o *Orchestrator) UseReaction(s *State, id string) (*State, error) {
	if s.Status != StatusActive {
		return nil, illegal("cannot react: status is %s", s.Status)
	}
	c, ok := s.Combatants[id]
	if !ok {
		return nil, unknownCombatant(id)
	}
	switch {
	case c.IsDown():
		return nil, illegal("%q is down and cannot react", id)
	case c.Effects().CantTakeReactions:
		return nil, illegal("%q cannot take reactions", id)
	case c.ReactionsUsed >= 1:
		return nil, illegal("%q has already used its reaction this round", id)
	}
	next := s.Clone()
	next.Combatants[id].ReactionsUsed++
	next.record(TurnRecord{ActorID: id, Action: ActionReaction, Success: true, Summary: id + " uses a reaction"})
	return next, nil
}

// SaveRequest describes a saving throw forced on a combatant.
type SaveRequest struct {
	Ability character.Ability
	// Modifier is the combatant's full save modifier for Ability.
	Modifier     int
	DC           int
	Advantage    bool
	Disadvantage bool
	Source       string // who forced the save; recorded in the history
}

// RollSavingThrow rolls a save for id. Paralyzed, petrified, stunned and
// unconscious combatants automatically fail STR and DEX saves; the die is
// still rolled. Conditions grant no advantage or disadvantage here; only
// the request's flags apply.
func (o *Orchestrator) RollSavingThrow(s *State, id string, req SaveRequest) (*State, dice.SavingThrowResult, error) {
	if !req.Ability.Valid() {
		return nil, dice.SavingThrowResult{}, &ValidationError{Field: "ability", Reason: fmt.Sprintf("unknown ability %q", req.Ability)}
	}
	c, ok := s.Combatants[id]
	if !ok {
		return nil, dice.SavingThrowResult{}, unknownCombatant(id)
	}
	fx := c.Effects()
	autoFail := (req.Ability == character.Strength && fx.AutoFailStrengthSaves) ||
		(req.Ability == character.Dexterity && fx.AutoFailDexteritySaves)

	res := o.roller.RollSavingThrow(req.Modifier, req.DC, dice.SaveOptions{
		RollOptions: dice.RollOptions{Advantage: req.Advantage, Disadvantage: req.Disadvantage},
		AutoFail:    autoFail,
	})
	next := s.Clone()
	summary := fmt.Sprintf("%s save: %s vs DC %d", req.Ability, res.Roll, req.DC)
	if res.AutoFailed {
		summary += " (automatic failure)"
	}
	next.record(TurnRecord{
		ActorID: req.Source,
		Action:  ActionSavingThrow,
		Targets: []string{id},
		Success: res.Success,
		Summary: summary,
	})
	return next, res, nil
}

// ErrNotConcentrating is returned by ConcentrationCheck for a combatant that
// holds no concentration effect.
var ErrNotConcentrating = fmt.Errorf("%w: not concentrating", ErrIllegalOperation)

// ConcentrationResult reports a concentration check.
type ConcentrationResult struct {
	DC         int
	Save       dice.SavingThrowResult
	Maintained bool
}

// SetConcentration marks id as concentrating (or not).
func (o *Orchestrator) SetConcentration(s *State, id string, on bool) (*State, error) {
	c, ok := s.Combatants[id]
	if !ok {
		return nil, unknownCombatant(id)
	}
	if on && c.Effects().Incapacitated {
		return nil, illegal("%q is incapacitated and cannot concentrate", id)
	}
	next := s.Clone()
	next.Combatants[id].Concentrating = on
	return next, nil
}

// ConcentrationCheck rolls a CON save against max(10, damage/2) after id
// took damage. Failure ends concentration.
func (o *Orchestrator) ConcentrationCheck(s *State, id string, damage, conMod int) (*State, ConcentrationResult, error) {
	if damage < 0 {
		return nil, ConcentrationResult{}, &ValidationError{Field: "damage", Reason: fmt.Sprintf("must be >= 0, got %d", damage)}
	}
	c, ok := s.Combatants[id]
	if !ok {
		return nil, ConcentrationResult{}, unknownCombatant(id)
	}
	if !c.Concentrating {
		return nil, ConcentrationResult{}, fmt.Errorf("%w %q", ErrNotConcentrating, id)
	}
	dc := rules.ConcentrationSaveDC(damage)
	save := o.roller.RollSavingThrow(conMod, dc, dice.SaveOptions{})
	next := s.Clone()
	if !save.Success {
		next.Combatants[id].Concentrating = false
	}
	next.record(TurnRecord{
		ActorID: id,
		Action:  ActionConcentration,
		Success: save.Success,
		Summary: fmt.Sprintf("concentration: %s vs DC %d", save.Roll, dc),
	})
	return next, ConcentrationResult{DC: dc, Save: save, Maintained: save.Success}, nil
}
