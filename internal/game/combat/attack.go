package combat

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// AttackAction is a request for one attack.
type AttackAction struct {
	AttackerID string
	TargetID   string
	WeaponID   string // informational; recorded in the history
	// Advantage and Disadvantage are caller overrides. They join the
	// condition-derived sources before the net cancellation rule applies.
	Advantage    bool
	Disadvantage bool
}

// AttackerStats are the attacker's numbers for the chosen weapon.
type AttackerStats struct {
	AttackBonus int
	DamageDice  string // e.g. "1d8+3"
	DamageType  dice.DamageType
	// CriticalRange overrides the encounter's critical range when non-zero.
	CriticalRange int
}

// AttackOutcome is the full result of ExecuteAttack.
type AttackOutcome struct {
	AttackerID string
	TargetID   string
	WeaponID   string
	Mode       dice.Mode
	Attack     dice.AttackResult
	// Damage is nil on a miss.
	Damage *dice.DamageResult
	// DamageDealt is the damage after immunity, resistance and vulnerability.
	DamageDealt    int
	TempHPAbsorbed int
	TargetHP       int
	TargetDown     bool
	End            EndResult
}

// String renders the outcome for a narration layer, e.g.
// "thorin attacks goblin-1: 1d20+6 → [14] +6 = 20 vs AC 15: hit; 1d8+3 → [5] +3 = 8 slashing".
func (a AttackOutcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s attacks %s: %s", a.AttackerID, a.TargetID, a.Attack)
	if a.Damage != nil {
		fmt.Fprintf(&b, "; %s", a.Damage)
		if a.DamageDealt != a.Damage.Total {
			fmt.Fprintf(&b, " (%d dealt)", a.DamageDealt)
		}
	}
	return b.String()
}

// attackMode nets condition-derived and requested advantage sources.
//
// Attacker conditions: invisible grants advantage; blinded, frightened,
// poisoned, restrained and prone impose disadvantage.
// Target conditions: blinded, paralyzed, petrified, restrained, stunned,
// unconscious and prone grant advantage; invisible imposes disadvantage.
// Both sides are read from the fixed condition table, so exhaustion levels
// never change the mode.
func attackMode(attacker, target condition.Effects, req AttackAction) dice.Mode {
	advantage := req.Advantage || attacker.AttacksHaveAdvantage || target.GrantsAdvantageToAttackers
	disadvantage := req.Disadvantage || attacker.AttacksHaveDisadvantage || target.AttackersHaveDisadvantage
	return dice.ResolveMode(advantage, disadvantage)
}

// ExecuteAttack resolves one attack: condition-derived advantage, the d20
// roll, damage on a hit (dice doubled on a critical), temporary hit points
// drained first, and end-of-combat detection.
//
// Postcondition: Returns ErrIllegalOperation unless the encounter is active
// and the attacker is standing and able to act; returns a *ValidationError
// for malformed damage dice. Misses are results, not errors.
func (o *Orchestrator) ExecuteAttack(s *State, req AttackAction, stats AttackerStats) (*State, AttackOutcome, error) {
	if s.Status != StatusActive {
		return nil, AttackOutcome{}, illegal("cannot attack: status is %s", s.Status)
	}
	attacker, ok := s.Combatants[req.AttackerID]
	if !ok {
		return nil, AttackOutcome{}, unknownCombatant(req.AttackerID)
	}
	target, ok := s.Combatants[req.TargetID]
	if !ok {
		return nil, AttackOutcome{}, unknownCombatant(req.TargetID)
	}
	if attacker.IsDown() {
		return nil, AttackOutcome{}, illegal("%q is down and cannot attack", attacker.ID)
	}
	attackerFx := attacker.Effects()
	if attackerFx.CantTakeActions {
		return nil, AttackOutcome{}, illegal("%q is incapacitated and cannot attack", attacker.ID)
	}
	damageExpr, err := dice.Parse(stats.DamageDice)
	if err != nil {
		return nil, AttackOutcome{}, &ValidationError{Field: "damage_dice", Reason: err.Error()}
	}
	if stats.DamageType != "" && !stats.DamageType.Valid() {
		return nil, AttackOutcome{}, &ValidationError{Field: "damage_type", Reason: fmt.Sprintf("unknown damage type %q", stats.DamageType)}
	}

	next := s.Clone()
	attacker = next.Combatants[req.AttackerID]
	target = next.Combatants[req.TargetID]

	mode := attackMode(attacker.Conditions.TableEffects(), target.Conditions.TableEffects(), req)
	critRange := stats.CriticalRange
	if critRange == 0 {
		critRange = next.CriticalRange
	}
	atk := o.roller.RollAttack(stats.AttackBonus, target.AC, dice.AttackOptions{
		RollOptions:   dice.RollOptions{Advantage: mode == dice.ModeAdvantage, Disadvantage: mode == dice.ModeDisadvantage},
		CriticalRange: critRange,
	})
	out := AttackOutcome{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		WeaponID:   req.WeaponID,
		Mode:       mode,
		Attack:     atk,
	}
	if atk.Hit {
		dmg := o.roller.RollDamageExpr(damageExpr, stats.DamageType, atk.Critical)
		out.Damage = &dmg
		out.DamageDealt = target.adjustDamage(dmg.Total, dmg.Type)
		out.TempHPAbsorbed = target.takeDamage(out.DamageDealt)
	}
	out.TargetHP = target.CurrentHP
	out.TargetDown = target.IsDown()

	summary := atk.String()
	if out.Damage != nil {
		summary += "; " + out.Damage.String()
	}
	next.record(TurnRecord{
		ActorID: attacker.ID,
		Action:  ActionAttack,
		Targets: []string{target.ID},
		Success: atk.Hit,
		Summary: summary,
	})
	o.logger.Debug("attack resolved",
		zap.String("encounter", s.ID),
		zap.String("attacker", attacker.ID),
		zap.String("target", target.ID),
		zap.Stringer("mode", mode),
		zap.Bool("hit", atk.Hit),
		zap.Bool("critical", atk.Critical),
		zap.Int("damage", out.DamageDealt),
		zap.Int("target_hp", target.CurrentHP),
	)
	out.End = o.detectEnd(next)
	return next, out, nil
}
