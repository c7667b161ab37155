package skirmish

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/ai"
	"github.com/cory-johannsen/encounter/internal/game/combat"
)

// Result summarises a finished skirmish.
type Result struct {
	State   *combat.State
	Attacks []combat.AttackOutcome
	// TimedOut is true when the round limit forced the encounter to end.
	TimedOut bool
}

// Runner drives an encounter with one tactics planner per side.
//
// Invariant: orch, party, monsters and logger are non-nil; maxRounds >= 1.
type Runner struct {
	orch      *combat.Orchestrator
	arsenal   Arsenal
	party     *ai.Planner
	monsters  *ai.Planner
	maxRounds int
	logger    *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: orch, party, monsters and logger must be non-nil; maxRounds >= 1.
func NewRunner(orch *combat.Orchestrator, arsenal Arsenal, party, monsters *ai.Planner, maxRounds int, logger *zap.Logger) *Runner {
	if orch == nil || party == nil || monsters == nil || logger == nil {
		panic("skirmish.NewRunner: orch, planners and logger must not be nil")
	}
	if maxRounds < 1 {
		panic("skirmish.NewRunner: maxRounds must be >= 1")
	}
	return &Runner{
		orch:      orch,
		arsenal:   arsenal,
		party:     party,
		monsters:  monsters,
		maxRounds: maxRounds,
		logger:    logger,
	}
}

// Run plays s to completion. An encounter still in StatusInitiative has its
// remaining initiative rolled first. Once the round counter passes the
// runner's limit the encounter is ended without a winner unless one side
// has already fallen.
//
// Precondition: s must not be nil.
// Postcondition: On success Result.State.Status is StatusEnded. On context
// cancellation the last consistent state is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, s *combat.State) (Result, error) {
	var res Result
	if s.Status == combat.StatusInitiative {
		next, _, err := r.orch.RollAllInitiative(s)
		if err != nil {
			return res, fmt.Errorf("skirmish: rolling initiative: %w", err)
		}
		s = next
	}

	for s.Status == combat.StatusActive {
		if err := ctx.Err(); err != nil {
			res.State = s
			return res, err
		}
		if s.Round > r.maxRounds {
			r.logger.Warn("round limit reached", zap.String("encounter", s.ID), zap.Int("max_rounds", r.maxRounds))
			s = r.orch.EndCombat(s)
			res.TimedOut = true
			break
		}

		next, outcomes, err := r.takeTurn(s)
		if err != nil {
			res.State = s
			return res, err
		}
		s = next
		res.Attacks = append(res.Attacks, outcomes...)
		if s.Status != combat.StatusActive {
			break
		}

		next, _, err = r.orch.NextTurn(s)
		if err != nil {
			res.State = s
			return res, fmt.Errorf("skirmish: advancing turn: %w", err)
		}
		s = next
	}
	res.State = s
	return res, nil
}

// takeTurn plans and executes the current actor's actions.
func (r *Runner) takeTurn(s *combat.State) (*combat.State, []combat.AttackOutcome, error) {
	actor, ok := s.Current()
	if !ok || actor.IsDown() {
		return s, nil, nil
	}
	ws, err := ai.BuildWorldState(s, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	planner := r.monsters
	if actor.IsPlayer() {
		planner = r.party
	}
	plan, err := planner.Plan(ws)
	if err != nil {
		return nil, nil, fmt.Errorf("skirmish: planning for %q: %w", actor.ID, err)
	}

	var outcomes []combat.AttackOutcome
	for _, action := range plan {
		if action.Action != ai.ActionAttack || action.Target == "" {
			continue
		}
		stats, armed := r.arsenal[actor.ID]
		if !armed {
			continue
		}
		next, out, err := r.orch.ExecuteAttack(s, combat.AttackAction{AttackerID: actor.ID, TargetID: action.Target}, stats)
		if combat.IsIllegal(err) {
			r.logger.Debug("action skipped",
				zap.String("combatant", actor.ID),
				zap.String("operator", action.OperatorID),
				zap.Error(err),
			)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("skirmish: %q attacking %q: %w", actor.ID, action.Target, err)
		}
		s = next
		outcomes = append(outcomes, out)
		if s.Status != combat.StatusActive {
			break
		}
	}
	return s, outcomes, nil
}
