package ai

import "errors"

// maxSteps bounds decomposition so a recursive domain cannot loop forever.
const maxSteps = 32

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	OperatorID string
	Action     string // "attack" or "pass"
	Target     string // resolved combatant ID; empty for pass or when nobody matches
}

// Planner evaluates an HTN domain and produces an ordered action plan for
// one combatant's turn. A Planner is stateless and safe for concurrent use.
//
// Invariant: domain must not be nil.
type Planner struct {
	domain *Domain
}

// NewPlanner constructs a Planner.
//
// Precondition: domain must not be nil and must pass Validate.
func NewPlanner(domain *Domain) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	return &Planner{domain: domain}
}

// DomainID returns the ID of the planner's domain.
func (p *Planner) DomainID() string { return p.domain.ID }

// Plan evaluates the HTN domain against state and returns an ordered plan.
//
// Precondition: state and state.Self must not be nil.
// Postcondition: returns a non-nil slice, empty when no method applies.
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.Self == nil {
		return nil, errors.New("ai.Planner.Plan: state and state.Self must not be nil")
	}

	taskQueue := []string{RootTask}
	result := []PlannedAction{}

	for steps := 0; len(taskQueue) > 0 && steps < maxSteps; steps++ {
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{
				OperatorID: op.ID,
				Action:     op.Action,
				Target:     state.ResolveTarget(op.Target),
			})
			continue
		}

		method := p.findApplicableMethod(current, state)
		if method == nil {
			continue
		}
		taskQueue = append(append([]string(nil), method.Subtasks...), taskQueue...)
	}
	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose precondition
// holds, or nil if none applies. An empty Precondition always holds.
func (p *Planner) findApplicableMethod(taskID string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if m.Precondition == "" || Evaluate(m.Precondition, state) {
			return m
		}
	}
	return nil
}
