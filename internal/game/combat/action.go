package combat

// ActionType identifies a resolved action in the turn history.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionAttack
	ActionDamage
	ActionHeal
	ActionTempHP
	ActionApplyCondition
	ActionRemoveCondition
	ActionMove
	ActionReaction
	ActionSavingThrow
	ActionConcentration
	ActionEndCombat
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDamage:
		return "damage"
	case ActionHeal:
		return "heal"
	case ActionTempHP:
		return "temp_hp"
	case ActionApplyCondition:
		return "apply_condition"
	case ActionRemoveCondition:
		return "remove_condition"
	case ActionMove:
		return "move"
	case ActionReaction:
		return "reaction"
	case ActionSavingThrow:
		return "saving_throw"
	case ActionConcentration:
		return "concentration"
	case ActionEndCombat:
		return "end_combat"
	default:
		return "unknown"
	}
}

// TurnRecord is one entry in the turn history, precise enough for a
// narration layer to render without recomputing any arithmetic.
type TurnRecord struct {
	Round   int
	ActorID string // empty for operations with no acting combatant
	Action  ActionType
	Targets []string
	Success bool
	// Summary is the machine-formatted audit line, e.g.
	// "1d20+6 → [14] +6 = 20 vs AC 15: hit".
	Summary string
}
