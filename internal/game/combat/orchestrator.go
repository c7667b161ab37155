package combat

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/game/condition"
	"github.com/cory-johannsen/encounter/internal/game/dice"
)

// Orchestrator runs encounter operations. It holds no encounter state of its
// own: every operation takes a *State, works on a clone, and returns the
// clone. On error the returned state is nil and the input is unchanged.
//
// An Orchestrator is safe for concurrent use across different States when
// its Roller's Source is; the caller must serialise operations on any one
// encounter (see Engine).
type Orchestrator struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewOrchestrator creates an Orchestrator.
//
// Precondition: roller and logger must be non-nil.
func NewOrchestrator(roller *dice.Roller, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{roller: roller, logger: logger}
}

// TurnChange describes the result of NextTurn.
type TurnChange struct {
	Round       int
	TurnIndex   int
	CombatantID string
	NewRound    bool
	Skipped     []string         // downed combatants passed over
	Expired     []condition.Type // conditions that ran out on arrival
}

// InitiateCombat builds a new encounter in StatusInitiative from combatants.
// With cfg.AutoRollInitiative every combatant rolls and the encounter
// becomes active at round 1.
//
// Postcondition: Returns a *ValidationError for an empty roster, duplicate
// or empty IDs, or hit point values that break the Combatant invariant.
func (o *Orchestrator) InitiateCombat(combatants []Combatant, cfg Config) (*State, error) {
	if len(combatants) == 0 {
		return nil, &ValidationError{Field: "combatants", Reason: "at least one combatant is required"}
	}
	if cfg.CriticalRange < 0 || cfg.CriticalRange > 20 {
		return nil, &ValidationError{Field: "critical_range", Reason: "must be 0-20"}
	}
	s := &State{
		ID:            cfg.ID,
		Status:        StatusInitiative,
		Combatants:    make(map[string]*Combatant, len(combatants)),
		Grid:          cfg.Grid,
		CriticalRange: cfg.CriticalRange,
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CriticalRange == 0 {
		s.CriticalRange = dice.DefaultCriticalRange
	}
	for i := range combatants {
		if err := s.addCombatant(&combatants[i]); err != nil {
			return nil, err
		}
	}
	if cfg.Grid != nil {
		g := *cfg.Grid
		s.Grid = &g
	}
	o.logger.Info("combat initiated",
		zap.String("encounter", s.ID),
		zap.Int("combatants", len(s.Roster)),
	)
	if !cfg.AutoRollInitiative {
		return s, nil
	}
	next, _, err := o.RollAllInitiative(s)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// addCombatant validates c and appends a copy to the roster.
func (s *State) addCombatant(c *Combatant) error {
	if c.ID == "" {
		return &ValidationError{Field: "combatant.id", Reason: "must not be empty"}
	}
	if _, dup := s.Combatants[c.ID]; dup {
		return &ValidationError{Field: "combatant.id", Reason: fmt.Sprintf("duplicate id %q", c.ID)}
	}
	if !c.Kind.Valid() {
		return &ValidationError{Field: "combatant.kind", Reason: fmt.Sprintf("%q is not player, npc or monster", c.Kind)}
	}
	if c.MaxHP < 1 {
		return &ValidationError{Field: "combatant.max_hp", Reason: fmt.Sprintf("%s: must be >= 1", c.ID)}
	}
	if c.CurrentHP < 0 || c.CurrentHP > c.MaxHP {
		return &ValidationError{Field: "combatant.current_hp", Reason: fmt.Sprintf("%s: must be 0-%d", c.ID, c.MaxHP)}
	}
	if c.TempHP < 0 {
		return &ValidationError{Field: "combatant.temp_hp", Reason: fmt.Sprintf("%s: must be >= 0", c.ID)}
	}
	s.Combatants[c.ID] = c.clone()
	s.Roster = append(s.Roster, c.ID)
	return nil
}

// AddCombatant adds a late joiner. It takes no turn until it rolls initiative.
//
// Postcondition: Returns ErrIllegalOperation once the encounter has ended.
func (o *Orchestrator) AddCombatant(s *State, c Combatant) (*State, error) {
	if s.Status == StatusEnded {
		return nil, illegal("cannot add %q: combat has ended", c.ID)
	}
	next := s.Clone()
	if err := next.addCombatant(&c); err != nil {
		return nil, err
	}
	o.logger.Debug("combatant joined", zap.String("encounter", s.ID), zap.String("combatant", c.ID))
	return next, nil
}

// RollInitiative rolls 1d20 + DexMod for one combatant and re-sorts the
// order. In an active encounter the current actor keeps the turn.
//
// Postcondition: Returns ErrIllegalOperation if the encounter has ended or
// the combatant already rolled.
func (o *Orchestrator) RollInitiative(s *State, id string) (*State, InitiativeEntry, error) {
	if s.Status == StatusEnded {
		return nil, InitiativeEntry{}, illegal("cannot roll initiative: combat has ended")
	}
	if _, ok := s.Combatants[id]; !ok {
		return nil, InitiativeEntry{}, unknownCombatant(id)
	}
	if s.HasRolled(id) {
		return nil, InitiativeEntry{}, illegal("%q has already rolled initiative", id)
	}
	next := s.Clone()
	entry := o.rollInitiative(next, id)
	return next, entry, nil
}

func (o *Orchestrator) rollInitiative(s *State, id string) InitiativeEntry {
	c := s.Combatants[id]
	roll := o.roller.Roll(dice.Expression{
		Raw:      fmt.Sprintf("1d20%+d", c.DexMod),
		Groups:   []dice.Term{{Count: 1, Sides: 20}},
		Modifier: c.DexMod,
	}, dice.RollOptions{})
	entry := InitiativeEntry{
		CombatantID: id,
		Initiative:  roll.Total(),
		Tiebreak:    c.DexMod,
		Roll:        roll,
		Seq:         indexOfString(s.Roster, id),
	}

	var currentID string
	if s.Status == StatusActive {
		currentID = s.Order[s.TurnIndex].CombatantID
	}
	s.Order = append(s.Order, entry)
	sortOrder(s.Order)
	if currentID != "" {
		s.TurnIndex = indexOf(s.Order, currentID)
	}
	o.logger.Debug("initiative rolled",
		zap.String("encounter", s.ID),
		zap.String("combatant", id),
		zap.Stringer("roll", roll),
	)
	return entry
}

// RollAllInitiative rolls for every combatant that has not rolled yet. An
// encounter still in StatusInitiative then begins.
//
// Postcondition: Returns the new entries in roster order.
func (o *Orchestrator) RollAllInitiative(s *State) (*State, []InitiativeEntry, error) {
	if s.Status == StatusEnded {
		return nil, nil, illegal("cannot roll initiative: combat has ended")
	}
	next := s.Clone()
	var entries []InitiativeEntry
	for _, id := range next.Roster {
		if next.HasRolled(id) {
			continue
		}
		entries = append(entries, o.rollInitiative(next, id))
	}
	if next.Status == StatusInitiative {
		o.begin(next)
	}
	return next, entries, nil
}

// Begin moves an encounter from StatusInitiative to StatusActive at round 1.
//
// Postcondition: Returns ErrIllegalOperation unless every combatant has rolled.
func (o *Orchestrator) Begin(s *State) (*State, error) {
	if s.Status != StatusInitiative {
		return nil, illegal("cannot begin: status is %s", s.Status)
	}
	for _, id := range s.Roster {
		if !s.HasRolled(id) {
			return nil, illegal("cannot begin: %q has not rolled initiative", id)
		}
	}
	next := s.Clone()
	o.begin(next)
	return next, nil
}

// begin activates s with the first living combatant in order as the actor.
func (o *Orchestrator) begin(s *State) {
	s.Status = StatusActive
	s.Round = 1
	s.TurnIndex = 0
	for i, e := range s.Order {
		if !s.Combatants[e.CombatantID].IsDown() {
			s.TurnIndex = i
			break
		}
	}
	o.arrive(s)
	o.logger.Info("combat started",
		zap.String("encounter", s.ID),
		zap.String("first", s.Order[s.TurnIndex].CombatantID),
	)
}

// arrive resets the current actor's reactions and ticks its timed conditions.
func (o *Orchestrator) arrive(s *State) []condition.Type {
	c := s.Combatants[s.Order[s.TurnIndex].CombatantID]
	c.ReactionsUsed = 0
	return c.Conditions.Tick()
}

// NextTurn advances to the next living combatant. Wrapping past the end of
// the order starts a new round. If nobody is alive the turn lands on index 0
// after one full pass, with the round still advanced.
//
// Postcondition: Returns ErrIllegalOperation unless Status is StatusActive.
func (o *Orchestrator) NextTurn(s *State) (*State, TurnChange, error) {
	if s.Status != StatusActive {
		return nil, TurnChange{}, illegal("cannot advance turn: status is %s", s.Status)
	}
	next := s.Clone()
	n := len(next.Order)
	idx := next.TurnIndex
	var (
		wrapped bool
		found   bool
		skipped []string
	)
	for step := 0; step < n; step++ {
		idx++
		if idx >= n {
			idx = 0
			wrapped = true
		}
		id := next.Order[idx].CombatantID
		if !next.Combatants[id].IsDown() {
			found = true
			break
		}
		skipped = append(skipped, id)
	}
	if !found {
		idx = 0
	}
	if wrapped {
		next.Round++
	}
	next.TurnIndex = idx
	expired := o.arrive(next)

	change := TurnChange{
		Round:       next.Round,
		TurnIndex:   idx,
		CombatantID: next.Order[idx].CombatantID,
		NewRound:    wrapped,
		Skipped:     skipped,
		Expired:     expired,
	}
	o.logger.Debug("turn advanced",
		zap.String("encounter", s.ID),
		zap.Int("round", change.Round),
		zap.String("combatant", change.CombatantID),
		zap.Strings("skipped", skipped),
	)
	return next, change, nil
}

// CheckCombatEnd partitions living combatants into players and enemies.
// A wipe is a normal result value, never an error.
func (o *Orchestrator) CheckCombatEnd(s *State) EndResult {
	return checkEnd(s)
}

func checkEnd(s *State) EndResult {
	var players, enemies int
	for _, c := range s.Combatants {
		if c.IsDown() {
			continue
		}
		if c.IsPlayer() {
			players++
		} else {
			enemies++
		}
	}
	switch {
	case players == 0 && enemies == 0:
		return EndResult{Ended: true, Winner: WinnerNone}
	case enemies == 0:
		return EndResult{Ended: true, Winner: WinnerPlayers}
	case players == 0:
		return EndResult{Ended: true, Winner: WinnerEnemies}
	default:
		return EndResult{}
	}
}

// detectEnd ends an active encounter when one faction has no living members.
func (o *Orchestrator) detectEnd(s *State) EndResult {
	res := checkEnd(s)
	if res.Ended && s.Status == StatusActive {
		s.Status = StatusEnded
		s.Winner = res.Winner
		o.logger.Info("combat ended",
			zap.String("encounter", s.ID),
			zap.String("winner", string(res.Winner)),
			zap.Int("round", s.Round),
		)
	}
	return res
}

// EndCombat forces the encounter to StatusEnded from any status. The winner
// is recorded when one faction has already fallen.
func (o *Orchestrator) EndCombat(s *State) *State {
	next := s.Clone()
	if next.Status != StatusEnded {
		if res := checkEnd(next); res.Ended && next.Winner == "" {
			next.Winner = res.Winner
		}
		next.Status = StatusEnded
		next.record(TurnRecord{Action: ActionEndCombat, Success: true, Summary: "combat ended"})
		o.logger.Info("combat ended by override",
			zap.String("encounter", s.ID),
			zap.Int("round", s.Round),
		)
	}
	return next
}

// Current returns the combatant whose turn it is.
func (o *Orchestrator) Current(s *State) (*Combatant, bool) {
	return s.Current()
}

func indexOfString(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
