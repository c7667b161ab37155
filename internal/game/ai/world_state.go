package ai

// CombatantState captures a combatant's tactical state at planning time.
type CombatantState struct {
	ID     string
	Name   string
	Player bool
	HP     int
	MaxHP  int
	AC     int
	Down   bool
	// X and Y are the grid square; valid only when Placed.
	X, Y   int
	Placed bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (c *CombatantState) HPPercent() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP) * 100
}

// Bloodied reports whether c is at half its hit points or less.
func (c *CombatantState) Bloodied() bool {
	return c.HP*2 <= c.MaxHP
}

// distance is the grid distance in squares with diagonals costing one.
func distance(a, b *CombatantState) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return max(dx, -dx, dy, -dy)
}

// WorldState is the snapshot passed to the planner for one acting combatant.
//
// Invariant: Self must not be nil and is also listed in Combatants.
type WorldState struct {
	Self  *CombatantState
	Round int
	// Combatants are in initiative order.
	Combatants []*CombatantState
}

// Enemies returns every standing combatant on the other side from Self.
//
// Postcondition: returned slice contains no downed combatants and no allies.
func (ws *WorldState) Enemies() []*CombatantState {
	var out []*CombatantState
	for _, c := range ws.Combatants {
		if !c.Down && c.Player != ws.Self.Player {
			out = append(out, c)
		}
	}
	return out
}

// Allies returns every standing combatant on Self's side, excluding Self.
func (ws *WorldState) Allies() []*CombatantState {
	var out []*CombatantState
	for _, c := range ws.Combatants {
		if !c.Down && c.ID != ws.Self.ID && c.Player == ws.Self.Player {
			out = append(out, c)
		}
	}
	return out
}

// NearestEnemy returns the closest standing enemy on the grid. Without grid
// positions the first enemy in initiative order is nearest.
//
// Postcondition: nil if no living enemies exist; ties go to initiative order.
func (ws *WorldState) NearestEnemy() *CombatantState {
	enemies := ws.Enemies()
	if len(enemies) == 0 {
		return nil
	}
	nearest := enemies[0]
	if !ws.Self.Placed {
		return nearest
	}
	for _, e := range enemies[1:] {
		if !e.Placed {
			continue
		}
		if !nearest.Placed || distance(ws.Self, e) < distance(ws.Self, nearest) {
			nearest = e
		}
	}
	return nearest
}

// WeakestEnemy returns the standing enemy with the lowest HP percentage.
//
// Postcondition: nil if no living enemies exist; ties go to initiative order.
func (ws *WorldState) WeakestEnemy() *CombatantState {
	enemies := ws.Enemies()
	if len(enemies) == 0 {
		return nil
	}
	weakest := enemies[0]
	for _, e := range enemies[1:] {
		if e.HPPercent() < weakest.HPPercent() {
			weakest = e
		}
	}
	return weakest
}

// ResolveTarget maps a target token to a combatant ID.
//
// Postcondition: "nearest_enemy", "weakest_enemy" and "self" resolve to IDs;
// the empty string is returned when no combatant matches or the token is
// unknown.
func (ws *WorldState) ResolveTarget(token string) string {
	var c *CombatantState
	switch token {
	case TargetNearestEnemy:
		c = ws.NearestEnemy()
	case TargetWeakestEnemy:
		c = ws.WeakestEnemy()
	case TargetSelf:
		c = ws.Self
	}
	if c == nil {
		return ""
	}
	return c.ID
}
