package combat

import (
	"sort"
)

// sortOrder orders entries by initiative descending, then tiebreak
// descending, then roster insertion order.
func sortOrder(order []InitiativeEntry) {
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Initiative != b.Initiative {
			return a.Initiative > b.Initiative
		}
		if a.Tiebreak != b.Tiebreak {
			return a.Tiebreak > b.Tiebreak
		}
		return a.Seq < b.Seq
	})
}

// indexOf returns the position of id in order, or -1.
func indexOf(order []InitiativeEntry, id string) int {
	for i, e := range order {
		if e.CombatantID == id {
			return i
		}
	}
	return -1
}
