package rules

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/encounter/internal/game/character"
)

// xpThresholds[i] is the cumulative XP needed to reach level i+1.
var xpThresholds = [character.MaxLevel]int{
	0, 300, 900, 2700, 6500, 14000, 23000, 34000, 48000, 64000,
	85000, 100000, 120000, 140000, 165000, 195000, 225000, 265000, 305000, 355000,
}

// LevelFromXP returns the highest level whose threshold xp meets.
//
// Postcondition: Result is in [1, 20].
func LevelFromXP(xp int) int {
	level := 1
	for i, threshold := range xpThresholds {
		if xp >= threshold {
			level = i + 1
		}
	}
	return level
}

// XPForNextLevel returns the cumulative XP at which level+1 is reached, or 0
// at level 20.
func XPForNextLevel(level int) int {
	level = max(level, 1)
	if level >= character.MaxLevel {
		return 0
	}
	return xpThresholds[level]
}

// StartingHitPoints returns the level-1 hit points: the maximum face of the
// hit die plus the CON modifier.
func StartingHitPoints(hitDieSize, conModifier int) int {
	return hitDieSize + conModifier
}

// HitPointsOnLevelUp returns the hit points gained for one level. Without a
// roll the fixed average ceil(die/2)+1 is used.
//
// Postcondition: Result is >= 1.
func HitPointsOnLevelUp(hitDieSize, conModifier int, rolled *int) int {
	base := (hitDieSize+1)/2 + 1
	if rolled != nil {
		base = *rolled
	}
	return max(1, base+conModifier)
}

// MaxHitPoints returns the maximum hit points of a single-class character at
// level, taking the average on every level after the first.
func MaxHitPoints(hitDieSize, conModifier, level int) int {
	hp := StartingHitPoints(hitDieSize, conModifier)
	for l := 2; l <= level; l++ {
		hp += HitPointsOnLevelUp(hitDieSize, conModifier, nil)
	}
	return hp
}

// ErrMaxLevel is returned when advancing a level 20 character.
var ErrMaxLevel = errors.New("rules: character is already at maximum level")

// AdvanceLevel raises c one level: it adds the hit point gain to MaxHP and
// CurrentHP and grants one more hit die of the class die size. rolled, when
// non-nil, is the face rolled on the hit die.
//
// Postcondition: Returns the hit points gained; on error c is unchanged.
func AdvanceLevel(c *character.Character, rolled *int) (int, error) {
	if c.Level >= character.MaxLevel {
		return 0, ErrMaxLevel
	}
	if !c.HitDie.Valid() {
		return 0, &character.FieldError{Field: "hit_die", Value: int(c.HitDie), Reason: "must be d6, d8, d10 or d12"}
	}
	if rolled != nil && (*rolled < 1 || *rolled > c.HitDie.Sides()) {
		return 0, fmt.Errorf("rules: rolled hit die %d outside 1-%d", *rolled, c.HitDie.Sides())
	}
	gain := HitPointsOnLevelUp(c.HitDie.Sides(), AbilityModifier(c, character.Constitution), rolled)
	c.Level++
	c.MaxHP += gain
	c.CurrentHP += gain
	if c.HitDice == nil {
		c.HitDice = character.HitDice{}
	}
	c.HitDice.Grant(c.HitDie, 1)
	return gain, nil
}
