package condition

// Effects are the mechanical consequences of a condition, consumed by the
// combat engine.
type Effects struct {
	Incapacitated     bool
	CantTakeActions   bool
	CantTakeReactions bool
	CantMove          bool
	SpeedZero         bool
	SpeedHalved       bool
	CantSee           bool
	CantSpeak         bool

	AttacksHaveAdvantage          bool
	AttacksHaveDisadvantage       bool
	AbilityChecksHaveDisadvantage bool
	SavesHaveDisadvantage         bool
	DexSavesHaveDisadvantage      bool
	AutoFailStrengthSaves         bool
	AutoFailDexteritySaves        bool

	GrantsAdvantageToAttackers bool
	AttackersHaveDisadvantage  bool
	ResistsAllDamage           bool
	CantAttackSource           bool

	HitPointMaxHalved bool
	Dead              bool
}

// incapacitated is shared by every condition that includes incapacitated.
var incapacitated = Effects{Incapacitated: true, CantTakeActions: true, CantTakeReactions: true}

var effectsTable = [numTypes + 1]Effects{
	Blinded: {
		CantSee:                    true,
		AttacksHaveDisadvantage:    true,
		GrantsAdvantageToAttackers: true,
	},
	Charmed: {
		CantAttackSource: true,
	},
	Frightened: {
		AttacksHaveDisadvantage:       true,
		AbilityChecksHaveDisadvantage: true,
	},
	Grappled: {
		SpeedZero: true,
	},
	Incapacitated: incapacitated,
	Invisible: {
		AttacksHaveAdvantage:      true,
		AttackersHaveDisadvantage: true,
	},
	Paralyzed: incapacitated.Union(Effects{
		CantMove:                   true,
		SpeedZero:                  true,
		CantSpeak:                  true,
		AutoFailStrengthSaves:      true,
		AutoFailDexteritySaves:     true,
		GrantsAdvantageToAttackers: true,
	}),
	Petrified: incapacitated.Union(Effects{
		CantMove:                   true,
		SpeedZero:                  true,
		CantSpeak:                  true,
		AutoFailStrengthSaves:      true,
		AutoFailDexteritySaves:     true,
		GrantsAdvantageToAttackers: true,
		ResistsAllDamage:           true,
	}),
	Poisoned: {
		AttacksHaveDisadvantage:       true,
		AbilityChecksHaveDisadvantage: true,
	},
	Prone: {
		AttacksHaveDisadvantage:    true,
		GrantsAdvantageToAttackers: true,
	},
	Restrained: {
		SpeedZero:                  true,
		AttacksHaveDisadvantage:    true,
		DexSavesHaveDisadvantage:   true,
		GrantsAdvantageToAttackers: true,
	},
	Stunned: incapacitated.Union(Effects{
		CantMove:                   true,
		SpeedZero:                  true,
		AutoFailStrengthSaves:      true,
		AutoFailDexteritySaves:     true,
		GrantsAdvantageToAttackers: true,
	}),
	Unconscious: incapacitated.Union(Effects{
		CantMove:                   true,
		SpeedZero:                  true,
		CantSpeak:                  true,
		CantSee:                    true,
		AutoFailStrengthSaves:      true,
		AutoFailDexteritySaves:     true,
		GrantsAdvantageToAttackers: true,
	}),
	Exhaustion: {
		AbilityChecksHaveDisadvantage: true,
	},
}

// EffectsOf returns the fixed effects of condition t. Exhaustion reports its
// level-1 effects; use ExhaustionEffects for higher levels.
//
// Postcondition: Returns the zero Effects for an invalid t.
func EffectsOf(t Type) Effects {
	if !t.Valid() {
		return Effects{}
	}
	return effectsTable[t]
}

// ExhaustionEffects returns the cumulative effects of the given exhaustion level.
func ExhaustionEffects(level int) Effects {
	var e Effects
	if level >= 1 {
		e.AbilityChecksHaveDisadvantage = true
	}
	if level >= 2 {
		e.SpeedHalved = true
	}
	if level >= 3 {
		e.AttacksHaveDisadvantage = true
		e.SavesHaveDisadvantage = true
	}
	if level >= 4 {
		e.HitPointMaxHalved = true
	}
	if level >= 5 {
		e.SpeedZero = true
		e.CantMove = true
	}
	if level >= MaxExhaustion {
		e = e.Union(incapacitated)
		e.Dead = true
	}
	return e
}

// Union returns the field-wise OR of e and o.
func (e Effects) Union(o Effects) Effects {
	return Effects{
		Incapacitated:                 e.Incapacitated || o.Incapacitated,
		CantTakeActions:               e.CantTakeActions || o.CantTakeActions,
		CantTakeReactions:             e.CantTakeReactions || o.CantTakeReactions,
		CantMove:                      e.CantMove || o.CantMove,
		SpeedZero:                     e.SpeedZero || o.SpeedZero,
		SpeedHalved:                   e.SpeedHalved || o.SpeedHalved,
		CantSee:                       e.CantSee || o.CantSee,
		CantSpeak:                     e.CantSpeak || o.CantSpeak,
		AttacksHaveAdvantage:          e.AttacksHaveAdvantage || o.AttacksHaveAdvantage,
		AttacksHaveDisadvantage:       e.AttacksHaveDisadvantage || o.AttacksHaveDisadvantage,
		AbilityChecksHaveDisadvantage: e.AbilityChecksHaveDisadvantage || o.AbilityChecksHaveDisadvantage,
		SavesHaveDisadvantage:         e.SavesHaveDisadvantage || o.SavesHaveDisadvantage,
		DexSavesHaveDisadvantage:      e.DexSavesHaveDisadvantage || o.DexSavesHaveDisadvantage,
		AutoFailStrengthSaves:         e.AutoFailStrengthSaves || o.AutoFailStrengthSaves,
		AutoFailDexteritySaves:        e.AutoFailDexteritySaves || o.AutoFailDexteritySaves,
		GrantsAdvantageToAttackers:    e.GrantsAdvantageToAttackers || o.GrantsAdvantageToAttackers,
		AttackersHaveDisadvantage:     e.AttackersHaveDisadvantage || o.AttackersHaveDisadvantage,
		ResistsAllDamage:              e.ResistsAllDamage || o.ResistsAllDamage,
		CantAttackSource:              e.CantAttackSource || o.CantAttackSource,
		HitPointMaxHalved:             e.HitPointMaxHalved || o.HitPointMaxHalved,
		Dead:                          e.Dead || o.Dead,
	}
}
