package dice

// DamageType is one of the fixed 5e damage types.
type DamageType string

const (
	Acid        DamageType = "acid"
	Bludgeoning DamageType = "bludgeoning"
	Cold        DamageType = "cold"
	Fire        DamageType = "fire"
	Force       DamageType = "force"
	Lightning   DamageType = "lightning"
	Necrotic    DamageType = "necrotic"
	Piercing    DamageType = "piercing"
	Poison      DamageType = "poison"
	Psychic     DamageType = "psychic"
	Radiant     DamageType = "radiant"
	Slashing    DamageType = "slashing"
	Thunder     DamageType = "thunder"
)

var damageTypes = map[DamageType]struct{}{
	Acid: {}, Bludgeoning: {}, Cold: {}, Fire: {}, Force: {}, Lightning: {}, Necrotic: {},
	Piercing: {}, Poison: {}, Psychic: {}, Radiant: {}, Slashing: {}, Thunder: {},
}

// Valid reports whether t is one of the known damage types.
func (t DamageType) Valid() bool {
	_, ok := damageTypes[t]
	return ok
}
