package inventory_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/encounter/internal/game/inventory"
)

func contentDir(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "..", "content"}, parts...)...)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterWeapon(longsword()))
	assert.Error(t, reg.RegisterWeapon(longsword()))

	a := &inventory.ArmorDef{ID: "leather", Name: "Leather", Category: inventory.ArmorLight, BaseAC: 11}
	require.NoError(t, reg.RegisterArmor(a))
	assert.Error(t, reg.RegisterArmor(a))
}

func TestRegistry_Lookup(t *testing.T) {
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterWeapon(longsword()))
	w, ok := reg.Weapon("longsword")
	require.True(t, ok)
	assert.Equal(t, "Longsword", w.Name)
	_, ok = reg.Weapon("halberd")
	assert.False(t, ok)
	_, ok = reg.Armor("leather")
	assert.False(t, ok)
}

func TestLoadRegistry_BundledContent(t *testing.T) {
	reg, err := inventory.LoadRegistry(contentDir("armor"), contentDir("weapons"))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AllArmors())
	assert.NotEmpty(t, reg.AllWeapons())

	ls, ok := reg.Weapon("longsword")
	require.True(t, ok)
	assert.Equal(t, inventory.MartialMelee, ls.Category)
	assert.Equal(t, "1d8", ls.DamageDice)

	all := reg.AllWeapons()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg, err := inventory.LoadRegistry(contentDir("armor"), contentDir("weapons"))
	require.NoError(t, err)

	eq, err := reg.Resolve(inventory.Loadout{Armor: "chain_mail", Shield: "shield", Weapons: []string{"longsword", "dagger"}})
	require.NoError(t, err)
	require.NotNil(t, eq.Armor)
	require.NotNil(t, eq.Shield)
	assert.Equal(t, "chain_mail", eq.Armor.ID)
	assert.Len(t, eq.Weapons, 2)
	d, ok := eq.Weapon("dagger")
	require.True(t, ok)
	assert.Equal(t, "Dagger", d.Name)
	_, ok = eq.Weapon("rapier")
	assert.False(t, ok)
}

func TestRegistry_Resolve_Errors(t *testing.T) {
	reg, err := inventory.LoadRegistry(contentDir("armor"), contentDir("weapons"))
	require.NoError(t, err)

	_, err = reg.Resolve(inventory.Loadout{Armor: "shield", Shield: "leather", Weapons: []string{"halberd"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, `armor "shield" is a shield`)
	assert.ErrorContains(t, err, `shield "leather" is not a shield`)
	assert.ErrorContains(t, err, `weapon "halberd" not found`)
}

func TestRegistry_Resolve_Empty(t *testing.T) {
	eq, err := inventory.NewRegistry().Resolve(inventory.Loadout{})
	require.NoError(t, err)
	assert.Nil(t, eq.Armor)
	assert.Nil(t, eq.Shield)
	assert.Empty(t, eq.Weapons)
}
