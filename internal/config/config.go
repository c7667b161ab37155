// Package config provides Viper-based configuration loading for the encounter engine.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DiceConfig selects the randomness source.
type DiceConfig struct {
	// Source is "crypto" for unpredictable rolls or "seeded" for replayable ones.
	Source string `mapstructure:"source"`
	// Seed is the seed of the "seeded" source.
	Seed uint64 `mapstructure:"seed"`
}

// Seeded reports whether rolls come from the deterministic source.
func (d DiceConfig) Seeded() bool { return d.Source == "seeded" }

// CombatConfig holds encounter defaults.
type CombatConfig struct {
	// CriticalRange is the lowest natural d20 that scores a critical hit.
	CriticalRange      int  `mapstructure:"critical_range"`
	AutoRollInitiative bool `mapstructure:"auto_roll_initiative"`
	// GridWidth and GridHeight size the battlefield; 0 means no grid.
	GridWidth  int `mapstructure:"grid_width"`
	GridHeight int `mapstructure:"grid_height"`
	// MaxRounds stops an automated skirmish that has not resolved.
	MaxRounds int `mapstructure:"max_rounds"`
}

// HasGrid reports whether a battlefield size is configured.
func (c CombatConfig) HasGrid() bool { return c.GridWidth > 0 && c.GridHeight > 0 }

// ContentConfig locates the YAML content files.
type ContentConfig struct {
	ArmorDir    string `mapstructure:"armor_dir"`
	WeaponsDir  string `mapstructure:"weapons_dir"`
	MonstersDir string `mapstructure:"monsters_dir"`
	PartyFile   string `mapstructure:"party_file"`
	TacticsDir  string `mapstructure:"tactics_dir"`
}

// EncounterConfig names the monsters spawned against the party.
type EncounterConfig struct {
	// Monsters lists bestiary template IDs; repeat an ID to spawn several.
	Monsters []string `mapstructure:"monsters"`
	// RollHitPoints rolls each spawn's hit dice instead of using fixed hit points.
	RollHitPoints bool `mapstructure:"roll_hit_points"`
	// PartyTactics and MonsterTactics name the tactics domain each side plans with.
	PartyTactics   string `mapstructure:"party_tactics"`
	MonsterTactics string `mapstructure:"monster_tactics"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Content   ContentConfig   `mapstructure:"content"`
	Encounter EncounterConfig `mapstructure:"encounter"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEncounter(c.Encounter); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDice(d DiceConfig) error {
	validSources := map[string]bool{"crypto": true, "seeded": true}
	if !validSources[d.Source] {
		return fmt.Errorf("dice.source must be one of [crypto, seeded], got %q", d.Source)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.CriticalRange < 2 || c.CriticalRange > 20 {
		errs = append(errs, fmt.Sprintf("combat.critical_range must be 2-20, got %d", c.CriticalRange))
	}
	if c.GridWidth < 0 || c.GridHeight < 0 {
		errs = append(errs, "combat.grid_width and combat.grid_height must not be negative")
	}
	if c.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("combat.max_rounds must be >= 1, got %d", c.MaxRounds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ArmorDir == "" {
		errs = append(errs, "content.armor_dir must not be empty")
	}
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.MonstersDir == "" {
		errs = append(errs, "content.monsters_dir must not be empty")
	}
	if c.PartyFile == "" {
		errs = append(errs, "content.party_file must not be empty")
	}
	if c.TacticsDir == "" {
		errs = append(errs, "content.tactics_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEncounter(e EncounterConfig) error {
	var errs []string
	if len(e.Monsters) == 0 {
		errs = append(errs, "encounter.monsters must name at least one template")
	}
	for i, id := range e.Monsters {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Sprintf("encounter.monsters[%d] must not be empty", i))
		}
	}
	if e.PartyTactics == "" {
		errs = append(errs, "encounter.party_tactics must not be empty")
	}
	if e.MonsterTactics == "" {
		errs = append(errs, "encounter.monster_tactics must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ENCOUNTER_ prefix
	v.SetEnvPrefix("ENCOUNTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("dice.source", "crypto")
	v.SetDefault("dice.seed", 0)

	v.SetDefault("combat.critical_range", 20)
	v.SetDefault("combat.auto_roll_initiative", true)
	v.SetDefault("combat.grid_width", 0)
	v.SetDefault("combat.grid_height", 0)
	v.SetDefault("combat.max_rounds", 20)

	v.SetDefault("content.armor_dir", "content/armor")
	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.monsters_dir", "content/monsters")
	v.SetDefault("content.party_file", "content/party.yaml")
	v.SetDefault("content.tactics_dir", "content/tactics")

	v.SetDefault("encounter.monsters", []string{"goblin", "goblin"})
	v.SetDefault("encounter.roll_hit_points", false)
	v.SetDefault("encounter.party_tactics", "skirmisher")
	v.SetDefault("encounter.monster_tactics", "brute")
}
