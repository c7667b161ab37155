// Command skirmish loads a party and a monster group from content files and
// plays an automated encounter between them, logging every turn.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/encounter/internal/config"
	"github.com/cory-johannsen/encounter/internal/game/ai"
	"github.com/cory-johannsen/encounter/internal/game/combat"
	"github.com/cory-johannsen/encounter/internal/game/dice"
	"github.com/cory-johannsen/encounter/internal/game/inventory"
	"github.com/cory-johannsen/encounter/internal/game/npc"
	"github.com/cory-johannsen/encounter/internal/game/roster"
	"github.com/cory-johannsen/encounter/internal/observability"
	"github.com/cory-johannsen/encounter/internal/skirmish"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "config.yaml", "path to configuration file")
	encounterID := flag.String("id", "", "encounter ID; a random UUID when empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := dice.NewCryptoSource()
	if cfg.Dice.Seeded() {
		src = dice.NewSeededSource(cfg.Dice.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	reg, err := inventory.LoadRegistry(cfg.Content.ArmorDir, cfg.Content.WeaponsDir)
	if err != nil {
		logger.Fatal("loading equipment", zap.Error(err))
	}
	party, err := roster.Load(cfg.Content.PartyFile, reg)
	if err != nil {
		logger.Fatal("loading party", zap.Error(err))
	}
	bestiary, err := npc.LoadBestiary(cfg.Content.MonstersDir)
	if err != nil {
		logger.Fatal("loading bestiary", zap.Error(err))
	}
	tactics, err := ai.LoadRegistry(cfg.Content.TacticsDir)
	if err != nil {
		logger.Fatal("loading tactics", zap.Error(err))
	}
	partyPlanner, ok := tactics.PlannerFor(cfg.Encounter.PartyTactics)
	if !ok {
		logger.Fatal("unknown party tactics", zap.String("domain", cfg.Encounter.PartyTactics))
	}
	monsterPlanner, ok := tactics.PlannerFor(cfg.Encounter.MonsterTactics)
	if !ok {
		logger.Fatal("unknown monster tactics", zap.String("domain", cfg.Encounter.MonsterTactics))
	}
	logger.Info("content loaded",
		zap.Int("party", len(party)),
		zap.Strings("templates", bestiary.IDs()),
		zap.Duration("elapsed", time.Since(start)),
	)

	var hpRoller *dice.Roller
	if cfg.Encounter.RollHitPoints {
		hpRoller = roller
	}
	lineup, err := skirmish.Assemble(party, bestiary, cfg.Encounter.Monsters, hpRoller)
	if err != nil {
		logger.Fatal("assembling encounter", zap.Error(err))
	}

	orch := combat.NewOrchestrator(roller, logger)
	combatCfg := combat.Config{
		ID:                 *encounterID,
		AutoRollInitiative: cfg.Combat.AutoRollInitiative,
		CriticalRange:      cfg.Combat.CriticalRange,
	}
	if cfg.Combat.HasGrid() {
		combatCfg.Grid = &combat.Grid{Width: cfg.Combat.GridWidth, Height: cfg.Combat.GridHeight}
	}
	state, err := orch.InitiateCombat(lineup.Combatants, combatCfg)
	if err != nil {
		logger.Fatal("initiating combat", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := skirmish.NewRunner(orch, lineup.Arsenal, partyPlanner, monsterPlanner, cfg.Combat.MaxRounds, logger)
	res, err := runner.Run(ctx, state)
	if res.State != nil {
		observability.LogHistory(logger, res.State.History)
	}
	if err != nil {
		logger.Fatal("running skirmish", zap.Error(err))
	}

	logger.Info("skirmish complete",
		zap.String("encounter", res.State.ID),
		zap.String("winner", string(res.State.Winner)),
		zap.Int("rounds", res.State.Round),
		zap.Int("attacks", len(res.Attacks)),
		zap.Bool("timed_out", res.TimedOut),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, id := range res.State.Roster {
		c := res.State.Combatants[id]
		fmt.Printf("%-20s %3d/%-3d %s\n", c.Name, c.CurrentHP, c.MaxHP, standing(c))
	}
}

func standing(c *combat.Combatant) string {
	if c.IsDown() {
		return "down"
	}
	return "standing"
}
