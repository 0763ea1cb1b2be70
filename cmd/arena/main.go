package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/riftborn/internal/ai"
	"github.com/udisondev/riftborn/internal/arena"
	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/model"
	"github.com/udisondev/riftborn/internal/progression"
)

// pilotInterval is how often the scripted player reconsiders its inputs.
const pilotInterval = 150 * time.Millisecond

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Config first: it carries the log level
	cfg, err := config.LoadArena(config.Path())
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}

	logLevel := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("riftborn arena starting",
		"log_level", cfg.LogLevel,
		"frame_interval", cfg.FrameInterval,
		"session_duration", cfg.SessionDuration,
		"progression", cfg.Progression.Backend)

	if cfg.ArchetypeOverrides != "" {
		if err := data.LoadArchetypeOverrides(cfg.ArchetypeOverrides); err != nil {
			return fmt.Errorf("loading archetype overrides: %w", err)
		}
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := progression.NewService(repo, cfg.Progression)

	save, err := prepareSave(ctx, svc, cfg.Demo)
	if err != nil {
		return err
	}
	loadout, err := svc.Loadout(ctx, save.ID)
	if err != nil {
		return fmt.Errorf("loading talents: %w", err)
	}

	session := arena.NewSession(cfg)
	def := data.GetArchetype(save.Class)
	hero, err := session.AddCharacter(def, loadout,
		model.WithName(def.Name),
		model.WithHooks(presentationHooks(def.Name)),
	)
	if err != nil {
		return fmt.Errorf("adding character: %w", err)
	}

	slog.Info("character ready",
		"class", save.Class,
		"talents", len(loadout),
		"max_health", hero.Stats().MaxHealth(),
		"max_stamina", hero.Stats().MaxStamina(),
		"damage_reduction", hero.Stats().DamageReduction())

	g, gctx := errgroup.WithContext(ctx)
	fightCtx, stopFight := context.WithCancel(gctx)
	defer stopFight()

	g.Go(func() error {
		defer stopFight()
		if err := session.Run(fightCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("arena session: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return pilot(fightCtx, session, hero.ID(), pilotInterval)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("arena error: %w", err)
	}

	snap := session.Snapshot()
	crits := session.Close()

	// The run is credited even after a signal.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	updated, err := svc.RecordRun(recordCtx, save.ID, crits[hero.ID()])
	if err != nil {
		return err
	}

	slog.Info("arena finished",
		"outcome", snap.Outcome,
		"clock", snap.Clock,
		"frames", snap.Frames,
		"boss_health", snap.Boss.Health,
		"save", updated.ID,
		"shards", updated.Shards,
		"total_crits", updated.Crits,
		"runs", updated.Runs)
	return nil
}

// presentationHooks logs what a renderer would draw.
func presentationHooks(name string) model.Hooks {
	return model.Hooks{
		OnCrit: func(dmg float64) {
			slog.Info("critical hit", "character", name, "damage", dmg)
		},
		OnStealth: func(active bool) {
			slog.Debug("stealth", "character", name, "active", active)
		},
		OnEnrage: func(active bool) {
			slog.Info("enrage", "character", name, "active", active)
		},
		OnShieldDown: func() {
			slog.Debug("mana shield down", "character", name)
		},
		OnShieldOverflow: func(lost float64) {
			slog.Info("mana shield broke", "character", name, "health_lost", lost)
		},
		OnDeath: func() {
			slog.Info("character died", "character", name)
		},
	}
}
