package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/db"
	"github.com/udisondev/riftborn/internal/progression"
)

// openRepository picks the progression backend. The returned func releases it.
func openRepository(ctx context.Context, cfg config.Arena) (progression.Repository, func(), error) {
	switch cfg.Progression.Backend {
	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		return db.NewProgressionRepository(database.Pool()), database.Close, nil

	case config.BackendMemory:
		slog.Info("using in-memory progression, saves are lost on exit")
		return progression.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown progression backend %q", cfg.Progression.Backend)
	}
}

// prepareSave loads demo.SaveID or creates a fresh save, then buys the
// configured talents. Purchase rejections are logged and skipped; storage
// errors abort.
func prepareSave(ctx context.Context, svc *progression.Service, demo config.Demo) (*progression.Save, error) {
	save, err := openSave(ctx, svc, demo)
	if err != nil {
		return nil, err
	}

	for _, raw := range demo.Talents {
		id := data.TalentID(raw)
		updated, err := svc.Purchase(ctx, save.ID, id)
		switch {
		case err == nil:
			save = updated
			slog.Info("talent purchased", "talent", id, "shards_left", save.Shards)
		case errors.Is(err, progression.ErrAlreadyOwned):
			slog.Debug("talent already owned", "talent", id)
		case isRejection(err):
			slog.Warn("talent purchase rejected", "talent", id, "error", err)
		default:
			return nil, fmt.Errorf("purchasing talents: %w", err)
		}
	}
	return save, nil
}

func openSave(ctx context.Context, svc *progression.Service, demo config.Demo) (*progression.Save, error) {
	if demo.SaveID == "" {
		class, err := data.ParseClass(demo.Class)
		if err != nil {
			return nil, err
		}
		return svc.CreateSave(ctx, class)
	}

	id, err := uuid.Parse(demo.SaveID)
	if err != nil {
		return nil, fmt.Errorf("parsing demo save_id: %w", err)
	}
	save, err := svc.Save(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading save %s: %w", id, err)
	}
	if demo.Class != "" && string(save.Class) != demo.Class {
		slog.Warn("demo class ignored, save has its own class", "demo_class", demo.Class, "save_class", save.Class)
	}
	slog.Info("save loaded", "save", save.ID, "class", save.Class, "shards", save.Shards, "runs", save.Runs)
	return save, nil
}

func isRejection(err error) bool {
	return errors.Is(err, progression.ErrUnknownTalent) ||
		errors.Is(err, progression.ErrClassMismatch) ||
		errors.Is(err, progression.ErrPrerequisiteMissing) ||
		errors.Is(err, progression.ErrInsufficientShards)
}
