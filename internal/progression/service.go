package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/data"
)

// Service validates talent purchases against the catalog and hands
// characters their loadout. Talent effects themselves are applied by the
// combat model; this layer owns currency, ownership and prerequisites.
type Service struct {
	repo           Repository
	startingShards int
	shardsPerRun   int
}

// NewService creates a Service over repo.
func NewService(repo Repository, cfg config.Progression) *Service {
	return &Service{
		repo:           repo,
		startingShards: cfg.StartingShards,
		shardsPerRun:   cfg.ShardsPerRun,
	}
}

// CreateSave opens a new save for class with the starting shard balance.
func (s *Service) CreateSave(ctx context.Context, class data.Class) (*Save, error) {
	if !class.IsValid() {
		return nil, fmt.Errorf("creating save: unknown class %q", class)
	}
	save := &Save{
		ID:     uuid.New(),
		Class:  class,
		Shards: s.startingShards,
	}
	if err := s.repo.CreateSave(ctx, save); err != nil {
		return nil, fmt.Errorf("creating save: %w", err)
	}
	slog.Info("save created", "save", save.ID, "class", class, "shards", save.Shards)
	return save, nil
}

// Save returns the save by id.
func (s *Service) Save(ctx context.Context, id uuid.UUID) (*Save, error) {
	return s.repo.LoadSave(ctx, id)
}

// Purchase buys talentID for the save.
//
// Rejections, in check order: ErrUnknownTalent, ErrClassMismatch,
// ErrAlreadyOwned, ErrPrerequisiteMissing (tier N requires tier N-1 of the
// same branch), ErrInsufficientShards. Returns the updated save.
func (s *Service) Purchase(ctx context.Context, id uuid.UUID, talentID data.TalentID) (*Save, error) {
	t := data.GetTalent(talentID)
	if t == nil {
		return nil, fmt.Errorf("purchasing %q: %w", talentID, ErrUnknownTalent)
	}

	save, err := s.repo.LoadSave(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPurchase(save, t); err != nil {
		return nil, fmt.Errorf("purchasing %s for save %s: %w", talentID, id, err)
	}

	if err := s.repo.AddTalent(ctx, id, t.ID, t.Cost); err != nil {
		return nil, fmt.Errorf("purchasing %s for save %s: %w", talentID, id, err)
	}

	slog.Info("talent purchased", "save", id, "talent", t.ID, "cost", t.Cost)
	return s.repo.LoadSave(ctx, id)
}

func checkPurchase(save *Save, t *data.Talent) error {
	if t.Class != save.Class {
		return fmt.Errorf("%s talent on %s save: %w", t.Class, save.Class, ErrClassMismatch)
	}
	if save.Owns(t.ID) {
		return ErrAlreadyOwned
	}
	if pre, ok := t.Prerequisite(); ok && !save.Owns(pre) {
		return fmt.Errorf("requires %s: %w", pre, ErrPrerequisiteMissing)
	}
	if save.Shards < t.Cost {
		return fmt.Errorf("cost %d, have %d: %w", t.Cost, save.Shards, ErrInsufficientShards)
	}
	return nil
}

// Available lists the talents the save could buy next if it had the shards:
// same class, not owned, prerequisite owned. Ordered by branch, then tier.
func (s *Service) Available(ctx context.Context, id uuid.UUID) ([]*data.Talent, error) {
	save, err := s.repo.LoadSave(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []*data.Talent
	for _, t := range data.TalentsForClass(save.Class) {
		if save.Owns(t.ID) {
			continue
		}
		if pre, ok := t.Prerequisite(); ok && !save.Owns(pre) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Loadout returns the save's talents ordered so that every prerequisite
// precedes its dependents, ready for model.WithTalents.
func (s *Service) Loadout(ctx context.Context, id uuid.UUID) ([]*data.Talent, error) {
	save, err := s.repo.LoadSave(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*data.Talent, 0, len(save.Talents))
	for _, tid := range save.Talents {
		t := data.GetTalent(tid)
		if t == nil {
			slog.Warn("save references unknown talent, skipping", "save", id, "talent", tid)
			continue
		}
		out = append(out, t)
	}
	data.SortTalents(out)
	return out, nil
}

// RecordRun credits a finished run: crits landed plus the per-run shard reward.
func (s *Service) RecordRun(ctx context.Context, id uuid.UUID, crits int) (*Save, error) {
	if crits < 0 {
		crits = 0
	}
	if err := s.repo.RecordRun(ctx, id, crits, s.shardsPerRun); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	slog.Info("run recorded", "save", id, "crits", crits, "shards", s.shardsPerRun)
	return s.repo.LoadSave(ctx, id)
}
