package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/progression"
)

// FlakyRepository оборачивает progression.Repository и возвращает ErrSimulated
// для операций, помеченных через FailOn.
type FlakyRepository struct {
	progression.Repository

	mu    sync.Mutex
	fail  map[string]bool
	calls map[string]int
}

// Operation names accepted by FailOn and Calls.
const (
	OpCreateSave = "CreateSave"
	OpLoadSave   = "LoadSave"
	OpAddTalent  = "AddTalent"
	OpRecordRun  = "RecordRun"
)

// NewFlakyRepository wraps an in-memory repository.
func NewFlakyRepository() *FlakyRepository {
	return &FlakyRepository{
		Repository: progression.NewMemoryRepository(),
		fail:       make(map[string]bool),
		calls:      make(map[string]int),
	}
}

// FailOn arms ErrSimulated for op.
func (r *FlakyRepository) FailOn(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[op] = true
}

// Calls returns how many times op was invoked, failed calls included.
func (r *FlakyRepository) Calls(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *FlakyRepository) check(op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[op]++
	if r.fail[op] {
		return ErrSimulated
	}
	return nil
}

func (r *FlakyRepository) CreateSave(ctx context.Context, s *progression.Save) error {
	if err := r.check(OpCreateSave); err != nil {
		return err
	}
	return r.Repository.CreateSave(ctx, s)
}

func (r *FlakyRepository) LoadSave(ctx context.Context, id uuid.UUID) (*progression.Save, error) {
	if err := r.check(OpLoadSave); err != nil {
		return nil, err
	}
	return r.Repository.LoadSave(ctx, id)
}

func (r *FlakyRepository) AddTalent(ctx context.Context, id uuid.UUID, talent data.TalentID, cost int) error {
	if err := r.check(OpAddTalent); err != nil {
		return err
	}
	return r.Repository.AddTalent(ctx, id, talent, cost)
}

func (r *FlakyRepository) RecordRun(ctx context.Context, id uuid.UUID, crits, shards int) error {
	if err := r.check(OpRecordRun); err != nil {
		return err
	}
	return r.Repository.RecordRun(ctx, id, crits, shards)
}
