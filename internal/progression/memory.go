package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/data"
)

// MemoryRepository is an in-process Repository. Safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	saves map[uuid.UUID]*Save
	now   func() time.Time
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		saves: make(map[uuid.UUID]*Save),
		now:   time.Now,
	}
}

func (r *MemoryRepository) CreateSave(_ context.Context, s *Save) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.saves[s.ID]; exists {
		return fmt.Errorf("save %s already exists", s.ID)
	}
	cp := s.Clone()
	now := r.now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	r.saves[s.ID] = cp
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

func (r *MemoryRepository) LoadSave(_ context.Context, id uuid.UUID) (*Save, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.saves[id]
	if !ok {
		return nil, fmt.Errorf("loading save %s: %w", id, ErrSaveNotFound)
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) AddTalent(_ context.Context, id uuid.UUID, talent data.TalentID, cost int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.saves[id]
	if !ok {
		return fmt.Errorf("adding talent to save %s: %w", id, ErrSaveNotFound)
	}
	if s.Owns(talent) {
		return fmt.Errorf("adding talent %s: %w", talent, ErrAlreadyOwned)
	}
	if s.Shards < cost {
		return fmt.Errorf("adding talent %s (cost %d, have %d): %w", talent, cost, s.Shards, ErrInsufficientShards)
	}
	s.Shards -= cost
	s.Talents = append(s.Talents, talent)
	s.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepository) RecordRun(_ context.Context, id uuid.UUID, crits, shards int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.saves[id]
	if !ok {
		return fmt.Errorf("recording run for save %s: %w", id, ErrSaveNotFound)
	}
	s.Crits += crits
	s.Shards += shards
	s.Runs++
	s.UpdatedAt = r.now()
	return nil
}
