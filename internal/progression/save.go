package progression

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/data"
)

// Domain rejections. Check with errors.Is.
var (
	ErrSaveNotFound        = errors.New("save not found")
	ErrUnknownTalent       = errors.New("unknown talent")
	ErrClassMismatch       = errors.New("talent belongs to another class")
	ErrAlreadyOwned        = errors.New("talent already owned")
	ErrPrerequisiteMissing = errors.New("prerequisite talent not owned")
	ErrInsufficientShards  = errors.New("not enough shards")
)

// Save is the persistent meta-progression of one class slot: currency, crit counter
// and purchased talents in purchase order.
type Save struct {
	ID        uuid.UUID
	Class     data.Class
	Shards    int
	Crits     int
	Runs      int
	Talents   []data.TalentID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owns reports whether the save has purchased id.
func (s *Save) Owns(id data.TalentID) bool {
	return slices.Contains(s.Talents, id)
}

// Clone returns a deep copy.
func (s *Save) Clone() *Save {
	cp := *s
	cp.Talents = slices.Clone(s.Talents)
	return &cp
}

// Repository persists saves. Implementations must make AddTalent atomic:
// the ownership and balance checks and the write happen as one step.
type Repository interface {
	CreateSave(ctx context.Context, s *Save) error
	// LoadSave returns ErrSaveNotFound for an unknown id.
	LoadSave(ctx context.Context, id uuid.UUID) (*Save, error)
	// AddTalent deducts cost and records ownership.
	// Returns ErrAlreadyOwned or ErrInsufficientShards without writing.
	AddTalent(ctx context.Context, id uuid.UUID, talent data.TalentID, cost int) error
	// RecordRun adds crits and shards and increments the run counter.
	RecordRun(ctx context.Context, id uuid.UUID, crits, shards int) error
}
