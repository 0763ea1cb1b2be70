package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/progression"
)

// ProgressionRepository реализует progression.Repository для PostgreSQL.
type ProgressionRepository struct {
	pool *pgxpool.Pool
}

// NewProgressionRepository создаёт новый ProgressionRepository.
func NewProgressionRepository(pool *pgxpool.Pool) *ProgressionRepository {
	return &ProgressionRepository{pool: pool}
}

// CreateSave вставляет новое сохранение. CreatedAt/UpdatedAt заполняются из БД.
func (r *ProgressionRepository) CreateSave(ctx context.Context, s *progression.Save) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO progression_saves (id, class, shards, crits, runs)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		s.ID, string(s.Class), s.Shards, s.Crits, s.Runs,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting save %s: %w", s.ID, err)
	}
	return nil
}

// LoadSave загружает сохранение вместе с талантами в порядке покупки.
func (r *ProgressionRepository) LoadSave(ctx context.Context, id uuid.UUID) (*progression.Save, error) {
	var (
		s     progression.Save
		class string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, class, shards, crits, runs, created_at, updated_at
		 FROM progression_saves WHERE id = $1`, id,
	).Scan(&s.ID, &class, &s.Shards, &s.Crits, &s.Runs, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading save %s: %w", id, progression.ErrSaveNotFound)
		}
		return nil, fmt.Errorf("querying save %s: %w", id, err)
	}
	s.Class = data.Class(class)

	rows, err := r.pool.Query(ctx,
		`SELECT talent_id FROM save_talents WHERE save_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying talents for save %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tid string
		if err := rows.Scan(&tid); err != nil {
			return nil, fmt.Errorf("scanning talent row: %w", err)
		}
		s.Talents = append(s.Talents, data.TalentID(tid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating talent rows: %w", err)
	}

	return &s, nil
}

// AddTalent списывает стоимость и записывает талант в одной транзакции.
// Строка сохранения блокируется (FOR UPDATE), так что параллельные покупки
// не уводят баланс в минус.
func (r *ProgressionRepository) AddTalent(ctx context.Context, id uuid.UUID, talent data.TalentID, cost int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "save", id, "error", err)
		}
	}()

	var shards int
	err = tx.QueryRow(ctx,
		`SELECT shards FROM progression_saves WHERE id = $1 FOR UPDATE`, id,
	).Scan(&shards)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("adding talent to save %s: %w", id, progression.ErrSaveNotFound)
		}
		return fmt.Errorf("locking save %s: %w", id, err)
	}

	var owned bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM save_talents WHERE save_id = $1 AND talent_id = $2)`,
		id, string(talent),
	).Scan(&owned); err != nil {
		return fmt.Errorf("checking ownership of %s: %w", talent, err)
	}
	if owned {
		return fmt.Errorf("adding talent %s: %w", talent, progression.ErrAlreadyOwned)
	}
	if shards < cost {
		return fmt.Errorf("adding talent %s (cost %d, have %d): %w", talent, cost, shards, progression.ErrInsufficientShards)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE progression_saves SET shards = shards - $2, updated_at = now() WHERE id = $1`,
		id, cost,
	); err != nil {
		return fmt.Errorf("deducting shards for save %s: %w", id, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO save_talents (save_id, talent_id, cost) VALUES ($1, $2, $3)`,
		id, string(talent), cost,
	); err != nil {
		return fmt.Errorf("inserting talent %s: %w", talent, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing talent purchase: %w", err)
	}
	return nil
}

// RecordRun начисляет криты и осколки за завершённый забег.
func (r *ProgressionRepository) RecordRun(ctx context.Context, id uuid.UUID, crits, shards int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE progression_saves
		 SET crits = crits + $2, shards = shards + $3, runs = runs + 1, updated_at = now()
		 WHERE id = $1`,
		id, crits, shards,
	)
	if err != nil {
		return fmt.Errorf("recording run for save %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recording run for save %s: %w", id, progression.ErrSaveNotFound)
	}
	return nil
}
