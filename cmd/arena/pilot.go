package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/arena"
	"github.com/udisondev/riftborn/internal/model"
)

const (
	// engageRange — дистанция, на которой пилот перестаёт сближаться с боссом.
	engageRange = 90.0
	// retreatHealth — доля здоровья, ниже которой пилот отскакивает от босса.
	retreatHealth = 0.35
)

// pilot plays the character from id: every interval it reads a snapshot and
// submits the next inputs. Returns nil once ctx is done or the fight is decided.
func pilot(ctx context.Context, s *arena.Session, id uuid.UUID, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap := s.Snapshot()
		if snap.Outcome != arena.OutcomeRunning {
			return nil
		}

		for _, in := range nextInputs(snap, id) {
			err := s.Submit(in)
			switch {
			case err == nil:
			case errors.Is(err, arena.ErrSessionClosed):
				return nil
			case errors.Is(err, arena.ErrInputQueueFull):
				slog.Warn("pilot input dropped", "kind", in.Kind, "error", err)
			default:
				return err
			}
		}
	}
}

// nextInputs decides one round of commands from the arena state: face the
// boss, close the distance, retreat with a dash when hurt, fire the first
// ready skill and attack.
func nextInputs(snap arena.Snapshot, id uuid.UUID) []arena.Input {
	me, ok := findCharacter(snap, id)
	if !ok || me.Dead {
		return nil
	}

	toBoss := snap.Boss.Position.Sub(me.Position)
	out := []arena.Input{arena.Aim(id, toBoss.X, toBoss.Y)}

	if me.MaxHealth > 0 && me.Health/me.MaxHealth < retreatHealth && me.State == model.MovementIdle {
		out = append(out, arena.Dash(id, -toBoss.X, -toBoss.Y))
	}

	if toBoss.Len() > engageRange {
		out = append(out, arena.Move(id, toBoss.X, toBoss.Y))
	} else {
		out = append(out, arena.Move(id, 0, 0))
	}

	for i, progress := range me.Cooldowns {
		if progress >= 1 {
			out = append(out, arena.Skill(id, i))
			break
		}
	}

	return append(out, arena.Attack(id))
}

func findCharacter(snap arena.Snapshot, id uuid.UUID) (model.Snapshot, bool) {
	for _, c := range snap.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return model.Snapshot{}, false
}
