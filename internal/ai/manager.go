package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TickManager holds the AI controllers of one arena and ticks them together.
// It owns no goroutine: the session loop calls TickAll once per frame, so
// controllers run on the same goroutine as the characters they touch.
type TickManager struct {
	controllers     sync.Map // map[uuid.UUID]Controller
	controllerCount atomic.Int32
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register registers and starts a controller.
func (m *TickManager) Register(id uuid.UUID, controller Controller) {
	if _, loaded := m.controllers.LoadOrStore(id, controller); loaded {
		slog.Warn("AI controller already registered", "id", id)
		return
	}
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered",
		"id", id,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(id uuid.UUID) {
	value, ok := m.controllers.LoadAndDelete(id)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	value.(Controller).Stop()
	slog.Debug("AI controller unregistered", "id", id)
}

// TickAll ticks every registered controller.
func (m *TickManager) TickAll(now, delta time.Duration) {
	count := 0
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(now, delta)
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count, "at", now)
	}
}

// StopAll stops and removes every controller.
func (m *TickManager) StopAll() {
	m.controllers.Range(func(key, _ any) bool {
		m.Unregister(key.(uuid.UUID))
		return true
	})
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller registered under id.
func (m *TickManager) GetController(id uuid.UUID) (Controller, error) {
	value, ok := m.controllers.Load(id)
	if !ok {
		return nil, fmt.Errorf("controller not found for id %s", id)
	}
	return value.(Controller), nil
}
