package ai

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// countingController records ticks.
type countingController struct {
	intention Intention
	started   bool
	stopped   bool
	ticks     int
	lastNow   time.Duration
}

func (c *countingController) Start()                      { c.started = true; c.intention = IntentionAttack }
func (c *countingController) Stop()                       { c.stopped = true; c.intention = IntentionIdle }
func (c *countingController) SetIntention(i Intention)    { c.intention = i }
func (c *countingController) CurrentIntention() Intention { return c.intention }
func (c *countingController) Tick(now, _ time.Duration)   { c.ticks++; c.lastNow = now }

func TestTickManager_RegisterUnregister(t *testing.T) {
	mgr := NewTickManager()
	id := uuid.New()
	ctrl := &countingController{}

	mgr.Register(id, ctrl)

	if mgr.Count() != 1 {
		t.Errorf("Count() after Register() = %d, want 1", mgr.Count())
	}
	if !ctrl.started {
		t.Error("Register() should start the controller")
	}

	controller, err := mgr.GetController(id)
	if err != nil {
		t.Fatalf("GetController() error = %v", err)
	}
	if controller.CurrentIntention() != IntentionAttack {
		t.Errorf("controller.CurrentIntention() = %v, want ATTACK", controller.CurrentIntention())
	}

	mgr.Unregister(id)

	if mgr.Count() != 0 {
		t.Errorf("Count() after Unregister() = %d, want 0", mgr.Count())
	}
	if !ctrl.stopped {
		t.Error("Unregister() should stop the controller")
	}
	if _, err := mgr.GetController(id); err == nil {
		t.Error("GetController() after Unregister() should return error")
	}

	// Unregister of unknown id is a no-op.
	mgr.Unregister(uuid.New())
	if mgr.Count() != 0 {
		t.Errorf("Count() = %d, want 0", mgr.Count())
	}
}

func TestTickManager_DuplicateRegister(t *testing.T) {
	mgr := NewTickManager()
	id := uuid.New()

	mgr.Register(id, &countingController{})
	mgr.Register(id, &countingController{})

	if mgr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", mgr.Count())
	}
}

func TestTickManager_TickAll(t *testing.T) {
	mgr := NewTickManager()
	a, b := &countingController{}, &countingController{}
	mgr.Register(uuid.New(), a)
	mgr.Register(uuid.New(), b)

	mgr.TickAll(16*time.Millisecond, 16*time.Millisecond)
	mgr.TickAll(32*time.Millisecond, 16*time.Millisecond)

	for i, c := range []*countingController{a, b} {
		if c.ticks != 2 {
			t.Errorf("controller %d ticks = %d, want 2", i, c.ticks)
		}
		if c.lastNow != 32*time.Millisecond {
			t.Errorf("controller %d lastNow = %v, want 32ms", i, c.lastNow)
		}
	}
}

func TestTickManager_StopAll(t *testing.T) {
	mgr := NewTickManager()
	a, b := &countingController{}, &countingController{}
	mgr.Register(uuid.New(), a)
	mgr.Register(uuid.New(), b)

	mgr.StopAll()

	if mgr.Count() != 0 {
		t.Errorf("Count() after StopAll() = %d, want 0", mgr.Count())
	}
	if !a.stopped || !b.stopped {
		t.Error("StopAll() should stop every controller")
	}
}

func TestIntention_String(t *testing.T) {
	tests := []struct {
		in   Intention
		want string
	}{
		{IntentionIdle, "IDLE"},
		{IntentionAttack, "ATTACK"},
		{IntentionDead, "DEAD"},
		{Intention(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Intention(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
