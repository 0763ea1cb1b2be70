package arena

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/ai"
	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/model"
)

// inputQueueSize is the per-session input buffer.
const inputQueueSize = 256

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrInputQueueFull = errors.New("input queue full")
)

// Outcome is how a session ended.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeVictory         // boss defeated
	OutcomeDefeat          // every character dead
	OutcomeTimeout         // session_duration elapsed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Session is one arena fight: characters, a boss and the fixed-step loop that
// advances them. Inputs arrive from any goroutine through Submit and are
// applied only on the loop goroutine, so each character has a single writer.
type Session struct {
	id     uuid.UUID
	cfg    config.Arena
	bounds model.Bounds

	inputs chan Input

	mu         sync.RWMutex // guards everything below
	characters map[uuid.UUID]*model.Character
	order      []uuid.UUID
	boss       *ai.Boss
	bossAI     *ai.BossAI
	ai         *ai.TickManager
	clock      time.Duration
	frames     int
	outcome    Outcome
	closed     bool
}

// NewSession creates a session with a boss spawned on the right side of the playfield.
func NewSession(cfg config.Arena) *Session {
	pf := cfg.Playfield
	bounds := model.NewPlayfield(pf.Width, pf.Height, pf.Inset)

	s := &Session{
		id:         uuid.New(),
		cfg:        cfg,
		bounds:     bounds,
		inputs:     make(chan Input, inputQueueSize),
		characters: make(map[uuid.UUID]*model.Character),
		ai:         ai.NewTickManager(),
	}

	spawn := model.V(bounds.Max.X-bounds.Width()/4, bounds.Center().Y)
	s.boss = ai.NewBoss("Rift Warden", cfg.Boss.MaxHealth, spawn, bounds)
	s.bossAI = ai.NewBossAI(s.boss, cfg.Boss, s.opponents)
	s.ai.Register(uuid.New(), s.bossAI)
	return s
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Bounds() model.Bounds { return s.bounds }

// Boss returns the session boss. Read it only from the loop goroutine or after Run returns.
func (s *Session) Boss() *ai.Boss { return s.boss }

// AddCharacter spawns a character of def on the left side of the playfield,
// targeting the boss. talents are applied in order.
func (s *Session) AddCharacter(def *data.ArchetypeDefinition, talents []*data.Talent, opts ...model.Option) (*model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	spawn := model.V(s.bounds.Min.X+s.bounds.Width()/4, s.bounds.Center().Y)
	base := []model.Option{
		model.WithBounds(s.bounds),
		model.WithPosition(spawn),
		model.WithTarget(s.boss),
		model.WithTalents(talents...),
	}
	c := model.NewCharacter(def, append(base, opts...)...)

	s.characters[c.ID()] = c
	s.order = append(s.order, c.ID())
	slog.Info("character joined", "session", s.id, "character", c.Name(), "id", c.ID(), "class", def.Class)
	return c, nil
}

// Submit queues an input for the next frame.
func (s *Session) Submit(in Input) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrSessionClosed
	}

	select {
	case s.inputs <- in:
		return nil
	default:
		return ErrInputQueueFull
	}
}

// Run ticks the session every frame_interval until ctx is done, the fight is
// decided, or session_duration elapses. Returns nil unless ctx was cancelled.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	slog.Info("session started", "session", s.id, "frame_interval", s.cfg.FrameInterval, "characters", len(s.order))

	for {
		select {
		case <-ctx.Done():
			slog.Info("session stopping", "session", s.id, "frames", s.frames)
			return ctx.Err()

		case <-ticker.C:
			if out := s.Step(s.cfg.FrameInterval); out != OutcomeRunning {
				slog.Info("session finished",
					"session", s.id,
					"outcome", out,
					"clock", s.clock,
					"frames", s.frames)
				return nil
			}
		}
	}
}

// Step advances the session by one fixed frame of length delta: queued inputs
// first, then every character (regen + update), then AI. Returns the outcome
// after the frame.
func (s *Session) Step(delta time.Duration) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.outcome != OutcomeRunning {
		return s.outcome
	}

	s.drainInputs()

	s.clock += delta
	s.frames++
	for _, id := range s.order {
		c := s.characters[id]
		c.RegenerateStamina()
		c.Update(s.clock, delta)
	}
	s.ai.TickAll(s.clock, delta)

	s.outcome = s.evaluate()
	return s.outcome
}

func (s *Session) drainInputs() {
	for {
		select {
		case in := <-s.inputs:
			s.apply(in)
		default:
			return
		}
	}
}

func (s *Session) apply(in Input) {
	c, ok := s.characters[in.Character]
	if !ok {
		slog.Warn("input for unknown character dropped", "session", s.id, "character", in.Character, "kind", in.Kind)
		return
	}

	var accepted bool
	switch in.Kind {
	case InputMove:
		c.Move(in.X, in.Y)
		accepted = true
	case InputAim:
		c.Aim(in.X, in.Y)
		accepted = true
	case InputDash:
		accepted = c.Dash(in.X, in.Y)
	case InputSkill:
		accepted = c.UseSkill(in.Skill)
	case InputAttack:
		var dmg float64
		if dmg, accepted = c.Attack(); accepted {
			// Projectile delivery is instant in the arena.
			s.boss.TakeDamage(dmg)
		}
	default:
		slog.Warn("unknown input kind", "kind", in.Kind)
		return
	}

	if !accepted {
		slog.Debug("input rejected", "character", c.Name(), "kind", in.Kind, "at", s.clock)
	}
}

func (s *Session) evaluate() Outcome {
	if s.boss.IsDead() {
		return OutcomeVictory
	}
	if len(s.order) > 0 {
		alive := false
		for _, id := range s.order {
			if !s.characters[id].IsDead() {
				alive = true
				break
			}
		}
		if !alive {
			return OutcomeDefeat
		}
	}
	if s.cfg.SessionDuration > 0 && s.clock >= s.cfg.SessionDuration {
		return OutcomeTimeout
	}
	return OutcomeRunning
}

// opponents feeds the boss AI. Called from Step with mu held.
func (s *Session) opponents() []ai.Opponent {
	out := make([]ai.Opponent, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.characters[id])
	}
	return out
}

// Snapshot is the HUD view of the whole arena.
type Snapshot struct {
	Clock      time.Duration
	Frames     int
	Outcome    Outcome
	Characters []model.Snapshot
	Boss       BossSnapshot
}

// BossSnapshot is the HUD view of the boss.
type BossSnapshot struct {
	Health    float64
	MaxHealth float64
	Position  model.Vec2
	Intention ai.Intention
}

// Snapshot returns a consistent view of the arena. Safe from any goroutine.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chars := make([]model.Snapshot, 0, len(s.order))
	for _, id := range s.order {
		chars = append(chars, s.characters[id].Snapshot())
	}
	return Snapshot{
		Clock:      s.clock,
		Frames:     s.frames,
		Outcome:    s.outcome,
		Characters: chars,
		Boss: BossSnapshot{
			Health:    s.boss.Health(),
			MaxHealth: s.boss.MaxHealth(),
			Position:  s.boss.Position(),
			Intention: s.bossAI.CurrentIntention(),
		},
	}
}

// Close destroys every character and stops the AI. Returns crit counts per
// character for the progression store. Later calls return nil.
func (s *Session) Close() map[uuid.UUID]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	crits := make(map[uuid.UUID]int, len(s.characters))
	for _, id := range s.order {
		c := s.characters[id]
		crits[id] = c.CritCount()
		c.Destroy()
	}
	s.ai.StopAll()

	slog.Info("session closed", "session", s.id, "outcome", s.outcome, "clock", s.clock)
	return crits
}
