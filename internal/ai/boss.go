package ai

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/riftborn/internal/model"
)

// impulseDecay — доля импульса, теряемая за секунду.
const impulseDecay = 6.0

// Boss is the arena training boss. It implements model.Target and
// model.Knockbackable, so dash strikes and skills can hit and push it.
//
// Not safe for concurrent use; touched only from the session loop.
type Boss struct {
	name      string
	position  model.Vec2
	rotation  float64
	health    float64
	maxHealth float64
	impulse   model.Vec2
	bounds    model.Bounds

	damageTaken float64
	hits        int
}

// NewBoss creates a boss at pos, clamped to bounds.
func NewBoss(name string, maxHealth float64, pos model.Vec2, bounds model.Bounds) *Boss {
	return &Boss{
		name:      name,
		position:  bounds.Clamp(pos),
		health:    maxHealth,
		maxHealth: maxHealth,
		bounds:    bounds,
		rotation:  math.Pi, // faces left, toward the default spawn side
	}
}

func (b *Boss) Name() string             { return b.name }
func (b *Boss) Position() model.Vec2     { return b.position }
func (b *Boss) Rotation() float64        { return b.rotation }
func (b *Boss) Health() float64          { return b.health }
func (b *Boss) MaxHealth() float64       { return b.maxHealth }
func (b *Boss) IsDead() bool             { return b.health <= 0 }
func (b *Boss) Impulse() model.Vec2      { return b.impulse }
func (b *Boss) DamageTaken() float64     { return b.damageTaken }
func (b *Boss) Hits() int                { return b.hits }
func (b *Boss) SetPosition(p model.Vec2) { b.position = b.bounds.Clamp(p) }

// TakeDamage removes amount from health and returns what was actually removed.
func (b *Boss) TakeDamage(amount float64) float64 {
	if amount <= 0 || b.IsDead() {
		return 0
	}
	applied := min(amount, b.health)
	b.health -= applied
	b.damageTaken += applied
	b.hits++
	if b.IsDead() {
		slog.Info("boss defeated", "boss", b.name, "hits", b.hits)
	}
	return applied
}

// ApplyImpulse adds a knockback impulse (units/s) that decays over time.
func (b *Boss) ApplyImpulse(impulse model.Vec2) {
	if b.IsDead() {
		return
	}
	b.impulse = b.impulse.Add(impulse)
}

// FaceTowards turns the boss to look at p.
func (b *Boss) FaceTowards(p model.Vec2) {
	if d := p.Sub(b.position); !d.IsZero() {
		b.rotation = d.Angle()
	}
}

// Update integrates the knockback impulse and decays it.
func (b *Boss) Update(delta time.Duration) {
	if b.impulse.IsZero() || delta <= 0 {
		return
	}
	dt := delta.Seconds()
	b.position = b.bounds.Clamp(b.position.Add(b.impulse.Scale(dt)))

	b.impulse = b.impulse.Scale(math.Max(0, 1-impulseDecay*dt))
	if b.impulse.Len() < 1 {
		b.impulse = model.Vec2{}
	}
}
