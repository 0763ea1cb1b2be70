package model

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// Character — игрок в боевой сессии.
// Владеет ровно одним StatBlock, одним Archetype и списком SkillInstance.
//
// Not safe for concurrent use: every call for one character must come from a
// single goroutine (the session loop). Distinct characters share nothing.
type Character struct {
	id   uuid.UUID
	name string

	stats  *StatBlock
	arch   Archetype
	skills []*SkillInstance

	position Vec2
	velocity Vec2
	facing   float64 // radians
	bounds   Bounds

	state      MovementState
	stealthed  bool
	charging   bool
	manaShield bool
	dead       bool
	destroyed  bool

	clock    time.Duration
	lastDash time.Duration
	dashed   bool
	timers   timerSet

	charge    *data.SkillDescriptor
	chargeHit bool

	target Target
	roll   combat.Roller
	hooks  Hooks
	crits  int
}

// Option configures a Character at construction.
type Option func(*Character)

// WithID overrides the generated character ID.
func WithID(id uuid.UUID) Option { return func(c *Character) { c.id = id } }

// WithName sets the display name used in logs.
func WithName(name string) Option { return func(c *Character) { c.name = name } }

// WithBounds sets the playfield. Defaults to 1280×720 inset by 50.
func WithBounds(b Bounds) Option { return func(c *Character) { c.bounds = b } }

// WithPosition sets the spawn point (clamped to bounds).
func WithPosition(p Vec2) Option { return func(c *Character) { c.position = p } }

// WithTarget sets the entity dash strikes and skills are aimed at.
func WithTarget(t Target) Option { return func(c *Character) { c.target = t } }

// WithRoller replaces the random source used for crit rolls.
func WithRoller(r combat.Roller) Option { return func(c *Character) { c.roll = r } }

// WithHooks installs presentation/progression callbacks.
func WithHooks(h Hooks) Option { return func(c *Character) { c.hooks = h } }

// WithTalents applies purchased talents in the given order at construction.
// Prerequisite validation is the caller's responsibility.
func WithTalents(ts ...*data.Talent) Option {
	return func(c *Character) {
		for _, t := range ts {
			c.stats.ApplyTalent(t)
		}
	}
}

// DefaultBounds is the playfield used when none is configured.
var DefaultBounds = NewPlayfield(1280, 720, 50)

// NewCharacter creates a character of the given archetype. The archetype is
// fixed for the character's lifetime; the skill roster is built from def.Skills.
func NewCharacter(def *data.ArchetypeDefinition, opts ...Option) *Character {
	c := &Character{
		id:     uuid.New(),
		name:   def.Name,
		stats:  NewStatBlock(def.Base),
		arch:   newArchetype(def),
		skills: make([]*SkillInstance, 0, len(def.Skills)),
		bounds: DefaultBounds,
		roll:   combat.DefaultRoller,
	}
	for i := range def.Skills {
		c.skills = append(c.skills, NewSkillInstance(&def.Skills[i]))
	}
	c.position = c.bounds.Center()

	for _, opt := range opts {
		opt(c)
	}
	c.position = c.bounds.Clamp(c.position)
	c.arch.updatePassive(c)
	return c
}

func (c *Character) ID() uuid.UUID            { return c.id }
func (c *Character) Name() string             { return c.name }
func (c *Character) Stats() *StatBlock        { return c.stats }
func (c *Character) Archetype() *Archetype    { return &c.arch }
func (c *Character) Position() Vec2           { return c.position }
func (c *Character) Velocity() Vec2           { return c.velocity }
func (c *Character) Facing() float64          { return c.facing }
func (c *Character) State() MovementState     { return c.state }
func (c *Character) Clock() time.Duration     { return c.clock }
func (c *Character) Skills() []*SkillInstance { return c.skills }
func (c *Character) Target() Target           { return c.target }

func (c *Character) IsDashing() bool        { return c.state == MovementDashing }
func (c *Character) IsInvulnerable() bool   { return c.state.Invulnerable() }
func (c *Character) IsStealthed() bool      { return c.stealthed }
func (c *Character) IsCharging() bool       { return c.charging }
func (c *Character) ManaShieldActive() bool { return c.manaShield }
func (c *Character) IsDead() bool           { return c.dead }
func (c *Character) IsDestroyed() bool      { return c.destroyed }
func (c *Character) PassiveActive() bool    { return c.arch.PassiveActive() }

// CritCount returns the number of critical hits landed (meta-progression counter).
func (c *Character) CritCount() int { return c.crits }

// SetTarget changes the entity skills are aimed at. nil clears it.
func (c *Character) SetTarget(t Target) { c.target = t }

// Move sets velocity along (vx, vy) at the character's speed.
// No-op while dashing or charging. A zero vector stops the character.
func (c *Character) Move(vx, vy float64) {
	if c.destroyed || c.dead || c.state == MovementDashing || c.charging {
		return
	}
	dir := V(vx, vy).Normalize()
	if !dir.IsZero() {
		c.facing = dir.Angle()
	}
	c.velocity = dir.Scale(c.stats.speed)
}

// Aim turns the character without moving it.
func (c *Character) Aim(dx, dy float64) {
	if c.destroyed || c.dead {
		return
	}
	if d := V(dx, dy); !d.IsZero() {
		c.facing = d.Angle()
	}
}

// Dash attempts the class dash along (dx, dy); a zero vector dashes along facing.
// Returns false with no side effects if the dash is rejected.
func (c *Character) Dash(dx, dy float64) bool {
	return resolveDash(c, V(dx, dy))
}

// UseSkill activates the skill at roster index. Out-of-range index, cooldown,
// insufficient stamina or a dead character all reject with false.
func (c *Character) UseSkill(index int) bool {
	if c.destroyed || c.dead {
		return false
	}
	if index < 0 || index >= len(c.skills) {
		return false
	}
	inst := c.skills[index]
	if !inst.Use(c.clock, c.stats) {
		return false
	}

	desc := inst.Descriptor()
	if effect, ok := skillEffects[desc.Kind]; ok {
		effect(c, desc)
	} else {
		slog.Warn("no effect registered for skill kind", "skill", desc.ID, "kind", desc.Kind)
	}

	slog.Debug("skill used",
		"character", c.name,
		"skill", desc.ID,
		"stamina", c.stats.stamina,
		"at", c.clock)
	return true
}

// CanUseSkill reports whether UseSkill(index) would succeed now.
func (c *Character) CanUseSkill(index int) bool {
	if c.destroyed || c.dead || index < 0 || index >= len(c.skills) {
		return false
	}
	return c.skills[index].CanUse(c.clock, c.stats)
}

// Attack fires the primary ranged attack: pays AttackCost stamina and returns
// the outgoing damage for the projectile system to deliver.
func (c *Character) Attack() (float64, bool) {
	if c.destroyed || c.dead {
		return 0, false
	}
	if !c.stats.SpendStamina(c.arch.def.AttackCost) {
		return 0, false
	}
	return c.OutgoingDamage(c.arch.def.AttackDamage), true
}

// OutgoingDamage scales base by damageMultiplier, then runs the class damage hook.
func (c *Character) OutgoingDamage(base float64) float64 {
	return c.arch.calculateDamage(c, base*c.stats.damageMultiplier)
}

// DealDamage computes outgoing damage and applies it to t.
// Returns what the target reported as applied.
func (c *Character) DealDamage(t Target, base float64) float64 {
	if t == nil {
		return 0
	}
	return t.TakeDamage(c.OutgoingDamage(base))
}

// ApplyTalent forwards to the StatBlock and re-evaluates the class passive.
func (c *Character) ApplyTalent(t *data.Talent) {
	if c.destroyed {
		return
	}
	c.arch.rebaseEnrage(c, func() { c.stats.ApplyTalent(t) })
	c.afterHealthChange()
}

// Heal restores health and returns the amount restored.
func (c *Character) Heal(amount float64) float64 {
	if c.destroyed || c.dead {
		return 0
	}
	gained := c.stats.heal(amount)
	c.afterHealthChange()
	return gained
}

// RegenerateStamina applies one frame of passive stamina regeneration.
func (c *Character) RegenerateStamina() {
	if c.destroyed || c.dead {
		return
	}
	c.stats.RegenerateStamina()
}

// Update advances the character to game time now: integrates movement, fires
// due timers and re-evaluates the passive. No-op after Destroy.
func (c *Character) Update(now, delta time.Duration) {
	if c.destroyed {
		return
	}
	if now > c.clock {
		c.clock = now
	}

	if !c.dead && !c.velocity.IsZero() && delta > 0 {
		c.position = c.bounds.Clamp(c.position.Add(c.velocity.Scale(delta.Seconds())))
	}
	if c.charging {
		chargeContact(c)
	}

	for _, t := range c.timers.expire(c.clock) {
		t.onExpire(c)
	}

	if !c.dead {
		c.arch.updatePassive(c)
	}
}

// Destroy cancels every pending timer. Later updates and actions are no-ops.
func (c *Character) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.timers.clear()
	c.velocity = Vec2{}
	c.target = nil
	slog.Debug("character destroyed", "character", c.name, "id", c.id)
}

func (c *Character) afterHealthChange() {
	if c.stats.health <= 0 && !c.dead {
		c.die()
		return
	}
	if !c.dead {
		c.arch.updatePassive(c)
	}
}

func (c *Character) die() {
	c.dead = true
	c.velocity = Vec2{}
	c.charging = false
	slog.Debug("character died", "character", c.name, "id", c.id)
	if c.hooks.OnDeath != nil {
		c.hooks.OnDeath()
	}
}

// targetInRange returns the target if it is within r of the character.
func (c *Character) targetInRange(r float64) Target {
	if c.target == nil {
		return nil
	}
	if c.position.DistanceTo(c.target.Position()) > r {
		return nil
	}
	return c.target
}

// Snapshot is the read-only HUD view of a character.
type Snapshot struct {
	ID         uuid.UUID
	Name       string
	Class      data.Class
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Speed      float64
	Position   Vec2
	State      MovementState
	Stealthed  bool
	ManaShield bool
	Charging   bool
	Enraged    bool
	Dead       bool
	Cooldowns  []float64 // CooldownProgress per roster slot
}

// Snapshot returns the HUD view at the current clock.
func (c *Character) Snapshot() Snapshot {
	cds := make([]float64, len(c.skills))
	for i, s := range c.skills {
		cds[i] = s.CooldownProgress(c.clock)
	}
	return Snapshot{
		ID:         c.id,
		Name:       c.name,
		Class:      c.arch.class,
		Health:     c.stats.health,
		MaxHealth:  c.stats.maxHealth,
		Stamina:    c.stats.stamina,
		MaxStamina: c.stats.maxStamina,
		Speed:      c.stats.speed,
		Position:   c.position,
		State:      c.state,
		Stealthed:  c.stealthed,
		ManaShield: c.manaShield,
		Charging:   c.charging,
		Enraged:    c.arch.enraged,
		Dead:       c.dead,
		Cooldowns:  cds,
	}
}
