package model

import (
	"log/slog"
	"time"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// resolveDash runs the class dash. Returns false with no side effects when the
// dash is rejected (not enough stamina, already dashing, dead).
func resolveDash(c *Character, dir Vec2) bool {
	if !canDash(c) {
		return false
	}

	dir = dir.Normalize()
	if dir.IsZero() {
		dir = FromAngle(c.facing)
	}
	c.facing = dir.Angle()

	dash := c.arch.def.Dash
	c.stats.SpendStamina(dash.StaminaCost)
	c.lastDash, c.dashed = c.clock, true

	switch c.arch.class {
	case data.ClassWarrior:
		beginDash(c, dir, dash)
		dashStrike(c, dash.Damage)
	case data.ClassMage:
		teleport(c, dir)
	case data.ClassRogue:
		beginDash(c, dir, dash)
		enterStealth(c, data.RogueStealthDuration)
	default:
		beginDash(c, dir, dash)
	}

	slog.Debug("dash",
		"character", c.name,
		"class", c.arch.class,
		"state", c.state,
		"stamina", c.stats.stamina)
	return true
}

// canDash is the shared gate: state, stamina and the optional dash cooldown.
func canDash(c *Character) bool {
	if c.dead || c.destroyed || c.charging {
		return false
	}
	if c.state.blocksDash() {
		return false
	}
	dash := c.arch.def.Dash
	if c.stats.stamina < dash.StaminaCost {
		return false
	}
	if dash.Cooldown > 0 && c.dashed && c.clock-c.lastDash < dash.Cooldown {
		return false
	}
	return true
}

// beginDash enters DASHING with a velocity impulse and schedules its end.
func beginDash(c *Character, dir Vec2, dash data.DashTuning) {
	c.state = MovementDashing
	c.velocity = dir.Scale(dash.Speed)
	c.timers.schedule(timerDashEnd, c.clock+dash.Duration, endDash)
}

// endDash leaves DASHING or TELEPORTING. A rogue still inside the stealth
// window stays hidden (and invulnerable) until the stealth timer fires.
// A charge started mid-dash keeps its velocity until endCharge.
func endDash(c *Character) {
	if !c.charging {
		c.velocity = Vec2{}
	}
	if c.stealthed {
		c.state = MovementStealthed
		return
	}
	c.state = MovementIdle
}

// dashStrike is the Warrior dash-start proximity hit with knockback.
func dashStrike(c *Character, damage float64) {
	if c.target == nil || damage <= 0 {
		return
	}
	tp := c.target.Position()
	sep := tp.Sub(c.position)
	if sep.Len() >= data.WarriorDashHitRange {
		return
	}
	c.target.TakeDamage(damage)
	if kb, ok := c.target.(Knockbackable); ok {
		x, y := combat.Knockback(sep.X, sep.Y, data.WarriorKnockbackScale)
		kb.ApplyImpulse(V(x, y))
	}
	slog.Debug("dash strike", "character", c.name, "damage", damage, "distance", sep.Len())
}

// teleport is the Mage dash: instant relocation, short invulnerability window.
func teleport(c *Character, dir Vec2) {
	dest := c.position.Add(dir.Scale(data.MageTeleportDistance))
	c.position = c.bounds.Clamp(dest)
	c.velocity = Vec2{}
	c.state = MovementTeleporting
	c.timers.schedule(timerDashEnd, c.clock+data.MageTeleportWindow, endDash)
}

// enterStealth starts (or refreshes) the stealth window.
func enterStealth(c *Character, d time.Duration) {
	c.stealthed = true
	if c.state == MovementIdle {
		c.state = MovementStealthed
	}
	c.timers.schedule(timerStealthEnd, c.clock+d, endStealth)
	if c.hooks.OnStealth != nil {
		c.hooks.OnStealth(true)
	}
}

func endStealth(c *Character) {
	c.stealthed = false
	if c.state == MovementStealthed {
		c.state = MovementIdle
	}
	if c.hooks.OnStealth != nil {
		c.hooks.OnStealth(false)
	}
}
