package model

import (
	"log/slog"

	"github.com/udisondev/riftborn/internal/game/combat"
)

// TakeDamage resolves one incoming hit of magnitude amount.
//
// Order:
//  1. Invulnerable (dashing, teleporting, stealthed): absorbed, returns 0.
//  2. Mana shield: the hit drains stamina 1:1. If stamina hits 0 the shield
//     breaks and the overflow (amount beyond the stamina held before the hit)
//     goes through damage reduction into health. Always returns 0, even when
//     overflow reached health; OnShieldOverflow reports the real loss.
//  3. Otherwise: reduced = amount × (1 - damageReduction) is removed from
//     health (floored at 0) and returned.
//
// Every non-invulnerable path fires OnHitFeedback.
func (c *Character) TakeDamage(amount float64) float64 {
	if c.destroyed || c.dead || !(amount >= 0) {
		return 0
	}
	if c.IsInvulnerable() {
		return 0
	}

	if c.hooks.OnHitFeedback != nil {
		c.hooks.OnHitFeedback(amount)
	}

	if c.manaShield {
		c.absorbWithShield(amount)
		c.afterHealthChange()
		return 0
	}

	reduced := combat.Mitigate(amount, c.stats.damageReduction)
	c.stats.damage(reduced)
	c.afterHealthChange()
	return reduced
}

func (c *Character) absorbWithShield(amount float64) {
	before := c.stats.stamina
	c.stats.drainStamina(amount)
	if c.stats.stamina > 0 {
		return
	}

	c.breakShield()

	overflow := amount - before
	if overflow <= 0 {
		return
	}
	lost := c.stats.damage(combat.Mitigate(overflow, c.stats.damageReduction))
	slog.Debug("mana shield overflow", "character", c.name, "overflow", overflow, "health_lost", lost)
	if c.hooks.OnShieldOverflow != nil {
		c.hooks.OnShieldOverflow(lost)
	}
}

// breakShield drops the mana shield and cancels its expiry.
func (c *Character) breakShield() {
	if !c.manaShield {
		return
	}
	c.manaShield = false
	c.timers.cancel(timerShieldExpire)
	slog.Debug("mana shield down", "character", c.name)
	if c.hooks.OnShieldDown != nil {
		c.hooks.OnShieldDown()
	}
}
