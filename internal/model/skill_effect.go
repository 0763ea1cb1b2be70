package model

import (
	"log/slog"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// skillEffect runs the effect of a skill that has already paid its cost.
type skillEffect func(c *Character, s *data.SkillDescriptor)

// skillEffects maps skill kind → effect. Populated in init().
var skillEffects = map[data.SkillKind]skillEffect{}

func registerSkillEffect(kind data.SkillKind, fn skillEffect) {
	skillEffects[kind] = fn
}

func init() {
	registerSkillEffect(data.SkillStrike, strikeEffect)
	registerSkillEffect(data.SkillBackstab, backstabEffect)
	registerSkillEffect(data.SkillCharge, chargeEffect)
	registerSkillEffect(data.SkillHeal, healEffect)
	registerSkillEffect(data.SkillManaShield, manaShieldEffect)
	registerSkillEffect(data.SkillVanish, vanishEffect)
}

// strikeEffect hits the target if it is within range; otherwise the skill whiffs.
func strikeEffect(c *Character, s *data.SkillDescriptor) {
	t := c.targetInRange(s.Range)
	if t == nil {
		return
	}
	c.DealDamage(t, s.Damage)
}

// backstabEffect is a strike scaled by where the attacker stands relative to the target's facing.
func backstabEffect(c *Character, s *data.SkillDescriptor) {
	t := c.targetInRange(s.Range)
	if t == nil {
		return
	}
	tp := t.Position()
	pos := combat.GetPosition(c.position.X, c.position.Y, tp.X, tp.Y, t.Rotation())
	c.DealDamage(t, s.Damage*combat.BackstabBonus(pos))
	slog.Debug("backstab", "character", c.name, "position", pos)
}

// chargeEffect rushes along facing; the first contact during the charge deals damage once.
func chargeEffect(c *Character, s *data.SkillDescriptor) {
	c.charging = true
	c.charge = s
	c.chargeHit = false
	c.velocity = FromAngle(c.facing).Scale(s.Speed)
	c.timers.schedule(timerChargeEnd, c.clock+s.Duration, endCharge)
	chargeContact(c)
}

func chargeContact(c *Character) {
	if c.chargeHit || c.charge == nil {
		return
	}
	t := c.targetInRange(c.charge.Range)
	if t == nil {
		return
	}
	c.chargeHit = true
	c.DealDamage(t, c.charge.Damage)
}

func endCharge(c *Character) {
	c.charging = false
	c.charge = nil
	c.chargeHit = false
	if c.state != MovementDashing {
		c.velocity = Vec2{}
	}
}

func healEffect(c *Character, s *data.SkillDescriptor) {
	c.Heal(s.Damage)
}

func manaShieldEffect(c *Character, s *data.SkillDescriptor) {
	c.manaShield = true
	c.timers.schedule(timerShieldExpire, c.clock+s.Duration, func(c *Character) {
		c.breakShield()
	})
}

func vanishEffect(c *Character, s *data.SkillDescriptor) {
	enterStealth(c, s.Duration)
}
