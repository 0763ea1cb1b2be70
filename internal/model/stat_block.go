package model

import (
	"math"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// StatBlock — числовое состояние одного персонажа.
// Владелец — Character; снаружи изменяется только через именованные операции.
//
// Invariants after every mutation:
//   - 0 ≤ health ≤ maxHealth, 0 ≤ stamina ≤ maxStamina
//   - 0 ≤ damageReduction ≤ 0.75
//   - damageMultiplier, critChanceBonus, speed, staminaRegen ≥ 0
type StatBlock struct {
	health     float64
	maxHealth  float64
	stamina    float64
	maxStamina float64

	speed        float64
	staminaRegen float64 // per frame

	damageMultiplier float64
	damageReduction  float64
	critChanceBonus  float64
}

// NewStatBlock seeds a StatBlock from archetype base stats. Health and stamina start full.
func NewStatBlock(base data.BaseStats) *StatBlock {
	s := &StatBlock{
		health:           base.MaxHealth,
		maxHealth:        base.MaxHealth,
		stamina:          base.MaxStamina,
		maxStamina:       base.MaxStamina,
		speed:            base.Speed,
		staminaRegen:     base.StaminaRegen,
		damageMultiplier: 1.0,
	}
	s.clamp()
	return s
}

func (s *StatBlock) Health() float64           { return s.health }
func (s *StatBlock) MaxHealth() float64        { return s.maxHealth }
func (s *StatBlock) Stamina() float64          { return s.stamina }
func (s *StatBlock) MaxStamina() float64       { return s.maxStamina }
func (s *StatBlock) Speed() float64            { return s.speed }
func (s *StatBlock) StaminaRegen() float64     { return s.staminaRegen }
func (s *StatBlock) DamageMultiplier() float64 { return s.damageMultiplier }
func (s *StatBlock) DamageReduction() float64  { return s.damageReduction }
func (s *StatBlock) CritChanceBonus() float64  { return s.critChanceBonus }

// HealthRatio returns health/maxHealth in [0, 1].
func (s *StatBlock) HealthRatio() float64 {
	if s.maxHealth <= 0 {
		return 0
	}
	return s.health / s.maxHealth
}

// ApplyTalent применяет все эффекты таланта и заново зажимает инварианты.
// Each call stacks: the caller guarantees a talent is applied at most once per run.
func (s *StatBlock) ApplyTalent(t *data.Talent) {
	if t == nil {
		return
	}
	for _, e := range t.Effects {
		s.applyEffect(e)
	}
	s.clamp()
}

// applyEffect interprets one declarative effect. Unknown stats or ops are ignored.
func (s *StatBlock) applyEffect(e data.TalentEffect) {
	field := s.field(e.Stat)
	if field == nil {
		return
	}
	switch e.Op {
	case data.OpAdd:
		*field += e.Value
	case data.OpMultiply:
		*field *= e.Value
	}
}

func (s *StatBlock) field(stat data.StatKind) *float64 {
	switch stat {
	case data.StatHealth:
		return &s.health
	case data.StatMaxHealth:
		return &s.maxHealth
	case data.StatStamina:
		return &s.stamina
	case data.StatMaxStamina:
		return &s.maxStamina
	case data.StatSpeed:
		return &s.speed
	case data.StatStaminaRegen:
		return &s.staminaRegen
	case data.StatDamageMultiplier:
		return &s.damageMultiplier
	case data.StatDamageReduction:
		return &s.damageReduction
	case data.StatCritChance:
		return &s.critChanceBonus
	default:
		return nil
	}
}

// SpendStamina is the single resource gate for dash, skills and attacks.
// Returns false without mutation if stamina < amount. NaN costs nothing.
func (s *StatBlock) SpendStamina(amount float64) bool {
	if math.IsNaN(amount) {
		amount = 0
	}
	if amount < 0 || s.stamina < amount {
		return false
	}
	s.stamina -= amount
	return true
}

// RegenerateStamina adds one frame of staminaRegen, clamped to maxStamina.
func (s *StatBlock) RegenerateStamina() {
	if s.stamina >= s.maxStamina {
		return
	}
	s.stamina = min(s.stamina+s.staminaRegen, s.maxStamina)
}

// drainStamina removes up to amount stamina and returns how much was actually drained.
func (s *StatBlock) drainStamina(amount float64) float64 {
	drained := min(nonNegative(amount), s.stamina)
	s.stamina -= drained
	return drained
}

// damage removes health, clamped at 0. Returns health actually removed.
func (s *StatBlock) damage(amount float64) float64 {
	lost := min(nonNegative(amount), s.health)
	s.health -= lost
	return lost
}

// heal restores health, clamped at maxHealth. Returns health actually restored.
func (s *StatBlock) heal(amount float64) float64 {
	gained := min(nonNegative(amount), s.maxHealth-s.health)
	s.health += gained
	return gained
}

// adjustDamageReduction adds delta and returns the delta actually applied after the cap.
func (s *StatBlock) adjustDamageReduction(delta float64) float64 {
	before := s.damageReduction
	s.damageReduction = combat.ClampReduction(before + delta)
	return s.damageReduction - before
}

// clamp re-establishes every invariant.
func (s *StatBlock) clamp() {
	s.maxHealth = nonNegative(s.maxHealth)
	s.maxStamina = nonNegative(s.maxStamina)
	s.health = min(nonNegative(s.health), s.maxHealth)
	s.stamina = min(nonNegative(s.stamina), s.maxStamina)
	s.speed = nonNegative(s.speed)
	s.staminaRegen = nonNegative(s.staminaRegen)
	s.damageMultiplier = nonNegative(s.damageMultiplier)
	s.critChanceBonus = nonNegative(s.critChanceBonus)
	s.damageReduction = combat.ClampReduction(s.damageReduction)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
