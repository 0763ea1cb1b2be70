package model

import (
	"time"

	"github.com/udisondev/riftborn/internal/data"
)

// SkillInstance is one ability bound to a character.
// State machine: AVAILABLE → ON_COOLDOWN → AVAILABLE, driven by the game clock.
type SkillInstance struct {
	desc *data.SkillDescriptor

	cooldown    time.Duration
	staminaCost float64

	used     bool
	lastUsed time.Duration
}

// NewSkillInstance binds a roster descriptor to a character.
func NewSkillInstance(desc *data.SkillDescriptor) *SkillInstance {
	return &SkillInstance{
		desc:        desc,
		cooldown:    desc.Cooldown,
		staminaCost: desc.StaminaCost,
	}
}

func (s *SkillInstance) ID() string                        { return s.desc.ID }
func (s *SkillInstance) Descriptor() *data.SkillDescriptor { return s.desc }
func (s *SkillInstance) Cooldown() time.Duration           { return s.cooldown }
func (s *SkillInstance) StaminaCost() float64              { return s.staminaCost }

// LastUsed returns the timestamp of the last successful activation.
// The second value is false if the skill was never used.
func (s *SkillInstance) LastUsed() (time.Duration, bool) {
	return s.lastUsed, s.used
}

// OnCooldown reports whether the skill is still recovering at now.
func (s *SkillInstance) OnCooldown(now time.Duration) bool {
	return s.used && now-s.lastUsed < s.cooldown
}

// CanUse is true iff the skill is off cooldown and stats can pay the stamina cost.
func (s *SkillInstance) CanUse(now time.Duration, stats *StatBlock) bool {
	return !s.OnCooldown(now) && stats.Stamina() >= s.staminaCost
}

// Use spends stamina and starts the cooldown. Returns false with no mutation if !CanUse.
func (s *SkillInstance) Use(now time.Duration, stats *StatBlock) bool {
	if !s.CanUse(now, stats) {
		return false
	}
	if !stats.SpendStamina(s.staminaCost) {
		return false
	}
	s.used = true
	s.lastUsed = now
	return true
}

// CooldownProgress returns clamp((now - lastUsed) / cooldown, 0, 1). Pure read.
// A skill that was never used, or has no cooldown, reports 1.
func (s *SkillInstance) CooldownProgress(now time.Duration) float64 {
	if !s.used || s.cooldown <= 0 {
		return 1
	}
	p := float64(now-s.lastUsed) / float64(s.cooldown)
	return min(max(p, 0), 1)
}
