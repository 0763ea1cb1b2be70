package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/riftborn/internal/data"
)

func TestSkillInstance_CooldownCycle(t *testing.T) {
	desc := &data.SkillDescriptor{ID: "slam", Kind: data.SkillStrike, StaminaCost: 10, Cooldown: 8 * time.Second}
	skill := NewSkillInstance(desc)
	stats := NewStatBlock(testBase())

	assert.True(t, skill.CanUse(0, stats))
	assert.True(t, skill.Use(0, stats))
	assert.Equal(t, 40.0, stats.Stamina())

	assert.False(t, skill.CanUse(4000*time.Millisecond, stats))
	assert.InDelta(t, 0.5, skill.CooldownProgress(4000*time.Millisecond), 1e-9)

	assert.True(t, skill.CanUse(8001*time.Millisecond, stats))
	assert.Equal(t, 1.0, skill.CooldownProgress(8001*time.Millisecond))
}

func TestSkillInstance_UseRejected(t *testing.T) {
	desc := &data.SkillDescriptor{ID: "slam", StaminaCost: 10, Cooldown: time.Second}

	t.Run("on cooldown", func(t *testing.T) {
		skill := NewSkillInstance(desc)
		stats := NewStatBlock(testBase())
		assert.True(t, skill.Use(0, stats))

		before := stats.Stamina()
		assert.False(t, skill.Use(500*time.Millisecond, stats))
		assert.Equal(t, before, stats.Stamina())

		last, used := skill.LastUsed()
		assert.True(t, used)
		assert.Equal(t, time.Duration(0), last)
	})

	t.Run("not enough stamina", func(t *testing.T) {
		skill := NewSkillInstance(desc)
		stats := NewStatBlock(testBase())
		stats.stamina = 5

		assert.False(t, skill.CanUse(0, stats))
		assert.False(t, skill.Use(0, stats))
		assert.Equal(t, 5.0, stats.Stamina())

		_, used := skill.LastUsed()
		assert.False(t, used)
	})
}

func TestSkillInstance_CooldownProgress(t *testing.T) {
	desc := &data.SkillDescriptor{ID: "x", Cooldown: 2 * time.Second}
	skill := NewSkillInstance(desc)
	stats := NewStatBlock(testBase())

	assert.Equal(t, 1.0, skill.CooldownProgress(0), "never used")

	skill.Use(time.Second, stats)
	assert.Equal(t, 0.0, skill.CooldownProgress(time.Second))
	assert.Equal(t, 0.0, skill.CooldownProgress(0), "clock behind last use clamps to 0")
	assert.InDelta(t, 0.25, skill.CooldownProgress(1500*time.Millisecond), 1e-9)
	assert.Equal(t, 1.0, skill.CooldownProgress(10*time.Second))
}
