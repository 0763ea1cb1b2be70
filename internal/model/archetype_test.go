package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/riftborn/internal/data"
)

func TestArchetype_WarriorEnrage(t *testing.T) {
	c := newTestCharacter(t, data.ClassWarrior, WithTalents(data.GetTalent("warrior.bulwark.1")))
	require.InDelta(t, 0.1, c.Stats().DamageReduction(), 1e-9)

	// 46/150 ≈ 0.307
	c.stats.health = 46
	c.afterHealthChange()
	assert.False(t, c.PassiveActive())
	assert.InDelta(t, 0.1, c.Stats().DamageReduction(), 1e-9)

	// 43/150 ≈ 0.287
	c.stats.health = 43
	c.afterHealthChange()
	assert.True(t, c.PassiveActive())
	assert.InDelta(t, 0.4, c.Stats().DamageReduction(), 1e-9)

	c.afterHealthChange()
	assert.InDelta(t, 0.4, c.Stats().DamageReduction(), 1e-9, "re-evaluation does not stack")

	c.stats.health = 46
	c.afterHealthChange()
	assert.False(t, c.PassiveActive())
	assert.InDelta(t, 0.1, c.Stats().DamageReduction(), 1e-9)
}

func TestArchetype_WarriorEnrageThresholdIsStrict(t *testing.T) {
	c := newTestCharacter(t, data.ClassWarrior)

	c.stats.health = 45 // exactly 30%
	c.afterHealthChange()
	assert.False(t, c.PassiveActive())
}

func TestArchetype_WarriorEnrageRespectsCap(t *testing.T) {
	c := newTestCharacter(t, data.ClassWarrior)
	c.stats.damageReduction = 0.6

	c.stats.health = 40
	c.afterHealthChange()
	assert.True(t, c.PassiveActive())
	assert.Equal(t, 0.75, c.Stats().DamageReduction())

	c.stats.health = 100
	c.afterHealthChange()
	assert.False(t, c.PassiveActive())
	assert.InDelta(t, 0.6, c.Stats().DamageReduction(), 1e-9)
}

func TestArchetype_WarriorEnrageViaDamageAndHeal(t *testing.T) {
	var events []bool
	c := newTestCharacter(t, data.ClassWarrior, WithHooks(Hooks{
		OnEnrage: func(active bool) { events = append(events, active) },
	}))

	c.TakeDamage(110)
	assert.Equal(t, 40.0, c.Stats().Health())
	assert.True(t, c.PassiveActive())
	assert.InDelta(t, 0.3, c.Stats().DamageReduction(), 1e-9)

	assert.InDelta(t, 7.0, c.TakeDamage(10), 1e-9, "enraged hits are reduced")

	c.Heal(30)
	assert.False(t, c.PassiveActive())
	assert.Zero(t, c.Stats().DamageReduction())
	assert.Equal(t, []bool{true, false}, events)
}

func TestArchetype_EnrageOnlyForWarrior(t *testing.T) {
	for _, class := range []data.Class{data.ClassMage, data.ClassRogue} {
		t.Run(string(class), func(t *testing.T) {
			c := newTestCharacter(t, class)
			c.stats.health = 1
			c.afterHealthChange()

			assert.False(t, c.PassiveActive())
			assert.Zero(t, c.Stats().DamageReduction())
		})
	}
}

func TestArchetype_RogueCrit(t *testing.T) {
	t.Run("roll under chance crits", func(t *testing.T) {
		var crits []float64
		c := newTestCharacter(t, data.ClassRogue,
			WithRoller(fixedRoll(0)),
			WithHooks(Hooks{OnCrit: func(d float64) { crits = append(crits, d) }}),
		)

		assert.Equal(t, 200.0, c.OutgoingDamage(100))
		assert.Equal(t, 1, c.CritCount())
		assert.Equal(t, []float64{200}, crits)
	})

	t.Run("roll over chance passes through", func(t *testing.T) {
		c := newTestCharacter(t, data.ClassRogue, WithRoller(fixedRoll(0.99)))

		assert.Equal(t, 100.0, c.OutgoingDamage(100))
		assert.Zero(t, c.CritCount())
	})

	t.Run("precision raises chance", func(t *testing.T) {
		c := newTestCharacter(t, data.ClassRogue,
			WithRoller(fixedRoll(0.22)),
			WithTalents(data.GetTalent("rogue.precision.1")),
		)

		assert.Equal(t, 200.0, c.OutgoingDamage(100))
	})

	t.Run("damage multiplier applies before crit", func(t *testing.T) {
		c := newTestCharacter(t, data.ClassRogue,
			WithRoller(fixedRoll(0)),
			WithTalents(data.GetTalent("rogue.lethality.1")),
		)

		assert.InDelta(t, 220.0, c.OutgoingDamage(100), 1e-9)
	})
}

func TestArchetype_NoCritOutsideRogue(t *testing.T) {
	for _, class := range []data.Class{data.ClassWarrior, data.ClassMage} {
		t.Run(string(class), func(t *testing.T) {
			c := newTestCharacter(t, class, WithRoller(fixedRoll(0)))

			assert.Equal(t, 100.0, c.OutgoingDamage(100))
			assert.Zero(t, c.CritCount())
		})
	}
}

func TestCharacter_Attack(t *testing.T) {
	c := newTestCharacter(t, data.ClassRogue, WithRoller(fixedRoll(0)))

	dmg, ok := c.Attack()
	require.True(t, ok)
	assert.Equal(t, 20.0, dmg)
	assert.Equal(t, 116.0, c.Stats().Stamina())

	c.stats.stamina = 2
	dmg, ok = c.Attack()
	assert.False(t, ok)
	assert.Zero(t, dmg)
	assert.Equal(t, 2.0, c.Stats().Stamina())
}

func TestArchetype_TalentWhileEnragedSurvivesExit(t *testing.T) {
	c := newTestCharacter(t, data.ClassWarrior)
	c.stats.damageReduction = 0.4
	c.stats.health = 10
	c.afterHealthChange()
	require.True(t, c.PassiveActive())
	require.InDelta(t, 0.7, c.Stats().DamageReduction(), 1e-9)

	c.ApplyTalent(data.GetTalent("warrior.bulwark.1")) // +0.1
	assert.True(t, c.PassiveActive())
	assert.Equal(t, 0.75, c.Stats().DamageReduction(), "capped while enraged")

	c.Heal(1000)
	assert.False(t, c.PassiveActive())
	assert.InDelta(t, 0.5, c.Stats().DamageReduction(), 1e-9, "talent reduction kept after enrage ends")
}
