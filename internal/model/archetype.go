package model

import (
	"log/slog"

	"github.com/udisondev/riftborn/internal/data"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// Archetype is the class behavior bound to one character: a tagged variant
// keyed by data.Class. Per-variant behavior is dispatched with a switch in
// resolveDash, calculateDamage and updatePassive; shared steps live in helpers.
type Archetype struct {
	class data.Class
	def   *data.ArchetypeDefinition

	// Warrior enrage: the reduction delta actually applied on entry, removed verbatim on exit.
	enraged     bool
	enrageDelta float64
}

func newArchetype(def *data.ArchetypeDefinition) Archetype {
	return Archetype{class: def.Class, def: def}
}

// Class returns the variant tag.
func (a *Archetype) Class() data.Class { return a.class }

// Definition returns the shared tuning record.
func (a *Archetype) Definition() *data.ArchetypeDefinition { return a.def }

// PassiveActive reports whether the class passive is currently engaged (Warrior enrage).
func (a *Archetype) PassiveActive() bool { return a.enraged }

// calculateDamage is the outgoing-damage hook. Only Rogue overrides it with a crit roll;
// every other class passes base through.
func (a *Archetype) calculateDamage(c *Character, base float64) float64 {
	switch a.class {
	case data.ClassRogue:
		chance := a.def.CritChance + c.stats.critChanceBonus
		dmg, crit := combat.RollCrit(c.roll, base, chance, a.def.CritMultiplier)
		if crit {
			c.crits++
			slog.Debug("critical hit", "character", c.name, "base", base, "damage", dmg)
			if c.hooks.OnCrit != nil {
				c.hooks.OnCrit(dmg)
			}
		}
		return dmg
	default:
		return base
	}
}

// updatePassive runs the class passive after any health change.
func (a *Archetype) updatePassive(c *Character) {
	switch a.class {
	case data.ClassWarrior:
		a.updateEnrage(c)
	}
}

// rebaseEnrage runs change with the enrage delta lifted, then re-applies it
// against the new base. A talent picked up while enraged is never capped into
// the delta and so survives the exit.
func (a *Archetype) rebaseEnrage(c *Character, change func()) {
	if !a.enraged {
		change()
		return
	}
	c.stats.adjustDamageReduction(-a.enrageDelta)
	change()
	a.enrageDelta = c.stats.adjustDamageReduction(data.WarriorEnrageReduction)
}

// updateEnrage toggles NORMAL ⇄ ENRAGED around the health threshold.
// Entry and exit move damageReduction by one recorded delta so talent-sourced
// reduction is never recomputed or clobbered.
func (a *Archetype) updateEnrage(c *Character) {
	threshold := c.stats.maxHealth * data.WarriorEnrageThreshold
	below := c.stats.health < threshold

	switch {
	case below && !a.enraged:
		a.enrageDelta = c.stats.adjustDamageReduction(data.WarriorEnrageReduction)
		a.enraged = true
		slog.Debug("enrage on", "character", c.name, "delta", a.enrageDelta)
		if c.hooks.OnEnrage != nil {
			c.hooks.OnEnrage(true)
		}
	case !below && a.enraged:
		c.stats.adjustDamageReduction(-a.enrageDelta)
		a.enraged = false
		a.enrageDelta = 0
		slog.Debug("enrage off", "character", c.name)
		if c.hooks.OnEnrage != nil {
			c.hooks.OnEnrage(false)
		}
	}
}
