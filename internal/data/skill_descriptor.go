package data

import "time"

// SkillKind определяет, какой эффект срабатывает при активации скилла.
type SkillKind string

const (
	SkillStrike     SkillKind = "strike"      // Outgoing damage to target in range
	SkillBackstab   SkillKind = "backstab"    // Strike with positional bonus
	SkillCharge     SkillKind = "charge"      // Warrior rush along facing, hits on contact
	SkillHeal       SkillKind = "heal"        // Restores Damage health to self
	SkillManaShield SkillKind = "mana_shield" // Mage: incoming hits drain stamina first
	SkillVanish     SkillKind = "vanish"      // Rogue: stealth without moving
)

// SkillDescriptor — static description of one roster entry.
// Damage doubles as heal amount for SkillHeal.
type SkillDescriptor struct {
	ID          string        `yaml:"id"`
	Kind        SkillKind     `yaml:"kind"`
	StaminaCost float64       `yaml:"stamina_cost"`
	Cooldown    time.Duration `yaml:"cooldown"`
	Damage      float64       `yaml:"damage"`
	Range       float64       `yaml:"range"`
	Duration    time.Duration `yaml:"duration"`
	Speed       float64       `yaml:"speed"`
}

// IsOffensive returns true if the skill deals outgoing damage.
func (s *SkillDescriptor) IsOffensive() bool {
	switch s.Kind {
	case SkillStrike, SkillBackstab, SkillCharge:
		return true
	default:
		return false
	}
}
