package data

import (
	"fmt"
	"slices"
	"time"
)

// Class identifies a playable archetype.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassRogue   Class = "rogue"
)

// Classes lists all playable classes in display order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue}

// IsValid reports whether c is a known class key.
func (c Class) IsValid() bool {
	return slices.Contains(Classes, c)
}

// ParseClass converts a config string into a Class.
func ParseClass(s string) (Class, error) {
	c := Class(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown class %q", s)
	}
	return c, nil
}

// Shared combat tuning.
const (
	DefaultCritChance     = 0.2
	DefaultCritMultiplier = 2.0

	MaxDamageReduction = 0.75

	WarriorDashHitRange    = 100.0
	WarriorKnockbackScale  = 5.0
	WarriorEnrageThreshold = 0.3
	WarriorEnrageReduction = 0.3

	MageTeleportDistance = 200.0
	MageTeleportWindow   = 100 * time.Millisecond

	RogueStealthDuration = 1500 * time.Millisecond
)

// BaseStats seeds a character's StatBlock.
type BaseStats struct {
	MaxHealth    float64 `yaml:"max_health"`
	MaxStamina   float64 `yaml:"max_stamina"`
	Speed        float64 `yaml:"speed"`
	StaminaRegen float64 `yaml:"stamina_regen"` // per frame
}

// DashTuning holds dash parameters. Damage is zero for classes whose dash does not hit.
type DashTuning struct {
	Speed       float64       `yaml:"speed"`
	Duration    time.Duration `yaml:"duration"`
	Cooldown    time.Duration `yaml:"cooldown"`
	StaminaCost float64       `yaml:"stamina_cost"`
	Damage      float64       `yaml:"damage"`
}

// ArchetypeDefinition is the static per-class tuning record.
// Shared by every character of that class; never mutated after loading.
type ArchetypeDefinition struct {
	Class Class  `yaml:"-"`
	Name  string `yaml:"-"`

	Base BaseStats  `yaml:"base"`
	Dash DashTuning `yaml:"dash"`

	// Primary (ranged) attack
	AttackDamage float64 `yaml:"attack_damage"`
	AttackCost   float64 `yaml:"attack_cost"`

	CritChance     float64 `yaml:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier"`

	Skills []SkillDescriptor `yaml:"-"`
}

// Skill returns the descriptor at roster index i, or nil if out of range.
func (d *ArchetypeDefinition) Skill(i int) *SkillDescriptor {
	if i < 0 || i >= len(d.Skills) {
		return nil
	}
	return &d.Skills[i]
}

// archetypeTable is indexed by class key.
var archetypeTable map[Class]*ArchetypeDefinition

func init() {
	LoadArchetypes()
}

// LoadArchetypes (re)builds the archetype table from the built-in definitions.
func LoadArchetypes() {
	archetypeTable = make(map[Class]*ArchetypeDefinition, len(archetypeDefs))
	for i := range archetypeDefs {
		def := archetypeDefs[i]
		def.Skills = slices.Clone(def.Skills)
		archetypeTable[def.Class] = &def
	}
}

// GetArchetype returns the definition for a class, or nil if unknown.
func GetArchetype(c Class) *ArchetypeDefinition {
	return archetypeTable[c]
}

var archetypeDefs = []ArchetypeDefinition{
	{
		Class: ClassWarrior,
		Name:  "Warrior",
		Base: BaseStats{
			MaxHealth:    150,
			MaxStamina:   100,
			Speed:        200,
			StaminaRegen: 0.3,
		},
		Dash: DashTuning{
			Speed:       600,
			Duration:    200 * time.Millisecond,
			Cooldown:    0,
			StaminaCost: 25,
			Damage:      30,
		},
		AttackDamage:   12,
		AttackCost:     5,
		CritChance:     0,
		CritMultiplier: DefaultCritMultiplier,
		Skills: []SkillDescriptor{
			{ID: "cleave", Kind: SkillStrike, StaminaCost: 20, Cooldown: 3 * time.Second, Damage: 40, Range: 150},
			{ID: "charge", Kind: SkillCharge, StaminaCost: 30, Cooldown: 8 * time.Second, Damage: 60, Range: 80, Duration: 400 * time.Millisecond, Speed: 700},
			{ID: "second_wind", Kind: SkillHeal, StaminaCost: 25, Cooldown: 15 * time.Second, Damage: 35},
		},
	},
	{
		Class: ClassMage,
		Name:  "Mage",
		Base: BaseStats{
			MaxHealth:    80,
			MaxStamina:   150,
			Speed:        220,
			StaminaRegen: 0.5,
		},
		Dash: DashTuning{
			Speed:       0,
			Duration:    MageTeleportWindow,
			Cooldown:    0,
			StaminaCost: 30,
		},
		AttackDamage:   18,
		AttackCost:     8,
		CritChance:     0,
		CritMultiplier: DefaultCritMultiplier,
		Skills: []SkillDescriptor{
			{ID: "arcane_bolt", Kind: SkillStrike, StaminaCost: 15, Cooldown: time.Second, Damage: 35, Range: 400},
			{ID: "mana_shield", Kind: SkillManaShield, StaminaCost: 20, Cooldown: 12 * time.Second, Duration: 5 * time.Second},
			{ID: "frost_nova", Kind: SkillStrike, StaminaCost: 40, Cooldown: 10 * time.Second, Damage: 50, Range: 200},
		},
	},
	{
		Class: ClassRogue,
		Name:  "Rogue",
		Base: BaseStats{
			MaxHealth:    100,
			MaxStamina:   120,
			Speed:        260,
			StaminaRegen: 0.4,
		},
		Dash: DashTuning{
			Speed:       700,
			Duration:    150 * time.Millisecond,
			Cooldown:    0,
			StaminaCost: 20,
		},
		AttackDamage:   10,
		AttackCost:     4,
		CritChance:     DefaultCritChance,
		CritMultiplier: DefaultCritMultiplier,
		Skills: []SkillDescriptor{
			{ID: "backstab", Kind: SkillBackstab, StaminaCost: 15, Cooldown: 2 * time.Second, Damage: 45, Range: 120},
			{ID: "fan_of_knives", Kind: SkillStrike, StaminaCost: 30, Cooldown: 6 * time.Second, Damage: 25, Range: 250},
			{ID: "vanish", Kind: SkillVanish, StaminaCost: 35, Cooldown: 14 * time.Second, Duration: 2 * time.Second},
		},
	},
}
