package data

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// TalentTable — global talent catalog, built by LoadTalents().
var TalentTable map[TalentID]*Talent

func init() {
	if err := LoadTalents(); err != nil {
		panic("loading talent catalog: " + err.Error())
	}
}

// LoadTalents строит каталог из talentDefs и проверяет структуру веток.
func LoadTalents() error {
	table := make(map[TalentID]*Talent, len(talentDefs))
	for i := range talentDefs {
		t := talentDefs[i]
		t.ID = MakeTalentID(t.Class, t.Branch, t.Tier)
		if _, dup := table[t.ID]; dup {
			return fmt.Errorf("duplicate talent %s", t.ID)
		}
		table[t.ID] = &t
	}
	if err := validateTalents(table); err != nil {
		return err
	}
	TalentTable = table
	slog.Debug("loaded talents", "count", len(table))
	return nil
}

// validateTalents checks the forest shape: every tier > 1 has its predecessor in the same branch.
func validateTalents(table map[TalentID]*Talent) error {
	for id, t := range table {
		if !t.Class.IsValid() {
			return fmt.Errorf("talent %s: unknown class %q", id, t.Class)
		}
		if t.Tier < 1 || t.Tier > MaxTalentTier {
			return fmt.Errorf("talent %s: tier %d out of range", id, t.Tier)
		}
		if len(t.Effects) == 0 {
			return fmt.Errorf("talent %s: no effects", id)
		}
		if pre, ok := t.Prerequisite(); ok {
			if _, exists := table[pre]; !exists {
				return fmt.Errorf("talent %s: missing prerequisite %s", id, pre)
			}
		}
	}
	return nil
}

// GetTalent returns a talent by ID, or nil if not in the catalog.
func GetTalent(id TalentID) *Talent {
	return TalentTable[id]
}

// TalentsForClass returns the class's talents ordered by branch, then tier.
func TalentsForClass(c Class) []*Talent {
	var out []*Talent
	for _, t := range TalentTable {
		if t.Class == c {
			out = append(out, t)
		}
	}
	SortTalents(out)
	return out
}

// SortTalents orders talents by class, branch and tier, so applying them in order
// always applies a prerequisite before its dependents.
func SortTalents(ts []*Talent) {
	slices.SortFunc(ts, func(a, b *Talent) int {
		return cmp.Or(
			cmp.Compare(a.Class, b.Class),
			cmp.Compare(a.Branch, b.Branch),
			cmp.Compare(a.Tier, b.Tier),
		)
	})
}

func add(stat StatKind, v float64) TalentEffect { return TalentEffect{Stat: stat, Op: OpAdd, Value: v} }
func mul(stat StatKind, v float64) TalentEffect {
	return TalentEffect{Stat: stat, Op: OpMultiply, Value: v}
}

var talentDefs = []Talent{
	// --- Warrior ---
	{Class: ClassWarrior, Branch: "bulwark", Tier: 1, Name: "Thick Hide", Cost: 50,
		Effects: []TalentEffect{add(StatDamageReduction, 0.10)}},
	{Class: ClassWarrior, Branch: "bulwark", Tier: 2, Name: "Iron Skin", Cost: 100,
		Effects: []TalentEffect{add(StatDamageReduction, 0.10)}},
	{Class: ClassWarrior, Branch: "bulwark", Tier: 3, Name: "Unbreakable", Cost: 200,
		Effects: []TalentEffect{add(StatDamageReduction, 0.15)}},
	{Class: ClassWarrior, Branch: "might", Tier: 1, Name: "Heavy Blows", Cost: 50,
		Effects: []TalentEffect{add(StatDamageMultiplier, 0.10)}},
	{Class: ClassWarrior, Branch: "might", Tier: 2, Name: "Brutality", Cost: 100,
		Effects: []TalentEffect{add(StatDamageMultiplier, 0.15)}},
	{Class: ClassWarrior, Branch: "might", Tier: 3, Name: "Titan Grip", Cost: 200,
		Effects: []TalentEffect{add(StatDamageMultiplier, 0.25)}},
	{Class: ClassWarrior, Branch: "vigor", Tier: 1, Name: "Hardy", Cost: 50,
		Effects: []TalentEffect{add(StatMaxHealth, 20), add(StatHealth, 20)}},
	{Class: ClassWarrior, Branch: "vigor", Tier: 2, Name: "Stalwart", Cost: 100,
		Effects: []TalentEffect{add(StatMaxHealth, 30), add(StatHealth, 30)}},
	{Class: ClassWarrior, Branch: "vigor", Tier: 3, Name: "Juggernaut", Cost: 200,
		Effects: []TalentEffect{add(StatMaxHealth, 50), add(StatHealth, 50), add(StatMaxStamina, 20)}},

	// --- Mage ---
	{Class: ClassMage, Branch: "arcana", Tier: 1, Name: "Deep Reserves", Cost: 50,
		Effects: []TalentEffect{add(StatMaxStamina, 20), add(StatStamina, 20)}},
	{Class: ClassMage, Branch: "arcana", Tier: 2, Name: "Wellspring", Cost: 100,
		Effects: []TalentEffect{add(StatMaxStamina, 30), add(StatStamina, 30)}},
	{Class: ClassMage, Branch: "arcana", Tier: 3, Name: "Archmage", Cost: 200,
		Effects: []TalentEffect{add(StatMaxStamina, 40), add(StatStamina, 40), add(StatDamageMultiplier, 0.15)}},
	{Class: ClassMage, Branch: "flow", Tier: 1, Name: "Attunement", Cost: 50,
		Effects: []TalentEffect{add(StatStaminaRegen, 0.10)}},
	{Class: ClassMage, Branch: "flow", Tier: 2, Name: "Channeling", Cost: 100,
		Effects: []TalentEffect{add(StatStaminaRegen, 0.15)}},
	{Class: ClassMage, Branch: "flow", Tier: 3, Name: "Ley Tap", Cost: 200,
		Effects: []TalentEffect{mul(StatStaminaRegen, 1.5)}},
	{Class: ClassMage, Branch: "warding", Tier: 1, Name: "Ward", Cost: 50,
		Effects: []TalentEffect{add(StatDamageReduction, 0.05)}},
	{Class: ClassMage, Branch: "warding", Tier: 2, Name: "Greater Ward", Cost: 100,
		Effects: []TalentEffect{add(StatDamageReduction, 0.10)}},
	{Class: ClassMage, Branch: "warding", Tier: 3, Name: "Aegis", Cost: 200,
		Effects: []TalentEffect{add(StatDamageReduction, 0.15), add(StatMaxHealth, 20), add(StatHealth, 20)}},

	// --- Rogue ---
	{Class: ClassRogue, Branch: "precision", Tier: 1, Name: "Keen Eye", Cost: 50,
		Effects: []TalentEffect{add(StatCritChance, 0.05)}},
	{Class: ClassRogue, Branch: "precision", Tier: 2, Name: "Weak Spots", Cost: 100,
		Effects: []TalentEffect{add(StatCritChance, 0.05)}},
	{Class: ClassRogue, Branch: "precision", Tier: 3, Name: "Assassinate", Cost: 200,
		Effects: []TalentEffect{add(StatCritChance, 0.10)}},
	{Class: ClassRogue, Branch: "agility", Tier: 1, Name: "Light Step", Cost: 50,
		Effects: []TalentEffect{add(StatSpeed, 15)}},
	{Class: ClassRogue, Branch: "agility", Tier: 2, Name: "Fleet", Cost: 100,
		Effects: []TalentEffect{add(StatSpeed, 20), add(StatStaminaRegen, 0.05)}},
	{Class: ClassRogue, Branch: "agility", Tier: 3, Name: "Windwalker", Cost: 200,
		Effects: []TalentEffect{mul(StatSpeed, 1.10)}},
	{Class: ClassRogue, Branch: "lethality", Tier: 1, Name: "Serrated Edge", Cost: 50,
		Effects: []TalentEffect{add(StatDamageMultiplier, 0.10)}},
	{Class: ClassRogue, Branch: "lethality", Tier: 2, Name: "Poisoned Blades", Cost: 100,
		Effects: []TalentEffect{add(StatDamageMultiplier, 0.15)}},
	{Class: ClassRogue, Branch: "lethality", Tier: 3, Name: "Deathmark", Cost: 200,
		Effects: []TalentEffect{mul(StatDamageMultiplier, 1.20)}},
}
