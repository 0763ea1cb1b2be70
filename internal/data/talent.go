package data

import "fmt"

// StatKind names a StatBlock field a talent effect can touch.
type StatKind string

const (
	StatHealth           StatKind = "health"
	StatMaxHealth        StatKind = "max_health"
	StatStamina          StatKind = "stamina"
	StatMaxStamina       StatKind = "max_stamina"
	StatSpeed            StatKind = "speed"
	StatStaminaRegen     StatKind = "stamina_regen"
	StatDamageMultiplier StatKind = "damage_multiplier"
	StatDamageReduction  StatKind = "damage_reduction"
	StatCritChance       StatKind = "crit_chance"
)

// EffectOp is how an effect value combines with the current stat.
type EffectOp string

const (
	OpAdd      EffectOp = "add"
	OpMultiply EffectOp = "mul"
)

// TalentEffect — declarative stat mutation: Stat = Stat (op) Value.
type TalentEffect struct {
	Stat  StatKind
	Op    EffectOp
	Value float64
}

// TalentID is "<class>.<branch>.<tier>", e.g. "warrior.bulwark.2".
type TalentID string

// MaxTalentTier is the length of every branch chain.
const MaxTalentTier = 3

// Talent описывает постоянное улучшение из дерева талантов.
// Tier N требует tier N-1 той же ветки.
type Talent struct {
	ID      TalentID
	Class   Class
	Branch  string
	Tier    int
	Name    string
	Cost    int
	Effects []TalentEffect
}

// Prerequisite returns the ID of the talent this one requires.
// Tier 1 talents have no prerequisite and return false.
func (t *Talent) Prerequisite() (TalentID, bool) {
	if t.Tier <= 1 {
		return "", false
	}
	return MakeTalentID(t.Class, t.Branch, t.Tier-1), true
}

// MakeTalentID builds a catalog key.
func MakeTalentID(class Class, branch string, tier int) TalentID {
	return TalentID(fmt.Sprintf("%s.%s.%d", class, branch, tier))
}
