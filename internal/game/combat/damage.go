package combat

import (
	"math"
	"math/rand/v2"
)

// MaxDamageReduction is the diminishing-returns ceiling for damage reduction.
const MaxDamageReduction = 0.75

// Roller returns a uniform value in [0, 1). math/rand/v2.Float64 by default;
// tests inject a fixed sequence.
type Roller func() float64

// DefaultRoller is the production random source.
var DefaultRoller Roller = rand.Float64

// ClampReduction clamps a damage-reduction fraction to [0, MaxDamageReduction].
func ClampReduction(r float64) float64 {
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	if r > MaxDamageReduction {
		return MaxDamageReduction
	}
	return r
}

// Mitigate returns amount after reduction. Negative input is treated as zero.
//
// Formula: amount × (1 - reduction), reduction clamped to [0, 0.75].
func Mitigate(amount, reduction float64) float64 {
	if amount <= 0 {
		return 0
	}
	return amount * (1 - ClampReduction(reduction))
}

// RollCrit rolls a critical hit against chance.
// Returns base×multiplier and true on crit, base and false otherwise.
func RollCrit(roll Roller, base, chance, multiplier float64) (float64, bool) {
	if roll == nil {
		roll = DefaultRoller
	}
	if chance <= 0 {
		return base, false
	}
	if roll() < chance {
		return base * multiplier, true
	}
	return base, false
}

// --- Position / facing ---

// Position represents relative position of attacker to target.
type Position int

const (
	PositionFront Position = iota
	PositionSide
	PositionBack
)

func (p Position) String() string {
	switch p {
	case PositionFront:
		return "front"
	case PositionSide:
		return "side"
	case PositionBack:
		return "back"
	default:
		return "unknown"
	}
}

// GetPosition classifies where the attacker stands relative to the target's facing.
//
// Algorithm:
//  1. Heading from attacker toward target: atan2(dy, dx).
//  2. Difference with the target's rotation, normalized to [0, π].
//  3. Within 45° → BACK (attacker looks where the target looks), 45°–135° → SIDE, else FRONT.
func GetPosition(attackerX, attackerY, targetX, targetY, targetRotation float64) Position {
	headingTo := math.Atan2(targetY-attackerY, targetX-attackerX)

	diff := math.Abs(math.Remainder(targetRotation-headingTo, 2*math.Pi))

	switch {
	case diff <= math.Pi/4:
		return PositionBack
	case diff <= 3*math.Pi/4:
		return PositionSide
	default:
		return PositionFront
	}
}

// BackstabBonus returns the positional multiplier for backstab skills.
// Behind: ×1.5, Side: ×1.2, Front: ×1.0.
func BackstabBonus(pos Position) float64 {
	switch pos {
	case PositionBack:
		return 1.5
	case PositionSide:
		return 1.2
	default:
		return 1.0
	}
}

// Knockback returns the impulse pushed onto a target separated from the
// attacker by (dx, dy): proportional to the separation vector.
func Knockback(dx, dy, scale float64) (float64, float64) {
	return dx * scale, dy * scale
}
