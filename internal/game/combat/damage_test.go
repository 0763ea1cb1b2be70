package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampReduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside", 0.4, 0.4},
		{"at cap", 0.75, 0.75},
		{"above cap", 0.9, 0.75},
		{"negative", -0.2, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClampReduction(tt.in))
		})
	}
}

func TestMitigate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amount    float64
		reduction float64
		want      float64
	}{
		{"no reduction", 50, 0, 50},
		{"ten percent", 50, 0.1, 45},
		{"capped", 100, 2, 25},
		{"negative amount", -10, 0.1, 0},
		{"zero amount", 0, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Mitigate(tt.amount, tt.reduction), 1e-9)
		})
	}
}

func TestRollCrit(t *testing.T) {
	t.Parallel()

	fixed := func(v float64) Roller { return func() float64 { return v } }

	tests := []struct {
		name     string
		roll     float64
		chance   float64
		wantDmg  float64
		wantCrit bool
	}{
		{"crit", 0.1, 0.2, 200, true},
		{"boundary is not a crit", 0.2, 0.2, 100, false},
		{"miss", 0.5, 0.2, 100, false},
		{"zero chance", 0, 0, 100, false},
		{"certain", 0.99, 1, 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dmg, crit := RollCrit(fixed(tt.roll), 100, tt.chance, 2)
			assert.Equal(t, tt.wantDmg, dmg)
			assert.Equal(t, tt.wantCrit, crit)
		})
	}
}

func TestRollCrit_NilRollerUsesDefault(t *testing.T) {
	t.Parallel()

	dmg, crit := RollCrit(nil, 100, 1, 3)
	assert.True(t, crit)
	assert.Equal(t, 300.0, dmg)
}

func TestGetPosition(t *testing.T) {
	t.Parallel()

	// Target at origin; attacker placement varies.
	tests := []struct {
		name     string
		ax, ay   float64
		rotation float64
		want     Position
	}{
		{"behind", -10, 0, 0, PositionBack},
		{"in front", 10, 0, 0, PositionFront},
		{"left side", 0, -10, 0, PositionSide},
		{"right side", 0, 10, 0, PositionSide},
		{"behind rotated", 0, 10, -math.Pi / 2, PositionBack},
		{"behind across wrap", -10, 0.5, 2 * math.Pi, PositionBack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetPosition(tt.ax, tt.ay, 0, 0, tt.rotation))
		})
	}
}

func TestBackstabBonus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.5, BackstabBonus(PositionBack))
	assert.Equal(t, 1.2, BackstabBonus(PositionSide))
	assert.Equal(t, 1.0, BackstabBonus(PositionFront))
}

func TestKnockback(t *testing.T) {
	t.Parallel()

	x, y := Knockback(50, -20, 5)
	assert.Equal(t, 250.0, x)
	assert.Equal(t, -100.0, y)
}

func TestPosition_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "back", PositionBack.String())
	assert.Equal(t, "unknown", Position(9).String())
}
