package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/riftborn/internal/data"
)

// stubTarget records hits and impulses.
type stubTarget struct {
	pos      Vec2
	rotation float64
	taken    []float64
	impulses []Vec2
}

func (s *stubTarget) Position() Vec2    { return s.pos }
func (s *stubTarget) Rotation() float64 { return s.rotation }
func (s *stubTarget) TakeDamage(amount float64) float64 {
	s.taken = append(s.taken, amount)
	return amount
}
func (s *stubTarget) ApplyImpulse(v Vec2) { s.impulses = append(s.impulses, v) }

func (s *stubTarget) total() float64 {
	var sum float64
	for _, v := range s.taken {
		sum += v
	}
	return sum
}

func fixedRoll(v float64) func() float64 {
	return func() float64 { return v }
}

// newTestCharacter creates a character of class at the playfield center.
func newTestCharacter(t *testing.T, class data.Class, opts ...Option) *Character {
	t.Helper()
	def := data.GetArchetype(class)
	require.NotNil(t, def, "archetype %s", class)
	opts = append([]Option{WithName("Test" + def.Name)}, opts...)
	return NewCharacter(def, opts...)
}
