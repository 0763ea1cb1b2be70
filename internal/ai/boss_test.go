package ai

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/riftborn/internal/model"
)

func newTestBoss() *Boss {
	return NewBoss("Training Golem", 500, model.V(640, 360), model.DefaultBounds)
}

func TestBoss_TakeDamage(t *testing.T) {
	b := newTestBoss()

	assert.Equal(t, 100.0, b.TakeDamage(100))
	assert.Equal(t, 400.0, b.Health())
	assert.Zero(t, b.TakeDamage(-5))
	assert.Zero(t, b.TakeDamage(0))

	assert.Equal(t, 400.0, b.TakeDamage(1000), "capped at remaining health")
	assert.True(t, b.IsDead())
	assert.Zero(t, b.TakeDamage(10))
	assert.Equal(t, 500.0, b.DamageTaken())
	assert.Equal(t, 2, b.Hits())
}

func TestBoss_ImpulseDecays(t *testing.T) {
	b := newTestBoss()

	b.ApplyImpulse(model.V(250, 0))
	b.Update(100 * time.Millisecond)
	assert.InDelta(t, 665, b.Position().X, 1e-9)
	assert.InDelta(t, 100, b.Impulse().X, 1e-9)

	b.Update(100 * time.Millisecond)
	assert.InDelta(t, 675, b.Position().X, 1e-9)

	for range 20 {
		b.Update(100 * time.Millisecond)
	}
	assert.True(t, b.Impulse().IsZero(), "impulse dies out")
}

func TestBoss_ImpulseClampedToBounds(t *testing.T) {
	b := NewBoss("Golem", 500, model.V(1200, 360), model.DefaultBounds)

	b.ApplyImpulse(model.V(5000, 0))
	b.Update(time.Second)

	assert.Equal(t, 1230.0, b.Position().X)
}

func TestBoss_ImpulseIgnoredWhenDead(t *testing.T) {
	b := newTestBoss()
	b.TakeDamage(500)

	b.ApplyImpulse(model.V(100, 0))
	assert.True(t, b.Impulse().IsZero())
}

func TestBoss_FaceTowards(t *testing.T) {
	b := newTestBoss()

	b.FaceTowards(model.V(640, 500))
	assert.InDelta(t, math.Pi/2, b.Rotation(), 1e-9)

	b.FaceTowards(b.Position())
	assert.InDelta(t, math.Pi/2, b.Rotation(), 1e-9, "same point keeps rotation")
}
