package ai

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/model"
)

// Opponent is what the boss can attack. *model.Character satisfies it.
type Opponent interface {
	Position() model.Vec2
	TakeDamage(amount float64) float64
	IsDead() bool
}

// OpponentsFunc returns the current opponents. Called once per tick.
type OpponentsFunc func() []Opponent

// BossAI drives a Boss: IDLE → ATTACK → IDLE, DEAD once the boss falls.
// Entering ATTACK starts a wind-up of one attack interval before the first swing.
type BossAI struct {
	boss      *Boss
	cfg       config.Boss
	opponents OpponentsFunc

	running    bool
	intention  Intention
	nextAttack time.Duration
	swings     int
}

// NewBossAI creates the boss controller.
func NewBossAI(boss *Boss, cfg config.Boss, opponents OpponentsFunc) *BossAI {
	return &BossAI{
		boss:      boss,
		cfg:       cfg,
		opponents: opponents,
	}
}

// Start starts AI controller
func (ai *BossAI) Start() {
	ai.running = true
	slog.Debug("boss AI started", "boss", ai.boss.Name())
}

// Stop stops AI controller
func (ai *BossAI) Stop() {
	ai.running = false
	if ai.intention != IntentionDead {
		ai.SetIntention(IntentionIdle)
	}
	slog.Debug("boss AI stopped", "boss", ai.boss.Name(), "swings", ai.swings)
}

// SetIntention sets AI intention
func (ai *BossAI) SetIntention(intention Intention) {
	old := ai.intention
	ai.intention = intention

	if old != intention && IsDebugEnabled() {
		slog.Debug("AI intention changed",
			"boss", ai.boss.Name(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention returns current AI intention
func (ai *BossAI) CurrentIntention() Intention {
	return ai.intention
}

// Swings returns the number of attacks performed.
func (ai *BossAI) Swings() int { return ai.swings }

// Tick advances the boss: knockback physics first, then the intention machine.
func (ai *BossAI) Tick(now, delta time.Duration) {
	if !ai.running || ai.intention == IntentionDead {
		return
	}

	ai.boss.Update(delta)

	if ai.boss.IsDead() {
		ai.SetIntention(IntentionDead)
		return
	}

	target := ai.nearest()
	if target == nil {
		ai.SetIntention(IntentionIdle)
		return
	}

	if ai.intention != IntentionAttack {
		ai.SetIntention(IntentionAttack)
		ai.nextAttack = now + ai.cfg.AttackInterval
	}

	ai.boss.FaceTowards(target.Position())
	if now < ai.nextAttack {
		return
	}

	dealt := target.TakeDamage(ai.cfg.Damage)
	ai.swings++
	ai.nextAttack = now + ai.cfg.AttackInterval

	if IsDebugEnabled() {
		slog.Debug("boss attack",
			"boss", ai.boss.Name(),
			"damage", ai.cfg.Damage,
			"dealt", dealt,
			"at", now)
	}
}

// nearest returns the closest live opponent within attack range, or nil.
func (ai *BossAI) nearest() Opponent {
	var (
		best     Opponent
		bestDist = math.Inf(1)
	)
	for _, o := range ai.opponents() {
		if o == nil || o.IsDead() {
			continue
		}
		d := ai.boss.Position().DistanceTo(o.Position())
		if ai.cfg.AttackRange > 0 && d > ai.cfg.AttackRange {
			continue
		}
		if d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}
