package model

// Target is the read/damage contract of an external entity (the boss) that
// archetypes and skills interact with.
type Target interface {
	Position() Vec2
	// Rotation is the facing heading in radians.
	Rotation() float64
	// TakeDamage applies damage and returns the amount actually applied.
	TakeDamage(amount float64) float64
}

// Knockbackable is implemented by targets that can be pushed around.
type Knockbackable interface {
	ApplyImpulse(impulse Vec2)
}

// Hooks are presentation and progression callbacks. All fields are optional.
// They are called synchronously from inside the triggering operation.
type Hooks struct {
	// OnHitFeedback fires on every non-invulnerable hit (opacity flicker).
	OnHitFeedback func(amount float64)
	// OnShieldDown fires when the mana shield breaks or expires (visual teardown).
	OnShieldDown func()
	// OnShieldOverflow reports health lost through a breaking mana shield, which
	// TakeDamage itself reports as zero.
	OnShieldOverflow func(healthLost float64)
	OnCrit           func(damage float64)
	OnStealth        func(active bool)
	OnEnrage         func(active bool)
	OnDeath          func()
}
