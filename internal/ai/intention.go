package ai

// Intention represents the boss AI state.
type Intention int32

const (
	// IntentionIdle - no live opponent in range, or AI stopped
	IntentionIdle Intention = iota
	// IntentionAttack - swinging at the nearest opponent every attack interval
	IntentionAttack
	// IntentionDead - boss health reached zero; terminal
	IntentionDead
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionAttack:
		return "ATTACK"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
