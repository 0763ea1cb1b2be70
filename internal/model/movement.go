package model

// MovementState consolidates the transient mobility flags of a character.
// Invulnerability is derived from the state, never stored separately.
type MovementState int32

const (
	// MovementIdle - free to move, dash and take hits
	MovementIdle MovementState = iota
	// MovementDashing - velocity dash in progress
	MovementDashing
	// MovementTeleporting - short window right after a blink
	MovementTeleporting
	// MovementStealthed - hidden after a rogue dash or vanish
	MovementStealthed
)

// String returns human-readable state name
func (s MovementState) String() string {
	switch s {
	case MovementIdle:
		return "IDLE"
	case MovementDashing:
		return "DASHING"
	case MovementTeleporting:
		return "TELEPORTING"
	case MovementStealthed:
		return "STEALTHED"
	default:
		return "UNKNOWN"
	}
}

// Invulnerable reports whether incoming hits are fully absorbed in this state.
func (s MovementState) Invulnerable() bool {
	return s != MovementIdle
}

// blocksDash reports whether a new dash must be rejected in this state.
// Stealth does not block: a rogue may chain dashes while hidden.
func (s MovementState) blocksDash() bool {
	return s == MovementDashing || s == MovementTeleporting
}
