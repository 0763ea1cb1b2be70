package ai

import "time"

// Controller is a tick-driven AI attached to one arena entity.
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// SetIntention sets AI intention
	SetIntention(intention Intention)

	// CurrentIntention returns current AI intention
	CurrentIntention() Intention

	// Tick advances the AI to game time now; delta is the time since the previous tick.
	Tick(now, delta time.Duration)
}
