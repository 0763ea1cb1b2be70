package testutil

import (
	"time"

	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/game/combat"
)

// ArenaConfig returns the default arena config with a fast frame and no time
// limit, suitable for driving a session with Step.
func ArenaConfig() config.Arena {
	cfg := config.DefaultArena()
	cfg.FrameInterval = time.Millisecond
	cfg.SessionDuration = 0
	return cfg
}

// FixedRoller always returns v.
func FixedRoller(v float64) combat.Roller {
	return func() float64 { return v }
}

// SequenceRoller returns vals in order, then repeats the last one.
func SequenceRoller(vals ...float64) combat.Roller {
	i := 0
	return func() float64 {
		if len(vals) == 0 {
			return 0
		}
		v := vals[min(i, len(vals)-1)]
		i++
		return v
	}
}
