package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick AI debug logs.
// The session loop ticks many times a second, so the check must be cheap.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables AI debug logs.
// Called once from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if AI debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
