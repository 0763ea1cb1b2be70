package testutil

import "errors"

// ErrSimulated is returned by FlakyRepository when a failure is armed.
var ErrSimulated = errors.New("simulated error for testing")
