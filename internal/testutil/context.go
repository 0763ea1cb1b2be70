package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout — context теста с дедлайном d; отменяется в t.Cleanup.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

// ContextWithCancel is ContextWithTimeout without a deadline; the test may
// cancel early, Cleanup cancels regardless.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}
