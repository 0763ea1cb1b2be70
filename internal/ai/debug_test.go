package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugLoggingToggle(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	for _, enabled := range []bool{true, false, true} {
		EnableDebugLogging(enabled)
		assert.Equal(t, enabled, IsDebugEnabled())
	}
}

func TestDebugLogging_ConcurrentWithTicks(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	m := NewTickManager()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 500 {
			EnableDebugLogging(i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for range 500 {
			m.TickAll(0, 0)
			_ = IsDebugEnabled()
		}
	}()
	wg.Wait()
}
