package service_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo-hub/internal/service"
)

func TestTimerFiresOnce(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	var fired atomic.Int32
	registry.Schedule(1, time.Now().Add(20*time.Millisecond), func() {
		fired.Add(1)
	})

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, registry.Armed(1))
}

func TestTimerDoesNotFireEarly(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	var fired atomic.Int32
	registry.Schedule(1, time.Now().Add(200*time.Millisecond), func() {
		fired.Add(1)
	})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.True(t, registry.Armed(1))
}

func TestTimerCancel(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	var fired atomic.Int32
	registry.Schedule(1, time.Now().Add(30*time.Millisecond), func() {
		fired.Add(1)
	})
	registry.Cancel(1)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestTimerCancelIsIdempotent(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	// Unknown and repeated cancels must not panic or error.
	registry.Cancel(42)
	registry.Schedule(1, time.Now().Add(10*time.Millisecond), func() {})
	registry.Cancel(1)
	registry.Cancel(1)
}

func TestTimerRescheduleReplaces(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	var first, second atomic.Int32
	registry.Schedule(1, time.Now().Add(30*time.Millisecond), func() { first.Add(1) })
	registry.Schedule(1, time.Now().Add(60*time.Millisecond), func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestTimerPastDueFiresImmediately(t *testing.T) {
	registry := service.NewTimerRegistry()
	defer registry.Shutdown()

	var fired atomic.Int32
	registry.Schedule(1, time.Now().Add(-time.Minute), func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
}
