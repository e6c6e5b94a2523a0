package countdown

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 5 * time.Millisecond

func TestCountdown_ExpiresOnce(t *testing.T) {
	c := New(tick)

	var mu sync.Mutex
	var ticks []int
	var expired atomic.Int32

	c.Start(3, func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	}, func() {
		expired.Add(1)
	})

	require.Eventually(t, func() bool { return expired.Load() == 1 }, time.Second, tick)
	time.Sleep(5 * tick)

	assert.Equal(t, int32(1), expired.Load())
	assert.False(t, c.Running())
	assert.Equal(t, 0, c.Remaining())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2, 1, 0}, ticks)
}

func TestCountdown_RemainingNeverExceedsTotal(t *testing.T) {
	c := New(time.Hour)
	c.Start(20, nil, nil)
	defer c.Cancel()

	assert.True(t, c.Running())
	assert.Equal(t, 20, c.Remaining())
}

func TestCountdown_CancelSuppressesCallbacks(t *testing.T) {
	c := New(tick)

	var calls atomic.Int32
	c.Start(2, func(int) { calls.Add(1) }, func() { calls.Add(1) })
	c.Cancel()

	time.Sleep(10 * tick)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, c.Running())
}

func TestCountdown_RestartReplacesPreviousRun(t *testing.T) {
	c := New(tick)

	var first, second atomic.Int32
	c.Start(2, nil, func() { first.Add(1) })
	c.Start(4, nil, func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, tick)
	time.Sleep(5 * tick)

	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestCountdown_ZeroTotalExpiresImmediately(t *testing.T) {
	c := New(time.Hour)

	var expired atomic.Int32
	c.Start(0, nil, func() { expired.Add(1) })

	require.Eventually(t, func() bool { return expired.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, c.Running())
}

func TestCountdown_StartFromExpireCallback(t *testing.T) {
	c := New(tick)

	var runs atomic.Int32
	var startNext func()
	startNext = func() {
		if runs.Add(1) < 3 {
			c.Start(1, nil, startNext)
		}
	}
	c.Start(1, nil, startNext)

	require.Eventually(t, func() bool { return runs.Load() == 3 }, time.Second, tick)
}
