// Package countdown provides the per-question answer timer.
package countdown

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Countdown counts whole seconds down to zero. At most one run is active.
type Countdown struct {
	tick time.Duration

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	remaining int
	running   bool
}

// New creates a countdown that decrements once per tick
func New(tick time.Duration) *Countdown {
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{tick: tick}
}

// Start begins a new run of total seconds, cancelling any previous run.
// onTick receives the remaining seconds after each decrement; onExpire fires once at zero.
// Either callback may be nil.
func (c *Countdown) Start(total int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	if total < 0 {
		total = 0
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.remaining = total
	c.running = true
	c.mu.Unlock()

	slog.Debug("countdown started", "total", total, "run", gen)

	if total == 0 {
		go c.expire(gen, onExpire)
		return
	}

	go c.run(ctx, gen, onTick, onExpire)
}

// run is the main loop for a single countdown run
func (c *Countdown) run(ctx context.Context, gen uint64, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.gen != gen || !c.running {
				c.mu.Unlock()
				return
			}
			c.remaining--
			remaining := c.remaining
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}

			if remaining <= 0 {
				c.expire(gen, onExpire)
				return
			}
		}
	}
}

// expire marks the run finished and fires onExpire if the run is still current
func (c *Countdown) expire(gen uint64, onExpire func()) {
	c.mu.Lock()
	if c.gen != gen || !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.remaining = 0
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	slog.Debug("countdown expired", "run", gen)

	if onExpire != nil {
		onExpire()
	}
}

// Cancel stops the active run, if any, without firing callbacks
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.running = false
}

// Remaining returns the seconds left in the current run
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether a run is active
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
