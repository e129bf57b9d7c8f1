package auth

import (
	"sync"
	"time"
)

// countdown ticks once per second until it reaches zero, after which the
// PIN may be re-sent. Stop cancels the ticker early.
type countdown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
	done      bool
	tick      time.Duration
}

func newCountdown(seconds int, tick time.Duration) *countdown {
	c := &countdown{
		remaining: seconds,
		stop:      make(chan struct{}),
		tick:      tick,
	}
	go c.run()
	return c
}

func (c *countdown) run() {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.remaining > 0 {
				c.remaining--
			}
			if c.remaining == 0 {
				c.done = true
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

func (c *countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.done && c.remaining > 0
}

func (c *countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		c.done = true
		close(c.stop)
	}
}
