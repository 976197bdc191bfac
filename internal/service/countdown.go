package service

import (
	"sync"
	"time"
)

// Countdown gates OTP resends: it counts down from a fixed number of ticks
// and enables resend when it reaches zero.
//
// Ticks come from an injected Clock. At most one ticking goroutine is alive;
// Start replaces it and Stop ends it. Tick can also be called directly.
type Countdown struct {
	clock    Clock
	interval time.Duration
	seconds  int
	onReady  func()

	mu        sync.Mutex
	remaining int
	canResend bool
	running   bool
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewCountdown creates a stopped countdown of seconds ticks, one per interval.
// onReady, when set, is called once each time resend becomes enabled.
func NewCountdown(clock Clock, interval time.Duration, seconds int, onReady func()) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		clock:     clock,
		interval:  interval,
		seconds:   seconds,
		onReady:   onReady,
		remaining: seconds,
	}
}

// Start resets the countdown, disables resend and begins ticking.
// A countdown of zero ticks or fewer enables resend at once.
func (c *Countdown) Start() {
	c.Stop()

	c.mu.Lock()
	if c.seconds <= 0 {
		c.remaining = 0
		c.canResend = true
		c.running = false
		c.mu.Unlock()
		if c.onReady != nil {
			c.onReady()
		}
		return
	}
	c.remaining = c.seconds
	c.canResend = false
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	ticker := c.clock.NewTicker(c.interval)
	c.wg.Add(1)
	go c.run(ticker, stop)
}

func (c *Countdown) run(ticker Ticker, stop chan struct{}) {
	defer c.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if expired := c.Tick(); expired {
				return
			}
		}
	}
}

// Tick advances the countdown by one. It returns true once the countdown has
// expired. Resend is enabled on the first tick that finds the count at zero.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	enabled := false
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && !c.canResend {
		c.canResend = true
		enabled = true
	}
	expired := c.remaining == 0
	if expired {
		c.running = false
	}
	c.mu.Unlock()

	if enabled && c.onReady != nil {
		c.onReady()
	}
	return expired
}

// Stop ends the ticking goroutine, if any, and waits for it to exit.
// The remaining count and resend flag are left as they are.
func (c *Countdown) Stop() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.running = false
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	c.wg.Wait()
}

// Remaining returns the ticks left before resend is enabled.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// CanResend reports whether the countdown has reached zero.
func (c *Countdown) CanResend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canResend
}

// Running reports whether a ticking goroutine is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
