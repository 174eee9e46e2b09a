package animator

import "sync"

// Clock accumulates elapsed wall-clock seconds from host ticks.
// It never runs backwards: negative and NaN deltas are ignored.
type Clock struct {
	mu      sync.RWMutex
	elapsed float64
}

// NewClock creates a Clock at zero.
func NewClock() *Clock {
	return &Clock{}
}

// Tick advances the clock by dt seconds.
//
// Parameters:
//   - dt: seconds since the previous tick
func (c *Clock) Tick(dt float64) {
	if !(dt > 0) {
		return
	}
	c.mu.Lock()
	c.elapsed += dt
	c.mu.Unlock()
}

// Elapsed returns the accumulated seconds.
func (c *Clock) Elapsed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsed
}

// Scaled returns the stroke time, elapsed seconds multiplied by Speed.
func (c *Clock) Scaled() float64 {
	return c.Elapsed() * Speed
}
