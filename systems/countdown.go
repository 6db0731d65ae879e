package systems

// Countdown accumulates elapsed time per named timer and fires an action
// whenever a timer reaches its delay.
type Countdown struct {
	elapsed map[string]float32
}

// NewCountdown creates an empty set of timers.
func NewCountdown() *Countdown {
	return &Countdown{elapsed: make(map[string]float32)}
}

// Tick advances timer id by dt. When the accumulated time reaches delay the
// action runs and the timer restarts from zero. Tick reports whether the
// action ran. A nil action still resets the timer.
func (c *Countdown) Tick(id string, dt, delay float32, action func()) bool {
	t := c.elapsed[id] + dt
	if t < delay {
		c.elapsed[id] = t
		return false
	}
	c.elapsed[id] = 0
	if action != nil {
		action()
	}
	return true
}

// Elapsed returns the time accumulated on timer id since it last fired.
func (c *Countdown) Elapsed(id string) float32 {
	return c.elapsed[id]
}

// Reset clears timer id.
func (c *Countdown) Reset(id string) {
	delete(c.elapsed, id)
}
