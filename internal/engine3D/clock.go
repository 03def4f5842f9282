package engine3D

import "time"

// MaxFrameDelta caps the delta reported after a stall (window drag, debugger
// pause) so smoothing steps stay small.
const MaxFrameDelta = 0.1

// Clock reports wall-clock seconds since start and since the previous tick.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith uses now as the time source.
func NewClockWith(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick returns the elapsed time since the clock started and the delta since
// the previous Tick, clamped to [0, MaxFrameDelta].
func (c *Clock) Tick() (elapsed, delta float64) {
	t := c.now()
	elapsed = t.Sub(c.start).Seconds()
	delta = t.Sub(c.last).Seconds()
	c.last = t

	if delta < 0 {
		delta = 0
	} else if delta > MaxFrameDelta {
		delta = MaxFrameDelta
	}
	return elapsed, delta
}
