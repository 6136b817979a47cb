package engine

import "time"

// Clock supplies the elapsed time per frame.
type Clock interface {
	// Advance marks a frame boundary and returns the seconds elapsed since
	// the previous one. The result is never negative.
	Advance() float64
}

// WallClock measures real time between frames. The first frame reports 0,
// and long stalls (a dragged window, a debugger) are capped at maxStep so a
// single frame cannot teleport the player.
type WallClock struct {
	now     func() time.Time
	last    time.Time
	maxStep float64
}

// NewWallClock returns a clock capped at maxStep seconds; 0 disables the cap.
func NewWallClock(maxStep float64) *WallClock {
	return &WallClock{now: time.Now, maxStep: maxStep}
}

func (c *WallClock) Advance() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	if c.maxStep > 0 && dt > c.maxStep {
		return c.maxStep
	}
	return dt
}
