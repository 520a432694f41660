package blob

// frameLink is the clock's subscription to frame ticks. It exists from the
// first resume until Invalidate.
type frameLink struct {
	paused bool
	frames int
}

// Clock calls a function on frame ticks while it is not paused. The host
// drives it by calling Tick once per displayed frame.
type Clock struct {
	update        func()
	link          *frameLink
	paused        bool
	frameInterval int
	invalidated   bool
}

// NewClock returns a paused clock that calls update.
func NewClock(update func()) *Clock {
	return &Clock{update: update, paused: true, frameInterval: 1}
}

// Paused reports whether ticks are ignored.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused pauses or resumes the clock. Setting the current value does
// nothing.
func (c *Clock) SetPaused(paused bool) {
	if c.paused == paused {
		return
	}
	c.paused = paused
	if !paused && c.link == nil && !c.invalidated {
		c.link = &frameLink{}
	}
	if c.link != nil {
		c.link.paused = paused
	}
}

// FrameInterval returns how many frames pass between calls.
func (c *Clock) FrameInterval() int { return c.frameInterval }

// SetFrameInterval throttles the clock to every nth frame. Values below 1
// are treated as 1.
func (c *Clock) SetFrameInterval(n int) {
	c.frameInterval = max(n, 1)
}

// Tick reports one displayed frame. It returns whether update was called.
func (c *Clock) Tick() bool {
	if c.link == nil || c.link.paused {
		return false
	}
	c.link.frames++
	if c.link.frames%c.frameInterval != 0 {
		return false
	}
	c.update()
	return true
}

// Invalidate tears down the frame link. The clock never fires again.
func (c *Clock) Invalidate() {
	if c.link != nil {
		c.link.paused = true
		c.link = nil
	}
	c.invalidated = true
}

// Active reports whether the clock holds a frame link.
func (c *Clock) Active() bool { return c.link != nil }
