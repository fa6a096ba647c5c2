package halsim

// Clock is a manually driven tick source. Each Millis read advances the
// counter by StepMillis, so a busy-wait against it makes progress without
// wall-clock time; Advance positions the counter for wraparound scenarios.
type Clock struct {
	StepMillis uint32

	ms         uint32
	delayedUS  uint64
	delayCalls int
}

// NewClock starts the tick counter at startMS.
func NewClock(startMS uint32) *Clock {
	return &Clock{StepMillis: 1, ms: startMS}
}

func (c *Clock) Millis() uint32 {
	v := c.ms
	c.ms += c.StepMillis // uint32 arithmetic wraps like the hardware counter
	return v
}

func (c *Clock) Micros() uint32 { return c.ms * 1000 }

func (c *Clock) DelayMicroseconds(us uint32) {
	c.delayCalls++
	c.delayedUS += uint64(us)
	c.ms += us / 1000
}

// Advance moves the counter forward by ms without counting as a read.
func (c *Clock) Advance(ms uint32) { c.ms += ms }

// Now returns the counter without advancing it.
func (c *Clock) Now() uint32 { return c.ms }

// DelayedMicros reports the total time requested through DelayMicroseconds.
func (c *Clock) DelayedMicros() uint64 { return c.delayedUS }

// DelayCalls reports how many times DelayMicroseconds was invoked.
func (c *Clock) DelayCalls() int { return c.delayCalls }

// Watchdog counts kicks.
type Watchdog struct {
	Kicks uint32
}

func (w *Watchdog) Kick() { w.Kicks++ }
