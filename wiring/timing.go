package wiring

// LoopDelayMillis is the cadence at which Delay pumps the background
// service: at most once per this much elapsed slice, or as soon as the
// accumulated requested delay time reaches it.
const LoopDelayMillis = 1000

// BackgroundService is the cooperative hook Delay pumps between tick polls.
// Ready gates servicing entirely (stack not set up, or asleep). Updating
// keeps the pump looping while a flash/OTA update is in progress.
type BackgroundService interface {
	Ready() bool
	Service()
	Updating() bool
}

// Millis returns milliseconds since startup. Wraps after ~49 days.
func (b *Board) Millis() uint32 { return b.clock.Millis() }

// Micros returns microseconds since startup.
func (b *Board) Micros() uint32 { return b.clock.Micros() }

// DelayMicroseconds busy-waits in the HAL.
func (b *Board) DelayMicroseconds(us uint32) { b.clock.DelayMicroseconds(us) }

// Delay blocks for at least ms milliseconds, kicking the watchdog on every
// poll and pumping the background service under the LoopDelayMillis policy.
// The facade never yields to another goroutine here; the service runs
// synchronously inside this call stack.
func (b *Board) Delay(ms uint32) {
	nextService := int64(LoopDelayMillis)
	if b.bg != nil {
		b.bgPending += int64(ms)
	}

	last := b.clock.Millis()

	for {
		b.wdt.Kick()

		current := b.clock.Millis()
		elapsed := int64(current) - int64(last)

		// elapsed goes negative when the 32-bit tick wraps; fold it back
		// once. The fold is approximate, not exact.
		if elapsed < 0 {
			elapsed = int64(last) + int64(current)
		}

		if elapsed >= int64(ms) {
			return
		}

		if b.bg == nil || !b.bg.Ready() {
			continue
		}
		if elapsed >= nextService || b.bgPending >= int64(LoopDelayMillis) {
			nextService = elapsed + int64(LoopDelayMillis)
			for {
				// Run once when the cadence fires, then keep looping while a
				// flash update is being streamed.
				b.bg.Service()
				if !b.bg.Updating() {
					break
				}
			}
			b.bgPending = 0
		}
	}
}
