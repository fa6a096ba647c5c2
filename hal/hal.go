// Package hal defines the contracts the wiring facade dispatches into.
// Providers live in subpackages; the facade never touches registers itself.
package hal

import (
	"errors"

	"github.com/charaf8477/firmware/types"
)

// PWMFrequencyHz is the fixed carrier frequency applied by providers for
// duty-cycle output. Build-time constant, not configurable at runtime.
const PWMFrequencyHz = 500

// ADCMax is the full-scale raw sample. The converter is 12-bit; the wider
// 16-bit scale remains a documented mismatch carried over from the target.
const ADCMax = 4095

// PinHAL applies pin and converter operations for one board layout.
// Pins are logical indices; the provider maps them to hardware numbers.
//
// Callers are expected to have validated pin range, mode, and reservation
// before dispatching; providers may assume well-formed arguments.
type PinHAL interface {
	// PinMode applies the electrical mode to the pin.
	PinMode(pin int, mode types.PinMode) error
	// GPIOWrite drives the pin to the given level (Low/High).
	GPIOWrite(pin int, level int)
	// GPIORead samples the pin, returning Low or High.
	GPIORead(pin int) int
	// ADCRead returns a raw sample, 0..ADCMax.
	ADCRead(pin int) int
	// ADCSetSampleTime forwards a converter sample-time selector unchecked.
	ADCSetSampleTime(v uint8)
	// PWMWrite outputs an 8-bit duty cycle at PWMFrequencyHz.
	PWMWrite(pin int, duty uint8)
}

// Clock is the monotonic tick source. Ticks are 32-bit and wrap after
// roughly 49 days; the facade applies only an approximate wrap correction.
type Clock interface {
	Millis() uint32
	Micros() uint32
	DelayMicroseconds(us uint32)
}

// Watchdog is kicked on every iteration of a blocking delay.
type Watchdog interface {
	Kick()
}

// NopWatchdog satisfies Watchdog on platforms without one.
type NopWatchdog struct{}

func (NopWatchdog) Kick() {}

// ErrUnsupported is returned by providers asked for a mode the platform
// cannot express.
var ErrUnsupported = errors.New("unsupported")
