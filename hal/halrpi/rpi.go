//go:build linux

// Package halrpi is a Linux provider for Raspberry Pi class boards over the
// go-rpio memory-mapped GPIO driver. The SoC has no ADC; layouts used with
// this provider should not advertise analog channels.
package halrpi

import (
	"time"

	rpio "github.com/stianeikeland/go-rpio"

	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/hal"
	"github.com/charaf8477/firmware/types"
)

// Setup maps the GPIO register block; call once before building a HAL.
func Setup() error { return rpio.Open() }

// Teardown releases the mapping.
func Teardown() error { return rpio.Close() }

// HAL maps logical pins through the board layout onto BCM pin numbers.
type HAL struct {
	layout *boards.Layout
}

var _ hal.PinHAL = (*HAL)(nil)

func New(layout *boards.Layout) *HAL { return &HAL{layout: layout} }

func (h *HAL) pin(pin int) rpio.Pin {
	return rpio.Pin(h.layout.Def(pin).HWPin)
}

func (h *HAL) PinMode(pin int, mode types.PinMode) error {
	p := h.pin(pin)
	switch mode {
	case types.ModeInput, types.ModeAnalogInput:
		p.Input()
		p.PullOff()
	case types.ModeInputPullup:
		p.Input()
		p.PullUp()
	case types.ModeInputPulldown:
		p.Input()
		p.PullDown()
	case types.ModeOutput, types.ModeAFOutputOpenDrain:
		p.Output()
	case types.ModeAFOutputPushPull:
		p.Mode(rpio.Pwm)
	default:
		return hal.ErrUnsupported
	}
	return nil
}

func (h *HAL) GPIOWrite(pin, level int) {
	if level != types.Low {
		h.pin(pin).High()
	} else {
		h.pin(pin).Low()
	}
}

func (h *HAL) GPIORead(pin int) int {
	if h.pin(pin).Read() == rpio.High {
		return types.High
	}
	return types.Low
}

// ADCRead always returns Low: no converter on this SoC.
func (h *HAL) ADCRead(pin int) int { return types.Low }

func (h *HAL) ADCSetSampleTime(v uint8) {}

// PWMWrite uses the hardware PWM clock: cycle length 256 at the fixed
// carrier, duty 0..255.
func (h *HAL) PWMWrite(pin int, duty uint8) {
	p := h.pin(pin)
	p.Freq(hal.PWMFrequencyHz * 256)
	p.DutyCycle(uint32(duty), 256)
}

// -----------------------------------------------------------------------------
// Clock
// -----------------------------------------------------------------------------

// Clock derives 32-bit wrapping ticks from the OS monotonic clock.
type Clock struct {
	start time.Time
}

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Millis() uint32 { return uint32(time.Since(c.start).Milliseconds()) }
func (c *Clock) Micros() uint32 { return uint32(time.Since(c.start).Microseconds()) }

func (c *Clock) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
