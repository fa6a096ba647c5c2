//go:build rp2040

// Package halrp2 is the RP2040 provider, dispatching through the TinyGo
// machine package.
package halrp2

import (
	"machine"
	"time"

	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/hal"
	"github.com/charaf8477/firmware/types"
	"github.com/charaf8477/firmware/x/timex"
)

type pwmSlice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// HAL maps logical pins through the board layout onto machine pins.
type HAL struct {
	layout *boards.Layout

	// slice number -> configured peripheral, lazily set up at first PWM use
	slices map[uint8]pwmSlice
}

var _ hal.PinHAL = (*HAL)(nil)

func New(layout *boards.Layout) *HAL {
	return &HAL{layout: layout, slices: map[uint8]pwmSlice{}}
}

func (h *HAL) pin(pin int) machine.Pin {
	return machine.Pin(h.layout.Def(pin).HWPin)
}

func (h *HAL) PinMode(pin int, mode types.PinMode) error {
	p := h.pin(pin)
	var m machine.PinMode
	switch mode {
	case types.ModeInput:
		m = machine.PinInput
	case types.ModeInputPullup:
		m = machine.PinInputPullup
	case types.ModeInputPulldown:
		m = machine.PinInputPulldown
	case types.ModeAnalogInput:
		machine.InitADC()
		adc := machine.ADC{Pin: p}
		adc.Configure(machine.ADCConfig{})
		return nil
	case types.ModeOutput, types.ModeAFOutputOpenDrain:
		m = machine.PinOutput
	case types.ModeAFOutputPushPull:
		m = machine.PinPWM
	default:
		return hal.ErrUnsupported
	}
	p.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (h *HAL) GPIOWrite(pin, level int) { h.pin(pin).Set(level != types.Low) }

func (h *HAL) GPIORead(pin int) int {
	if h.pin(pin).Get() {
		return types.High
	}
	return types.Low
}

// ADCRead narrows the machine package's left-aligned 16-bit sample to the
// converter's native 12 bits.
func (h *HAL) ADCRead(pin int) int {
	adc := machine.ADC{Pin: h.pin(pin)}
	return int(adc.Get() >> 4)
}

// ADCSetSampleTime is a no-op here: the RP2040 converter has a fixed
// sampling period.
func (h *HAL) ADCSetSampleTime(v uint8) {}

func (h *HAL) PWMWrite(pin int, duty uint8) {
	hw := uint32(h.layout.Def(pin).HWPin)
	sliceNum := uint8((hw >> 1) & 0x7)

	pwm, ok := h.slices[sliceNum]
	if !ok {
		pwm = sliceByNumber(sliceNum)
		if err := pwm.Configure(machine.PWMConfig{
			Period: timex.PeriodFromHz(hal.PWMFrequencyHz),
		}); err != nil {
			return
		}
		h.slices[sliceNum] = pwm
	}

	ch, err := pwm.Channel(machine.Pin(hw))
	if err != nil {
		return
	}
	pwm.Set(ch, uint32(duty)*pwm.Top()/255)
}

// GPIO pin N maps to slice (N>>1)&7, channel N&1.
func sliceByNumber(n uint8) pwmSlice {
	switch n {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// -----------------------------------------------------------------------------
// Clock & watchdog
// -----------------------------------------------------------------------------

// Clock derives 32-bit wrapping ticks from the runtime monotonic clock.
type Clock struct {
	start time.Time
}

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Millis() uint32 { return uint32(time.Since(c.start).Milliseconds()) }
func (c *Clock) Micros() uint32 { return uint32(time.Since(c.start).Microseconds()) }

func (c *Clock) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// Watchdog feeds the hardware watchdog.
type Watchdog struct{}

func (Watchdog) Kick() { machine.Watchdog.Update() }
