// Package boards describes what a board's pins can do: which logical pin
// indices exist, which carry an ADC channel or a PWM-capable timer, and
// which pins each fixed-function peripheral occupies while enabled.
// It must not include runtime state; per-pin modes live in the wiring layer.
package boards

import (
	"fmt"

	"github.com/charaf8477/firmware/types"
)

// NoADC marks a pin without an analog channel.
const NoADC = -1

// PinDef is one pin's fixed capabilities.
type PinDef struct {
	HWPin      int  // provider pin number (port/offset encoded per provider)
	ADCChannel int  // NoADC if the pin cannot be sampled
	HasTimer   bool // PWM-capable
}

// Layout is an immutable board shape.
type Layout struct {
	Name           string
	FirstAnalogPin int
	Pins           []PinDef

	// Peripheral pin groups, claimed while the matching port is enabled.
	SPI     types.PinGroup // SCK, MOSI, MISO
	I2C     types.PinGroup // SDA, SCL
	Serial1 types.PinGroup // TX, RX
}

// TotalPins returns the number of logical pins on the board.
func (l *Layout) TotalPins() int { return len(l.Pins) }

// InRange reports whether pin is a valid logical index.
func (l *Layout) InRange(pin int) bool { return pin >= 0 && pin < len(l.Pins) }

// Def returns the pin definition; pin must be in range.
func (l *Layout) Def(pin int) PinDef { return l.Pins[pin] }

// CoreV1 is the default 21-pin layout: digital D0-D7 on 0-7, analog A0-A7 on
// 10-17 (ADC channels 0-7), Serial1 TX/RX on 18/19, user button on 20.
// SPI sits on A3/A5/A4 (13/15/14), I2C on D0/D1.
func CoreV1() *Layout {
	l := &Layout{
		Name:           "core-v1",
		FirstAnalogPin: 10,
		Pins:           make([]PinDef, 21),
		SPI:            types.PinGroup{13, 15, 14}, // SCK, MOSI, MISO
		I2C:            types.PinGroup{0, 1},       // SDA, SCL
		Serial1:        types.PinGroup{18, 19},     // TX, RX
	}
	for i := range l.Pins {
		l.Pins[i] = PinDef{HWPin: i, ADCChannel: NoADC}
	}
	// D0/D1 share a timer (I2C pins when Wire is enabled).
	l.Pins[0].HasTimer = true
	l.Pins[1].HasTimer = true
	// A0-A7 carry ADC channels; all but A2/A3 are PWM-capable.
	for ch := 0; ch < 8; ch++ {
		pin := l.FirstAnalogPin + ch
		l.Pins[pin].ADCChannel = ch
		l.Pins[pin].HasTimer = ch != 2 && ch != 3
	}
	return l
}

// FromConfig builds a layout from its JSON-loadable description.
func FromConfig(cfg types.BoardConfig) (*Layout, error) {
	if cfg.TotalPins <= 0 {
		return nil, fmt.Errorf("boards: total_pins must be positive, got %d", cfg.TotalPins)
	}
	if cfg.FirstAnalogPin < 0 || cfg.FirstAnalogPin >= cfg.TotalPins {
		return nil, fmt.Errorf("boards: first_analog_pin %d outside 0..%d", cfg.FirstAnalogPin, cfg.TotalPins-1)
	}
	l := &Layout{
		Name:           cfg.Name,
		FirstAnalogPin: cfg.FirstAnalogPin,
		Pins:           make([]PinDef, cfg.TotalPins),
		SPI:            cfg.SPI,
		I2C:            cfg.I2C,
		Serial1:        cfg.Serial1,
	}
	for i := range l.Pins {
		l.Pins[i] = PinDef{HWPin: i, ADCChannel: NoADC}
	}
	for _, pc := range cfg.Pins {
		if pc.Pin < 0 || pc.Pin >= cfg.TotalPins {
			return nil, fmt.Errorf("boards: pin %d outside 0..%d", pc.Pin, cfg.TotalPins-1)
		}
		def := PinDef{HWPin: pc.HWPin, ADCChannel: NoADC, HasTimer: pc.HasTimer}
		if pc.ADCChannel != nil {
			def.ADCChannel = *pc.ADCChannel
		}
		l.Pins[pc.Pin] = def
	}
	for _, g := range []types.PinGroup{l.SPI, l.I2C, l.Serial1} {
		for _, p := range g {
			if p < 0 || p >= cfg.TotalPins {
				return nil, fmt.Errorf("boards: peripheral pin %d outside 0..%d", p, cfg.TotalPins-1)
			}
		}
	}
	return l, nil
}
