// Package halsim is a simulated HAL for host builds and tests: virtual pins
// holding mode and level, programmable ADC samples, recorded PWM output, and
// an optional shift-register loopback device for exercising the bit-banged
// shift operations end to end.
package halsim

import (
	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/hal"
	"github.com/charaf8477/firmware/types"
	"github.com/charaf8477/firmware/x/mathx"
)

// CallCounts tracks how often each HAL entry point was invoked, so tests can
// assert that rejected facade calls never reach the HAL.
type CallCounts struct {
	Mode  int
	Write int
	Read  int
	ADC   int
	PWM   int
}

type pinState struct {
	mode  types.PinMode
	level int
}

// PWMRecord is one recorded duty-cycle output.
type PWMRecord struct {
	Pin    int
	Duty   uint8
	FreqHz uint32
}

// Sim implements hal.PinHAL over virtual pins.
type Sim struct {
	Calls CallCounts

	layout     *boards.Layout
	pins       []pinState
	adc        map[int]int
	pwm        []PWMRecord
	sampleTime uint8
	devices    []*shiftRegister
}

var _ hal.PinHAL = (*Sim)(nil)

func New(layout *boards.Layout) *Sim {
	return &Sim{
		layout: layout,
		pins:   make([]pinState, layout.TotalPins()),
		adc:    make(map[int]int),
	}
}

// -----------------------------------------------------------------------------
// hal.PinHAL
// -----------------------------------------------------------------------------

func (s *Sim) PinMode(pin int, mode types.PinMode) error {
	s.Calls.Mode++
	s.pins[pin].mode = mode
	return nil
}

func (s *Sim) GPIOWrite(pin, level int) {
	s.Calls.Write++
	if level != types.Low {
		level = types.High
	}
	prev := s.pins[pin].level
	s.pins[pin].level = level
	for _, d := range s.devices {
		d.pinWritten(pin, prev, level)
	}
}

func (s *Sim) GPIORead(pin int) int {
	s.Calls.Read++
	return s.pins[pin].level
}

func (s *Sim) ADCRead(pin int) int {
	s.Calls.ADC++
	return mathx.Clamp(s.adc[pin], 0, hal.ADCMax)
}

func (s *Sim) ADCSetSampleTime(v uint8) { s.sampleTime = v }

func (s *Sim) PWMWrite(pin int, duty uint8) {
	s.Calls.PWM++
	s.pwm = append(s.pwm, PWMRecord{Pin: pin, Duty: duty, FreqHz: hal.PWMFrequencyHz})
}

// -----------------------------------------------------------------------------
// Test controls
// -----------------------------------------------------------------------------

// Mode returns the mode last applied to pin.
func (s *Sim) Mode(pin int) types.PinMode { return s.pins[pin].mode }

// Level returns the current level of pin.
func (s *Sim) Level(pin int) int { return s.pins[pin].level }

// SetLevel drives pin from the outside (an external signal).
func (s *Sim) SetLevel(pin, level int) {
	if level != types.Low {
		level = types.High
	}
	s.pins[pin].level = level
}

// SetADCSample programs the raw sample returned for pin.
func (s *Sim) SetADCSample(pin, raw int) { s.adc[pin] = raw }

// SampleTime returns the last converter sample-time selector forwarded.
func (s *Sim) SampleTime() uint8 { return s.sampleTime }

// PWM returns all recorded duty-cycle outputs.
func (s *Sim) PWM() []PWMRecord { return s.pwm }

// -----------------------------------------------------------------------------
// Shift-register loopback
// -----------------------------------------------------------------------------

// shiftRegister models an 8-bit FIFO latch wired between a data and a clock
// pin. Rising clock edges capture the data pin until a full byte is latched;
// the next eight rising edges replay the captured bits onto the data pin in
// capture order. Shifting a byte out and then in through the same pin pair
// therefore reproduces it for either bit order.
type shiftRegister struct {
	sim      *Sim
	dataPin  int
	clockPin int
	queue    []int
	draining bool
}

// WireShiftRegister attaches a loopback latch between dataPin and clockPin.
func (s *Sim) WireShiftRegister(dataPin, clockPin int) {
	s.devices = append(s.devices, &shiftRegister{sim: s, dataPin: dataPin, clockPin: clockPin})
}

func (r *shiftRegister) pinWritten(pin, prev, level int) {
	if pin != r.clockPin || prev != types.Low || level != types.High {
		return
	}
	if r.draining {
		bit := r.queue[0]
		r.queue = r.queue[1:]
		r.sim.pins[r.dataPin].level = bit
		if len(r.queue) == 0 {
			r.draining = false
		}
		return
	}
	r.queue = append(r.queue, r.sim.pins[r.dataPin].level)
	if len(r.queue) == 8 {
		r.draining = true
	}
}
