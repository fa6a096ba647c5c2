// Package wiring is the Arduino-style pin and timing facade. It validates
// arguments, consults the board layout and the peripheral reservation
// registry, and forwards to the HAL. Invalid inputs are silently ignored by
// writers and answered with Low by readers; the rejection reason is
// additionally counted and published on the diagnostics bus for callers that
// opt in.
//
// Access is single-owner, single-goroutine: the pin mode table and the
// peripheral flags are unsynchronised on purpose.
package wiring

import (
	"errors"

	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/bus"
	"github.com/charaf8477/firmware/errcode"
	"github.com/charaf8477/firmware/hal"
	"github.com/charaf8477/firmware/peripheral"
	"github.com/charaf8477/firmware/types"
	"github.com/charaf8477/firmware/x/mathx"
)

// Config assembles a Board. Layout, HAL and Clock are required; the rest
// default to inert implementations.
type Config struct {
	Layout      *boards.Layout
	HAL         hal.PinHAL
	Clock       hal.Clock
	Watchdog    hal.Watchdog
	Peripherals *peripheral.Registry
	Background  BackgroundService
	Diag        *bus.Connection // optional diagnostics feed
}

// Board owns the mutable per-pin mode table and dispatches facade calls.
type Board struct {
	layout *boards.Layout
	hal    hal.PinHAL
	clock  hal.Clock
	wdt    hal.Watchdog
	reg    *peripheral.Registry
	modes  []types.PinMode

	diag diag

	bg        BackgroundService
	bgPending int64 // requested delay time not yet answered with a service pump
}

func NewBoard(cfg Config) (*Board, error) {
	if cfg.Layout == nil {
		return nil, errors.New("wiring: nil layout")
	}
	if cfg.HAL == nil {
		return nil, errors.New("wiring: nil HAL")
	}
	if cfg.Clock == nil {
		return nil, errors.New("wiring: nil clock")
	}
	if cfg.Watchdog == nil {
		cfg.Watchdog = hal.NopWatchdog{}
	}
	if cfg.Peripherals == nil {
		cfg.Peripherals = peripheral.NewRegistry()
	}
	return &Board{
		layout: cfg.Layout,
		hal:    cfg.HAL,
		clock:  cfg.Clock,
		wdt:    cfg.Watchdog,
		reg:    cfg.Peripherals,
		modes:  make([]types.PinMode, cfg.Layout.TotalPins()),
		diag:   diag{conn: cfg.Diag},
		bg:     cfg.Background,
	}, nil
}

// Layout returns the immutable board shape.
func (b *Board) Layout() *boards.Layout { return b.layout }

// Mode returns the stored mode for pin, ModeNone when out of range.
func (b *Board) Mode(pin int) types.PinMode {
	if !b.layout.InRange(pin) {
		return types.ModeNone
	}
	return b.modes[pin]
}

// Available reports whether pin is free of any enabled peripheral.
func (b *Board) Available(pin int) bool { return b.reg.Available(pin) }

// -----------------------------------------------------------------------------
// Pin mode
// -----------------------------------------------------------------------------

// PinMode applies mode to pin. Out-of-range pins, ModeNone, and pins
// reserved by an enabled peripheral are ignored.
func (b *Board) PinMode(pin int, mode types.PinMode) {
	b.diag.record("pinMode", pin, b.pinMode(pin, mode))
}

func (b *Board) pinMode(pin int, mode types.PinMode) errcode.Code {
	if !b.layout.InRange(pin) {
		return errcode.OutOfRange
	}
	if mode == types.ModeNone {
		return errcode.ModeMismatch
	}
	if !b.reg.Available(pin) {
		return errcode.PinReserved
	}
	if err := b.hal.PinMode(pin, mode); err != nil {
		return errcode.Of(err)
	}
	b.modes[pin] = mode
	return errcode.OK
}

// -----------------------------------------------------------------------------
// Digital I/O
// -----------------------------------------------------------------------------

// DigitalWrite drives pin to level. Ignored when the pin is out of range, in
// any input-like mode (or unconfigured), or reserved by a peripheral.
func (b *Board) DigitalWrite(pin, level int) {
	b.diag.record("digitalWrite", pin, b.digitalWrite(pin, level))
}

func (b *Board) digitalWrite(pin, level int) errcode.Code {
	if !b.layout.InRange(pin) {
		return errcode.OutOfRange
	}
	if m := b.modes[pin]; m.IsInputLike() || m == types.ModeNone {
		return errcode.ModeMismatch
	}
	if !b.reg.Available(pin) {
		return errcode.PinReserved
	}
	b.hal.GPIOWrite(pin, level)
	return errcode.OK
}

// DigitalRead samples pin, returning High or Low. Out-of-range pins,
// unconfigured or alternate-function-output pins, and reserved pins all
// read as Low.
func (b *Board) DigitalRead(pin int) int {
	level, code := b.digitalRead(pin)
	b.diag.record("digitalRead", pin, code)
	return level
}

func (b *Board) digitalRead(pin int) (int, errcode.Code) {
	if !b.layout.InRange(pin) {
		return types.Low, errcode.OutOfRange
	}
	switch b.modes[pin] {
	case types.ModeNone, types.ModeAFOutputPushPull, types.ModeAFOutputOpenDrain:
		return types.Low, errcode.ModeMismatch
	}
	if !b.reg.Available(pin) {
		return types.Low, errcode.PinReserved
	}
	return b.hal.GPIORead(pin), errcode.OK
}

// -----------------------------------------------------------------------------
// Analog I/O
// -----------------------------------------------------------------------------

// AnalogRead returns a raw converter sample, 0..hal.ADCMax, or Low on any
// rejection. Pin values below the analog window are taken as 0-based analog
// channel aliases and offset into absolute pin space first.
func (b *Board) AnalogRead(pin int) int {
	value, code := b.analogRead(pin)
	b.diag.record("analogRead", pin, code)
	return value
}

func (b *Board) analogRead(pin int) (int, errcode.Code) {
	if pin >= 0 && pin < b.layout.FirstAnalogPin {
		pin += b.layout.FirstAnalogPin
	}
	if !b.reg.Available(pin) {
		return types.Low, errcode.PinReserved
	}
	if !b.layout.InRange(pin) {
		return types.Low, errcode.OutOfRange
	}
	if b.layout.Def(pin).ADCChannel == boards.NoADC {
		return types.Low, errcode.Unsupported
	}
	return b.hal.ADCRead(pin), errcode.OK
}

// AnalogWrite emits an 8-bit duty cycle on pin at the fixed carrier
// frequency. Ignored when the pin is out of range, lacks a timer, is
// reserved, or is not in Output/AFOutputPushPull mode.
func (b *Board) AnalogWrite(pin int, value uint8) {
	b.diag.record("analogWrite", pin, b.analogWrite(pin, value))
}

func (b *Board) analogWrite(pin int, value uint8) errcode.Code {
	if !b.layout.InRange(pin) {
		return errcode.OutOfRange
	}
	if !b.layout.Def(pin).HasTimer {
		return errcode.Unsupported
	}
	if !b.reg.Available(pin) {
		return errcode.PinReserved
	}
	if m := b.modes[pin]; m != types.ModeOutput && m != types.ModeAFOutputPushPull {
		return errcode.ModeMismatch
	}
	b.hal.PWMWrite(pin, value)
	return errcode.OK
}

// SetADCSampleTime forwards the converter sample-time selector unchecked.
func (b *Board) SetADCSampleTime(v uint8) {
	b.hal.ADCSetSampleTime(v)
}

// -----------------------------------------------------------------------------
// Utility
// -----------------------------------------------------------------------------

// Map rescales value from [fromStart,fromEnd] to [toStart,toEnd] with
// truncating integer division.
func Map(value, fromStart, fromEnd, toStart, toEnd int64) int64 {
	return mathx.Map(value, fromStart, fromEnd, toStart, toEnd)
}
