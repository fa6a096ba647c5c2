package wiring

import (
	"testing"

	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/errcode"
	"github.com/charaf8477/firmware/hal/halsim"
	"github.com/charaf8477/firmware/peripheral"
	"github.com/charaf8477/firmware/types"
)

type fixedPort struct {
	name    string
	enabled bool
}

func (p *fixedPort) Name() string    { return p.name }
func (p *fixedPort) IsEnabled() bool { return p.enabled }

type rig struct {
	layout *boards.Layout
	sim    *halsim.Sim
	clock  *halsim.Clock
	wdt    *halsim.Watchdog
	spi    *fixedPort
	wire   *fixedPort
	ser    *fixedPort
	board  *Board
}

func newRig(t *testing.T) *rig {
	t.Helper()
	layout := boards.CoreV1()
	sim := halsim.New(layout)
	clock := halsim.NewClock(0)
	wdt := &halsim.Watchdog{}

	reg := peripheral.NewRegistry()
	spi := &fixedPort{name: "spi"}
	wire := &fixedPort{name: "wire"}
	ser := &fixedPort{name: "serial1"}
	reg.Bind(spi, layout.SPI)
	reg.Bind(wire, layout.I2C)
	reg.Bind(ser, layout.Serial1)

	b, err := NewBoard(Config{
		Layout:      layout,
		HAL:         sim,
		Clock:       clock,
		Watchdog:    wdt,
		Peripherals: reg,
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return &rig{layout: layout, sim: sim, clock: clock, wdt: wdt, spi: spi, wire: wire, ser: ser, board: b}
}

func TestOutOfRangePinsNeverReachHAL(t *testing.T) {
	r := newRig(t)
	total := r.layout.TotalPins()

	for _, pin := range []int{total, total + 5, 1000, -1} {
		r.board.PinMode(pin, types.ModeOutput)
		r.board.DigitalWrite(pin, types.High)
		if got := r.board.DigitalRead(pin); got != types.Low {
			t.Fatalf("digitalRead(%d) = %d, want Low", pin, got)
		}
		r.board.AnalogWrite(pin, 100)
	}
	if r.sim.Calls != (halsim.CallCounts{}) {
		t.Fatalf("HAL was invoked for out-of-range pins: %+v", r.sim.Calls)
	}
	if got := r.board.Rejects("pinMode", errcode.OutOfRange); got != 4 {
		t.Fatalf("pinMode out_of_range count = %d, want 4", got)
	}
}

func TestPinModeRejectsNone(t *testing.T) {
	r := newRig(t)
	r.board.PinMode(5, types.ModeNone)
	if r.sim.Calls.Mode != 0 {
		t.Fatalf("HAL PinMode called for ModeNone")
	}
	if got := r.board.Rejects("pinMode", errcode.ModeMismatch); got != 1 {
		t.Fatalf("mode_mismatch count = %d, want 1", got)
	}
}

func TestReservedPinsRefuseEverything(t *testing.T) {
	r := newRig(t)
	sck := r.layout.SPI[0]

	// Configure while SPI is still disabled, then enable it.
	r.board.PinMode(sck, types.ModeOutput)
	r.spi.enabled = true

	before := r.sim.Calls
	r.board.PinMode(sck, types.ModeInput)
	r.board.DigitalWrite(sck, types.High)
	if got := r.board.DigitalRead(sck); got != types.Low {
		t.Fatalf("digitalRead(reserved) = %d, want Low", got)
	}
	r.board.AnalogWrite(sck, 200)
	if r.sim.Calls != before {
		t.Fatalf("HAL invoked on reserved pin: %+v -> %+v", before, r.sim.Calls)
	}

	// A reserved analog pin also refuses sampling. A4 is MISO on this layout.
	miso := r.layout.SPI[2]
	r.sim.SetADCSample(miso, 1234)
	if got := r.board.AnalogRead(miso); got != types.Low {
		t.Fatalf("analogRead(reserved) = %d, want Low", got)
	}

	r.spi.enabled = false
	r.board.DigitalWrite(sck, types.High)
	if r.sim.Calls.Write != before.Write+1 {
		t.Fatalf("write blocked after peripheral disabled")
	}
}

func TestDigitalWriteOnInputPinIsNoOp(t *testing.T) {
	r := newRig(t)
	r.board.PinMode(4, types.ModeInput)

	r.sim.SetLevel(4, types.Low)
	r.board.DigitalWrite(4, types.High)
	if r.sim.Calls.Write != 0 {
		t.Fatalf("HAL write reached an input pin")
	}
	if got := r.board.DigitalRead(4); got != types.Low {
		t.Fatalf("digitalRead after refused write = %d, want Low", got)
	}
	if got := r.board.Rejects("digitalWrite", errcode.ModeMismatch); got != 1 {
		t.Fatalf("mode_mismatch count = %d, want 1", got)
	}
}

func TestDigitalReadModeGuards(t *testing.T) {
	r := newRig(t)

	// Unconfigured pin reads Low without touching the HAL.
	if got := r.board.DigitalRead(6); got != types.Low {
		t.Fatalf("digitalRead(unconfigured) = %d", got)
	}
	if r.sim.Calls.Read != 0 {
		t.Fatalf("HAL read on unconfigured pin")
	}

	// Alternate-function output modes read Low.
	r.board.PinMode(10, types.ModeAFOutputPushPull)
	r.sim.SetLevel(10, types.High)
	if got := r.board.DigitalRead(10); got != types.Low {
		t.Fatalf("digitalRead(af_output) = %d, want Low", got)
	}

	// A plain output pin reads back its driven level.
	r.board.PinMode(5, types.ModeOutput)
	r.board.DigitalWrite(5, types.High)
	if got := r.board.DigitalRead(5); got != types.High {
		t.Fatalf("digitalRead(output) = %d, want High", got)
	}
}

func TestAnalogReadAliasesLowPins(t *testing.T) {
	r := newRig(t)
	first := r.layout.FirstAnalogPin

	r.sim.SetADCSample(first+2, 3000)
	direct := r.board.AnalogRead(first + 2)
	aliased := r.board.AnalogRead(2)
	if direct != 3000 || aliased != 3000 {
		t.Fatalf("analogRead alias mismatch: direct=%d aliased=%d", direct, aliased)
	}
	if r.sim.Calls.ADC != 2 {
		t.Fatalf("ADC call count = %d, want 2", r.sim.Calls.ADC)
	}
}

func TestAnalogReadRejectsPinsWithoutChannel(t *testing.T) {
	r := newRig(t)

	// Pin 18 (TX) has no converter channel and is above the alias window.
	if got := r.board.AnalogRead(18); got != types.Low {
		t.Fatalf("analogRead(18) = %d, want Low", got)
	}
	if r.sim.Calls.ADC != 0 {
		t.Fatalf("HAL ADC invoked for channel-less pin")
	}
	if got := r.board.Rejects("analogRead", errcode.Unsupported); got != 1 {
		t.Fatalf("unsupported count = %d, want 1", got)
	}
}

func TestAnalogWriteGuards(t *testing.T) {
	r := newRig(t)
	first := r.layout.FirstAnalogPin

	// No timer on A3.
	r.board.PinMode(first+3, types.ModeOutput)
	r.board.AnalogWrite(first+3, 64)
	if r.sim.Calls.PWM != 0 {
		t.Fatalf("PWM reached a timer-less pin")
	}

	// Wrong mode on a timer pin.
	r.board.PinMode(first, types.ModeInput)
	r.board.AnalogWrite(first, 64)
	if r.sim.Calls.PWM != 0 {
		t.Fatalf("PWM reached an input pin")
	}
	if got := r.board.Rejects("analogWrite", errcode.ModeMismatch); got != 1 {
		t.Fatalf("mode_mismatch count = %d, want 1", got)
	}

	// Output mode succeeds at the fixed carrier.
	r.board.PinMode(first, types.ModeOutput)
	r.board.AnalogWrite(first, 200)
	recs := r.sim.PWM()
	if len(recs) != 1 || recs[0].Duty != 200 || recs[0].FreqHz != 500 {
		t.Fatalf("unexpected PWM records: %+v", recs)
	}

	// AF push-pull is the other accepted mode.
	r.board.PinMode(first, types.ModeAFOutputPushPull)
	r.board.AnalogWrite(first, 10)
	if got := len(r.sim.PWM()); got != 2 {
		t.Fatalf("PWM record count = %d, want 2", got)
	}
}

func TestSetADCSampleTimePassesThrough(t *testing.T) {
	r := newRig(t)
	r.board.SetADCSampleTime(7)
	if got := r.sim.SampleTime(); got != 7 {
		t.Fatalf("sample time = %d, want 7", got)
	}
}

func TestMapProperties(t *testing.T) {
	cases := []struct {
		value, fromStart, fromEnd, toStart, toEnd, want int64
	}{
		{5, 0, 10, 0, 100, 50},
		{0, 0, 10, 0, 100, 0},
		{10, 0, 10, 0, 100, 100},
		{512, 0, 1023, 0, 255, 127}, // truncating division
		{5, 10, 0, 0, 100, 50},      // reversed input range
		{3, 7, 7, 42, 99, 42},       // degenerate range returns toStart
	}
	for _, c := range cases {
		if got := Map(c.value, c.fromStart, c.fromEnd, c.toStart, c.toEnd); got != c.want {
			t.Fatalf("Map(%d,%d,%d,%d,%d) = %d, want %d",
				c.value, c.fromStart, c.fromEnd, c.toStart, c.toEnd, got, c.want)
		}
	}
}
