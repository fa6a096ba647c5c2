package peripheral

import (
	"io"

	"tinygo.org/x/drivers"

	"github.com/charaf8477/firmware/errcode"
)

// -----------------------------------------------------------------------------
// SPI
// -----------------------------------------------------------------------------

// SPIPort exposes a drivers.SPI bus to device code once enabled, and its
// enabled state to the reservation registry.
type SPIPort struct {
	name    string
	bus     drivers.SPI
	enabled bool
}

func NewSPIPort(name string) *SPIPort { return &SPIPort{name: name} }

func (p *SPIPort) Name() string    { return p.name }
func (p *SPIPort) IsEnabled() bool { return p.enabled }

// Enable attaches the underlying bus and claims the port's pins.
func (p *SPIPort) Enable(bus drivers.SPI) {
	p.bus = bus
	p.enabled = true
}

func (p *SPIPort) Disable() {
	p.enabled = false
	p.bus = nil
}

// Bus returns the attached bus while enabled.
func (p *SPIPort) Bus() (drivers.SPI, error) {
	if !p.enabled || p.bus == nil {
		return nil, errcode.UnknownPort
	}
	return p.bus, nil
}

// -----------------------------------------------------------------------------
// I2C (Wire)
// -----------------------------------------------------------------------------

type I2CPort struct {
	name    string
	bus     drivers.I2C
	enabled bool
}

func NewI2CPort(name string) *I2CPort { return &I2CPort{name: name} }

func (p *I2CPort) Name() string    { return p.name }
func (p *I2CPort) IsEnabled() bool { return p.enabled }

func (p *I2CPort) Enable(bus drivers.I2C) {
	p.bus = bus
	p.enabled = true
}

func (p *I2CPort) Disable() {
	p.enabled = false
	p.bus = nil
}

func (p *I2CPort) Bus() (drivers.I2C, error) {
	if !p.enabled || p.bus == nil {
		return nil, errcode.UnknownPort
	}
	return p.bus, nil
}

// -----------------------------------------------------------------------------
// Serial1
// -----------------------------------------------------------------------------

// SerialPort exposes a byte stream (UART on device, serial device or pipe on
// host) once enabled.
type SerialPort struct {
	name    string
	rw      io.ReadWriter
	enabled bool
}

func NewSerialPort(name string) *SerialPort { return &SerialPort{name: name} }

func (p *SerialPort) Name() string    { return p.name }
func (p *SerialPort) IsEnabled() bool { return p.enabled }

func (p *SerialPort) Enable(rw io.ReadWriter) {
	p.rw = rw
	p.enabled = true
}

func (p *SerialPort) Disable() {
	p.enabled = false
	p.rw = nil
}

func (p *SerialPort) Read(b []byte) (int, error) {
	if !p.enabled || p.rw == nil {
		return 0, errcode.UnknownPort
	}
	return p.rw.Read(b)
}

func (p *SerialPort) Write(b []byte) (int, error) {
	if !p.enabled || p.rw == nil {
		return 0, errcode.UnknownPort
	}
	return p.rw.Write(b)
}
