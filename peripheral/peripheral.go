// Package peripheral tracks which fixed-function ports (SPI, I2C, Serial1)
// are enabled and which pins they occupy. The wiring facade consults the
// registry before every raw pin operation: a pin covered by an enabled port
// is off limits regardless of its stored mode.
package peripheral

import "github.com/charaf8477/firmware/types"

// Port is the reservation view of a peripheral driver.
type Port interface {
	Name() string
	IsEnabled() bool
}

type binding struct {
	port Port
	pins types.PinGroup
}

// Registry binds ports to the pin groups they claim while enabled.
// Single-owner, single-goroutine access; no locking by design.
type Registry struct {
	binds []binding
}

func NewRegistry() *Registry { return &Registry{} }

// Bind registers a port with the pins it occupies when enabled.
func (r *Registry) Bind(port Port, pins types.PinGroup) {
	r.binds = append(r.binds, binding{port: port, pins: pins})
}

// Available reports whether pin is free of any enabled port.
// Pins nobody claims are always available.
func (r *Registry) Available(pin int) bool {
	_, reserved := r.Owner(pin)
	return !reserved
}

// Owner returns the name of the enabled port claiming pin, if any.
func (r *Registry) Owner(pin int) (string, bool) {
	for _, b := range r.binds {
		if !b.port.IsEnabled() {
			continue
		}
		for _, p := range b.pins {
			if p == pin {
				return b.port.Name(), true
			}
		}
	}
	return "", false
}
