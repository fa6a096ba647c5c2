//go:build !(rp2040 || rp2350)

package peripheral

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// OpenHostSerial opens an OS serial device as a Serial1 backend on host
// builds (development rigs, hardware-in-the-loop benches).
func OpenHostSerial(device string, baud int, readTimeoutMS int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Duration(readTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("peripheral: open serial %s: %w", device, err)
	}
	return port, nil
}
