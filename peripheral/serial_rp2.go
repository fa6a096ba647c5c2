//go:build rp2040

package peripheral

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// UARTStream adapts a uartx UART to the io.ReadWriter shape SerialPort wants.
type UARTStream struct {
	u *uartx.UART
}

// OpenUART configures the numbered hardware UART as a Serial1 backend.
func OpenUART(n int, baud uint32, tx, rx int) (*UARTStream, error) {
	var hw *uartx.UART
	switch n {
	case 0:
		hw = uartx.UART0
	default:
		hw = uartx.UART1
	}
	// Defaults inside uartx apply if baud is zero.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx),
		RX:       machine.Pin(rx),
	}); err != nil {
		return nil, err
	}
	return &UARTStream{u: hw}, nil
}

func (s *UARTStream) Write(b []byte) (int, error) { return s.u.Write(b) }

func (s *UARTStream) Read(b []byte) (int, error) {
	return s.u.RecvSomeContext(context.Background(), b)
}
