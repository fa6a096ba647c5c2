// Command wiringdemo exercises the pin facade against the simulated HAL:
// a blink on D7, a shift-register loopback on D2/D3, a handful of calls the
// facade must refuse, and a delay that pumps the cloud service.
//
// Set CLOUD_ADDR=host:port to point the heartbeat at a real MQTT broker.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/charaf8477/firmware/boards"
	"github.com/charaf8477/firmware/bus"
	"github.com/charaf8477/firmware/cloud"
	"github.com/charaf8477/firmware/hal/halsim"
	"github.com/charaf8477/firmware/peripheral"
	"github.com/charaf8477/firmware/types"
	"github.com/charaf8477/firmware/wiring"
)

// loopSPI is a stand-in bus so the demo can enable the SPI port.
type loopSPI struct{}

func (loopSPI) Tx(w, r []byte) (err error) {
	copy(r, w)
	return nil
}

func (loopSPI) Transfer(b byte) (byte, error) { return b, nil }

func main() {
	fmt.Println("== wiring demo (simulated HAL) ==")

	layout := boards.CoreV1()
	sim := halsim.New(layout)
	clock := halsim.NewClock(0)
	wdt := &halsim.Watchdog{}

	// Diagnostics bus and the rejection feed.
	b := bus.NewBus(64)
	conn := b.NewConnection("main")
	rejects := conn.Subscribe(wiring.TopicReject)
	defer conn.Unsubscribe(rejects)

	// Peripheral ports bound to their layout pin groups.
	reg := peripheral.NewRegistry()
	spi := peripheral.NewSPIPort("spi")
	reg.Bind(spi, layout.SPI)
	wire := peripheral.NewI2CPort("wire")
	reg.Bind(wire, layout.I2C)
	serial1 := peripheral.NewSerialPort("serial1")
	reg.Bind(serial1, layout.Serial1)

	// Cloud heartbeat, pumped from inside Delay once a transport attaches.
	svc := cloud.NewService(cloud.Config{ClientID: "wiringdemo", HeartbeatEvery: 2})
	if addr := os.Getenv("CLOUD_ADDR"); addr != "" {
		if c, err := net.Dial("tcp", addr); err == nil {
			svc.Attach(c)
			fmt.Println("cloud: attached to", addr)
		} else {
			fmt.Println("cloud: dial failed:", err)
		}
	}

	board, err := wiring.NewBoard(wiring.Config{
		Layout:      layout,
		HAL:         sim,
		Clock:       clock,
		Watchdog:    wdt,
		Peripherals: reg,
		Background:  svc,
		Diag:        conn,
	})
	if err != nil {
		fmt.Println("board:", err)
		os.Exit(1)
	}

	// Blink D7.
	board.PinMode(7, types.ModeOutput)
	for i := 0; i < 3; i++ {
		board.DigitalWrite(7, types.High)
		board.Delay(100)
		board.DigitalWrite(7, types.Low)
		board.Delay(100)
	}
	fmt.Printf("D7 level after blink: %d (watchdog kicks: %d)\n", sim.Level(7), wdt.Kicks)

	// Shift-register loopback on D2 (data) / D3 (clock).
	sim.WireShiftRegister(2, 3)
	board.PinMode(2, types.ModeOutput)
	board.PinMode(3, types.ModeOutput)
	board.ShiftOut(2, 3, types.MSBFirst, 0xA5)
	board.PinMode(2, types.ModeInput)
	fmt.Printf("shift loopback: wrote 0xA5, read 0x%02X\n", board.ShiftIn(2, 3, types.MSBFirst))

	// Analog sampling through the alias window: A2 as channel 2.
	sim.SetADCSample(layout.FirstAnalogPin+2, 2048)
	fmt.Printf("analogRead(2) = %d, analogRead(12) = %d\n", board.AnalogRead(2), board.AnalogRead(12))

	// Calls the facade must refuse.
	spi.Enable(loopSPI{})
	board.DigitalWrite(layout.SPI[0], types.High) // SCK while SPI enabled
	spi.Disable()
	board.PinMode(99, types.ModeOutput) // out of range
	board.DigitalWrite(2, types.High)   // D2 is an input again
	board.AnalogWrite(13, 128)          // A3 has no timer
	fmt.Printf("rejected operations: %d\n", board.RejectTotal())

	for {
		select {
		case m := <-rejects.Channel():
			if r, ok := m.Payload.(types.Reject); ok {
				fmt.Printf("  reject: op=%s pin=%d code=%s\n", r.Op, r.Pin, r.Code)
			}
		default:
			fmt.Printf("cloud: pumps=%d published=%d\n", svc.Pumps(), svc.Published())
			return
		}
	}
}
