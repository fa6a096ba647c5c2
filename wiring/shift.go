package wiring

import "github.com/charaf8477/firmware/types"

// ShiftIn clocks 8 bits off dataPin, pulsing clockPin for each. The sample
// is taken while the clock is high.
func (b *Board) ShiftIn(dataPin, clockPin int, order types.BitOrder) uint8 {
	var value uint8
	for i := 0; i < 8; i++ {
		b.DigitalWrite(clockPin, types.High)
		if order == types.LSBFirst {
			value |= uint8(b.DigitalRead(dataPin)) << i
		} else {
			value |= uint8(b.DigitalRead(dataPin)) << (7 - i)
		}
		b.DigitalWrite(clockPin, types.Low)
	}
	return value
}

// ShiftOut clocks the 8 bits of val out on dataPin, pulsing clockPin after
// each bit is presented.
func (b *Board) ShiftOut(dataPin, clockPin int, order types.BitOrder, val uint8) {
	for i := 0; i < 8; i++ {
		bit := types.Low
		if order == types.LSBFirst {
			if val&(1<<i) != 0 {
				bit = types.High
			}
		} else {
			if val&(1<<(7-i)) != 0 {
				bit = types.High
			}
		}
		b.DigitalWrite(dataPin, bit)
		b.DigitalWrite(clockPin, types.High)
		b.DigitalWrite(clockPin, types.Low)
	}
}
