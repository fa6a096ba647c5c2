package mathx

import "golang.org/x/exp/constraints"

// Map rescales value from [fromStart,fromEnd] to [toStart,toEnd] using
// truncating integer division, the classic Arduino map().
// A degenerate input range (fromEnd == fromStart) returns toStart rather
// than dividing by zero.
func Map[T constraints.Signed](value, fromStart, fromEnd, toStart, toEnd T) T {
	if fromEnd == fromStart {
		return toStart
	}
	return (value-fromStart)*(toEnd-toStart)/(fromEnd-fromStart) + toStart
}

// MapU16 maps x in [inMin,inMax] to [outMin,outMax] with 32-bit intermediates.
// Clamps to the out range if the input is outside.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax == inMin {
		return outMin
	}
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	den := uint32(inMax - inMin)
	return uint16(uint32(outMin) + num/den)
}
