package types

// ------------------------
// Pin addressing & levels
// ------------------------

// Pin is a logical pin index into the board layout, 0..TotalPins-1.
type Pin uint16

// Logic levels as returned by digital reads and accepted by digital writes.
const (
	Low  = 0
	High = 1
)

// ------------------------
// Pin modes
// ------------------------

// PinMode mirrors the wiring-level mode of one pin.
type PinMode uint8

const (
	ModeNone PinMode = iota
	ModeInput
	ModeInputPullup
	ModeInputPulldown
	ModeAnalogInput
	ModeOutput
	ModeAFOutputPushPull // alternate function, push-pull (PWM, timer out)
	ModeAFOutputOpenDrain
)

// IsInputLike reports whether the mode is any of the input family, which
// vetoes digital writes.
func (m PinMode) IsInputLike() bool {
	switch m {
	case ModeInput, ModeInputPullup, ModeInputPulldown, ModeAnalogInput:
		return true
	default:
		return false
	}
}

func (m PinMode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeInputPullup:
		return "input_pullup"
	case ModeInputPulldown:
		return "input_pulldown"
	case ModeAnalogInput:
		return "analog_input"
	case ModeOutput:
		return "output"
	case ModeAFOutputPushPull:
		return "af_output_pushpull"
	case ModeAFOutputOpenDrain:
		return "af_output_opendrain"
	default:
		return "none"
	}
}

// ------------------------
// Bit order for shift ops
// ------------------------

type BitOrder uint8

const (
	LSBFirst BitOrder = iota
	MSBFirst
)

// ------------------------
// Board configuration
// ------------------------

// BoardConfig is the JSON-loadable shape of a board layout.
type BoardConfig struct {
	Name           string      `json:"name"`
	TotalPins      int         `json:"total_pins"`
	FirstAnalogPin int         `json:"first_analog_pin"`
	Pins           []PinConfig `json:"pins"`
	SPI            PinGroup    `json:"spi,omitempty"`
	I2C            PinGroup    `json:"i2c,omitempty"`
	Serial1        PinGroup    `json:"serial1,omitempty"`
}

// PinConfig describes one pin's fixed capabilities.
type PinConfig struct {
	Pin        int  `json:"pin"`
	HWPin      int  `json:"hw_pin"`                // provider pin number
	ADCChannel *int `json:"adc_channel,omitempty"` // nil => no ADC
	HasTimer   bool `json:"has_timer,omitempty"`   // PWM-capable
}

// PinGroup lists the pins a peripheral claims while enabled.
type PinGroup []int

// ------------------------
// Diagnostics payloads
// ------------------------

// Reject is published on the diagnostics bus for each refused operation.
// Observable facade behaviour is unchanged; this feed is opt-in.
type Reject struct {
	Op   string `json:"op"`   // "pinMode", "digitalWrite", ...
	Pin  int    `json:"pin"`  // as passed by the caller
	Code string `json:"code"` // errcode short code
	TSms int64  `json:"ts_ms"`
}
