package errcode

// Code is a stable, diagnostics-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Facade rejection reasons. The facade itself stays fail-silent;
	// these surface only through the diagnostics feed.
	OutOfRange   Code = "out_of_range"
	ModeMismatch Code = "mode_mismatch"
	PinReserved  Code = "pin_reserved"
	Unsupported  Code = "unsupported" // no ADC channel / no timer on the pin

	// Peripheral registry
	UnknownPort Code = "unknown_port"
	PortInUse   Code = "port_in_use"

	// Cloud/background service
	NotConnected Code = "not_connected"
	Timeout      Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
