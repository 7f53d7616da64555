package led

import (
	"fmt"
	"io"
)

// Driver kinds accepted by Open.
const (
	DriverSPI      = "spi"
	DriverGPIO     = "gpio"
	DriverTerminal = "terminal"
	DriverNone     = "none"
)

// Target names the hardware behind one strip.
type Target struct {
	Name    string // strip name used in logs and the terminal label
	Driver  string
	SPIPort string
	GPIOPin int
	Count   int
}

// Open returns the driver described by t. Terminal output goes to out.
func Open(t Target, out io.Writer) (Driver, error) {
	switch t.Driver {
	case DriverSPI:
		return OpenSPI(t.SPIPort, t.Count)
	case DriverGPIO:
		return OpenGPIO(t.GPIOPin, t.Count)
	case DriverTerminal:
		return NewTerminalDriver(out, t.Name), nil
	case DriverNone, "":
		return NewMemoryDriver(1), nil
	default:
		return nil, fmt.Errorf("unknown LED driver %q", t.Driver)
	}
}

// OpenStrip opens the driver for t and wraps it in a Strip.
func OpenStrip(t Target, out io.Writer) (*Strip, error) {
	d, err := Open(t, out)
	if err != nil {
		return nil, err
	}
	return NewStrip(t.Name, t.Count, d), nil
}
