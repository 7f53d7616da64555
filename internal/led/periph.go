package led

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiostream"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// nrzled requires the SPI clock at 3x the 800kHz NRZ bit rate.
const spiFreq = 2500 * physic.KiloHertz

// PeriphDriver drives a WS281x strip through periph.io.
type PeriphDriver struct {
	dev  *nrzled.Dev
	port spi.PortCloser
	buf  []byte
}

func initHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

// OpenSPI opens a strip of count pixels on the named SPI port ("" for the first one).
func OpenSPI(portName string, count int) (*PeriphDriver, error) {
	if err := initHost(); err != nil {
		return nil, err
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open SPI port %q: %w", portName, err)
	}

	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      spiFreq,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled on SPI %q: %w", portName, err)
	}

	return &PeriphDriver{dev: dev, port: port, buf: make([]byte, 3*count)}, nil
}

// OpenGPIO opens a strip of count pixels streamed on a DMA-capable GPIO pin.
func OpenGPIO(pin int, count int) (*PeriphDriver, error) {
	if err := initHost(); err != nil {
		return nil, err
	}

	p := gpioreg.ByName(strconv.Itoa(pin))
	if p == nil {
		return nil, fmt.Errorf("GPIO%d not found", pin)
	}
	stream, ok := p.(gpiostream.PinOut)
	if !ok {
		return nil, fmt.Errorf("GPIO%d does not support streaming", pin)
	}

	dev, err := nrzled.NewStream(stream, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      800 * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled on GPIO%d: %w", pin, err)
	}

	return &PeriphDriver{dev: dev, buf: make([]byte, 3*count)}, nil
}

// Show writes the frame as packed RGB.
func (d *PeriphDriver) Show(pixels []Color) error {
	d.buf = packRGB(d.buf, pixels)
	_, err := d.dev.Write(d.buf)
	return err
}

// Close turns the strip off and releases the port.
func (d *PeriphDriver) Close() error {
	err := d.dev.Halt()
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func packRGB(buf []byte, pixels []Color) []byte {
	buf = buf[:0]
	for _, c := range pixels {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}
