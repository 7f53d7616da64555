package led

import (
	"fmt"
	"sync"
)

// Color is an RGB triple, 0-255 per channel.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Off is the unlit pixel.
var Off = Color{}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsOff reports whether every channel is zero.
func (c Color) IsOff() bool {
	return c == Off
}

// Driver pushes a complete frame to a physical or virtual strip.
type Driver interface {
	Show(pixels []Color) error
	Close() error
}

// FlushFunc observes every flushed frame.
type FlushFunc func(strip string, frame []Color)

// Strip is a pixel buffer bound to a driver.
type Strip struct {
	name   string
	driver Driver

	mu        sync.Mutex
	pixels    []Color
	observers []FlushFunc
}

// NewStrip creates a strip of count pixels, all off.
func NewStrip(name string, count int, driver Driver) *Strip {
	return &Strip{
		name:   name,
		driver: driver,
		pixels: make([]Color, count),
	}
}

// Name returns the strip name ("rain" or "temperature").
func (s *Strip) Name() string {
	return s.name
}

// Len returns the pixel count.
func (s *Strip) Len() int {
	return len(s.pixels)
}

// Set changes one pixel in the buffer.
func (s *Strip) Set(i int, c Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pixels) {
		return fmt.Errorf("pixel %d out of range [0,%d)", i, len(s.pixels))
	}
	s.pixels[i] = c
	return nil
}

// Get returns one buffered pixel.
func (s *Strip) Get(i int) Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pixels) {
		return Off
	}
	return s.pixels[i]
}

// Fill sets every pixel in the buffer.
func (s *Strip) Fill(c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// Frame returns a copy of the buffer.
func (s *Strip) Frame() []Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Color(nil), s.pixels...)
}

// OnFlush registers fn to receive every flushed frame.
func (s *Strip) OnFlush(fn FlushFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Flush writes the whole buffer to the driver.
func (s *Strip) Flush() error {
	s.mu.Lock()
	frame := append([]Color(nil), s.pixels...)
	observers := append([]FlushFunc(nil), s.observers...)
	s.mu.Unlock()

	if err := s.driver.Show(frame); err != nil {
		return fmt.Errorf("flush %s strip: %w", s.name, err)
	}
	for _, fn := range observers {
		fn(s.name, frame)
	}
	return nil
}

// Close releases the driver.
func (s *Strip) Close() error {
	return s.driver.Close()
}
