package render

import "math"

// Gradient maps a forecast value to a shade. ok is false for "off".
type Gradient interface {
	Shade(v float64) (s Shade, ok bool)
}

// Threshold is the three color rain gradient.
type Threshold struct {
	Yellow int
	Red    int
}

// Shade returns green below Yellow, yellow below Red, red otherwise.
func (t Threshold) Shade(v float64) (Shade, bool) {
	switch {
	case v < float64(t.Yellow):
		return Green, true
	case v < float64(t.Red):
		return Yellow, true
	default:
		return Red, true
	}
}

// Palette looks values up in a table keyed by multiples of 10.
type Palette map[int]Shade

// Bucket rounds v to the nearest multiple of 10.
func Bucket(v float64) int {
	return int(math.Round(v/10)) * 10
}

// Shade returns the table entry for v's bucket.
func (p Palette) Shade(v float64) (Shade, bool) {
	s, ok := p[Bucket(v)]
	return s, ok
}

// RainPalette runs green to red across 0..100 percent.
var RainPalette = Palette{
	0:   {0, 1, 0},
	10:  {0.2, 1, 0},
	20:  {0.4, 1, 0},
	30:  {0.6, 1, 0},
	40:  {0.8, 1, 0},
	50:  {1, 1, 0},
	60:  {1, 0.8, 0},
	70:  {1, 0.6, 0},
	80:  {1, 0.4, 0},
	90:  {1, 0.2, 0},
	100: {1, 0, 0},
}

// TemperaturePalette runs blue to red across 30..100 degrees Fahrenheit.
var TemperaturePalette = Palette{
	30:  {0, 0, 1},
	40:  {0, 0.5, 1},
	50:  {0, 1, 1},
	60:  {0, 1, 0.3},
	70:  {0.6, 1, 0},
	80:  {1, 0.8, 0},
	90:  {1, 0.4, 0},
	100: {1, 0, 0},
}
