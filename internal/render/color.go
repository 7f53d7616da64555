package render

import (
	"math"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
)

// Shade is a color as per-channel fractions of full intensity.
type Shade struct {
	R, G, B float64
}

// Named shades.
var (
	Off    = Shade{}
	Red    = Shade{1, 0, 0}
	Green  = Shade{0, 1, 0}
	Blue   = Shade{0, 0, 1}
	Yellow = Shade{1, 1, 0}
	Cyan   = Shade{0, 1, 1}
	White  = Shade{1, 1, 1}
)

var named = map[string]Shade{
	"off":    Off,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"yellow": Yellow,
	"cyan":   Cyan,
	"white":  White,
}

// Named looks up a shade by name.
func Named(name string) (Shade, bool) {
	s, ok := named[name]
	return s, ok
}

// ClampBrightness limits b to 0..100.
func ClampBrightness(b float64) float64 {
	switch {
	case b < 0:
		return 0
	case b > 100:
		return 100
	default:
		return b
	}
}

// Scale converts s to an RGB color at brightness percent.
func Scale(s Shade, brightness float64) led.Color {
	b := ClampBrightness(brightness) / 100
	return led.Color{
		R: channel(s.R, b),
		G: channel(s.G, b),
		B: channel(s.B, b),
	}
}

func channel(frac, b float64) uint8 {
	if frac <= 0 {
		return 0
	}
	if frac > 1 {
		frac = 1
	}
	return uint8(math.Round(255 * b * frac))
}
