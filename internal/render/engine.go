package render

import (
	"fmt"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
)

// Recency modes.
const (
	RecencyPrevious = "previous"
	RecencyEarlier  = "earlier"
)

const (
	// LoadingBrightness is used for the connect animation.
	LoadingBrightness = 5
	// ConnectedBrightness is used for the connected indicator.
	ConnectedBrightness = 2
)

// Options are the rendering rules, fixed for the process lifetime.
type Options struct {
	Brightness     int
	Reversed       bool
	Rain           Gradient
	Temperature    Gradient
	Recency        string
	RecencyDivisor int
}

// Engine draws onto the rain strip and the optional temperature strip.
type Engine struct {
	opts Options
	rain *led.Strip
	temp *led.Strip
}

// NewEngine creates an engine. temp may be nil.
func NewEngine(opts Options, rain, temp *led.Strip) *Engine {
	if opts.Rain == nil {
		opts.Rain = Threshold{Yellow: 30, Red: 55}
	}
	if opts.Temperature == nil {
		opts.Temperature = TemperaturePalette
	}
	if opts.RecencyDivisor < 1 {
		opts.RecencyDivisor = 1
	}
	return &Engine{opts: opts, rain: rain, temp: temp}
}

// Strips returns the strips the engine draws on.
func (e *Engine) Strips() []*led.Strip {
	if e.temp == nil {
		return []*led.Strip{e.rain}
	}
	return []*led.Strip{e.rain, e.temp}
}

// Fill sets every pixel of every strip to s at brightness and flushes.
func (e *Engine) Fill(s Shade, brightness float64) error {
	c := Scale(s, brightness)
	for _, strip := range e.Strips() {
		strip.Fill(c)
		if err := strip.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// FillNamed is Fill by shade name.
func (e *Engine) FillNamed(name string, brightness float64) error {
	s, ok := Named(name)
	if !ok {
		return fmt.Errorf("unknown color %q", name)
	}
	return e.Fill(s, brightness)
}

// Off turns every strip off.
func (e *Engine) Off() error {
	return e.Fill(Off, 0)
}

// Startup shows the boot color.
func (e *Engine) Startup() error {
	return e.Fill(Cyan, float64(e.opts.Brightness))
}

// Connected shows the dim white "online" indicator on the rain strip.
func (e *Engine) Connected() error {
	e.rain.Fill(Scale(White, ConnectedBrightness))
	return e.rain.Flush()
}

// Loading advances the connect animation by one pixel and returns the next
// step. Once the strip is full it is cleared and the animation restarts at 0.
func (e *Engine) Loading(step int) (int, error) {
	if step < 0 {
		step = 0
	}
	if step >= e.rain.Len() {
		e.rain.Fill(led.Off)
		return 0, e.rain.Flush()
	}
	if err := e.rain.Set(step, Scale(Cyan, LoadingBrightness)); err != nil {
		return 0, err
	}
	return step + 1, e.rain.Flush()
}

// SlotBrightness returns the brightness for slot given the slot of the
// current hour (current < 0 when the current hour is not shown).
func (e *Engine) SlotBrightness(slot, current int) float64 {
	b := float64(e.opts.Brightness)
	if current < 0 {
		return b
	}
	switch {
	case slot == current:
		return 100
	case e.dimmed(slot, current):
		return b / float64(e.opts.RecencyDivisor)
	default:
		return b
	}
}

// dimmed reports whether slot is a past slot drawn at reduced brightness:
// the one before current, or every earlier one in "earlier" mode.
func (e *Engine) dimmed(slot, current int) bool {
	if current < 0 || slot >= current {
		return false
	}
	if e.opts.Recency == RecencyEarlier {
		return true
	}
	return slot == current-1
}

// RainColor is the rain strip color of a mapped slot. dimmed marks a
// recency-dimmed past slot; only those fall back to dry when the provider
// no longer reports them.
func (e *Engine) RainColor(slot forecast.Slot, dimmed bool, brightness float64) led.Color {
	rain := slot.Entry.Rain
	if rain == nil {
		if !dimmed || slot.Present {
			return led.Off
		}
		// Providers stop reporting hours once they pass.
		rain = forecast.Int(0)
	}
	s, ok := e.opts.Rain.Shade(float64(*rain))
	if !ok {
		return led.Off
	}
	return Scale(s, brightness)
}

// TemperatureColor is the temperature strip color of a mapped slot.
func (e *Engine) TemperatureColor(slot forecast.Slot, brightness float64) led.Color {
	if slot.Entry.Temp == nil {
		return led.Off
	}
	s, ok := e.opts.Temperature.Shade(*slot.Entry.Temp)
	if !ok {
		return led.Off
	}
	return Scale(s, brightness)
}

// Forecast draws a mapped window with the current hour highlighted and
// flushes every strip once.
func (e *Engine) Forecast(w forecast.Window, currentHour int) error {
	current, ok := w.SlotOf(currentHour)
	if !ok {
		current = -1
	}

	for i, slot := range w {
		brightness := e.SlotBrightness(i, current)
		c := e.RainColor(slot, e.dimmed(i, current), brightness)
		if err := e.paint(e.rain, i, len(w), slot, c); err != nil {
			return err
		}

		if e.temp != nil {
			tc := e.TemperatureColor(slot, brightness)
			if err := e.paint(e.temp, i, len(w), slot, tc); err != nil {
				return err
			}
		}
	}

	for _, strip := range e.Strips() {
		if err := strip.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) paint(strip *led.Strip, i, n int, slot forecast.Slot, c led.Color) error {
	pixel := forecast.PixelIndex(i, n, e.opts.Reversed)
	value := "none"
	if slot.Entry.Rain != nil {
		value = fmt.Sprintf("%d%%", *slot.Entry.Rain)
	}
	logging.LogPixel(strip.Name(), i, pixel, slot.Hour, value, c.R, c.G, c.B)
	return strip.Set(pixel, c)
}
