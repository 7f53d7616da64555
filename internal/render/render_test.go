package render

import (
	"testing"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
)

func TestScale(t *testing.T) {
	if got := Scale(Red, 20); got != (led.Color{R: 51}) {
		t.Errorf("Scale(red, 20) = %v, want {51 0 0}", got)
	}
	if got := Scale(Yellow, 100); got != (led.Color{R: 255, G: 255}) {
		t.Errorf("Scale(yellow, 100) = %v, want {255 255 0}", got)
	}
	if got := Scale(White, 0); got != led.Off {
		t.Errorf("Scale(white, 0) = %v, want off", got)
	}
	if got := Scale(Shade{0.5, 0, 0}, 50); got.R != 64 {
		t.Errorf("Scale(half red, 50).R = %d, want 64", got.R)
	}
}

func TestScaleClampsBrightness(t *testing.T) {
	for _, b := range []float64{101, 150, 1000} {
		if Scale(Cyan, b) != Scale(Cyan, 100) {
			t.Errorf("Scale(cyan, %v) differs from brightness 100", b)
		}
	}
	if Scale(Cyan, -5) != Scale(Cyan, 0) {
		t.Error("negative brightness should clamp to 0")
	}
}

func TestScaleIsMonotonic(t *testing.T) {
	shades := []Shade{Red, Green, Blue, Yellow, Cyan, White, {0.3, 0.7, 0.1}}
	for _, s := range shades {
		prev := Scale(s, 0)
		for b := 1; b <= 120; b++ {
			cur := Scale(s, float64(b))
			if cur.R < prev.R || cur.G < prev.G || cur.B < prev.B {
				t.Fatalf("Scale(%v, %d) = %v decreased from %v", s, b, cur, prev)
			}
			prev = cur
		}
	}
}

func TestThreshold(t *testing.T) {
	g := Threshold{Yellow: 30, Red: 55}
	tests := []struct {
		v    float64
		want Shade
	}{
		{0, Green},
		{29, Green},
		{30, Yellow},
		{54, Yellow},
		{55, Red},
		{100, Red},
	}
	for _, tt := range tests {
		got, ok := g.Shade(tt.v)
		if !ok || got != tt.want {
			t.Errorf("Threshold.Shade(%v) = %v, %v, want %v", tt.v, got, ok, tt.want)
		}
	}
}

func TestPaletteBuckets(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0}, {4, 0}, {5, 10}, {14.9, 10}, {96, 100}, {-3, 0},
	}
	for _, tt := range tests {
		if got := Bucket(tt.v); got != tt.want {
			t.Errorf("Bucket(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}

	if s, ok := RainPalette.Shade(98); !ok || s != Red {
		t.Errorf("RainPalette.Shade(98) = %v, %v, want red", s, ok)
	}
	if _, ok := TemperaturePalette.Shade(12); ok {
		t.Error("TemperaturePalette.Shade(12) should be out of table")
	}
	if _, ok := TemperaturePalette.Shade(112); ok {
		t.Error("TemperaturePalette.Shade(112) should be out of table")
	}
}

func newTestEngine(opts Options, n int, withTemp bool) (*Engine, *led.MemoryDriver, *led.MemoryDriver) {
	rainMem := led.NewMemoryDriver(16)
	rain := led.NewStrip("rain", n, rainMem)
	var temp *led.Strip
	var tempMem *led.MemoryDriver
	if withTemp {
		tempMem = led.NewMemoryDriver(16)
		temp = led.NewStrip("temperature", n, tempMem)
	}
	return NewEngine(opts, rain, temp), rainMem, tempMem
}

// frameBySlot reorders a physical frame into slot order.
func frameBySlot(frame []led.Color, reversed bool) []led.Color {
	out := make([]led.Color, len(frame))
	for i := range frame {
		out[i] = frame[forecast.PixelIndex(i, len(frame), reversed)]
	}
	return out
}

func TestForecastEndToEnd(t *testing.T) {
	for _, divisor := range []int{3, 4} {
		opts := Options{
			Brightness:     20,
			Reversed:       true,
			Rain:           Threshold{Yellow: 30, Red: 55},
			Recency:        RecencyPrevious,
			RecencyDivisor: divisor,
		}
		e, mem, _ := newTestEngine(opts, 15, false)

		w := forecast.BuildWindow(8, 15).Map(forecast.Forecast{
			9:  {Rain: forecast.Int(20)},
			15: {Rain: forecast.Int(60)},
			22: {},
		})
		if err := e.Forecast(w, 9); err != nil {
			t.Fatalf("Forecast() error = %v", err)
		}

		frames := mem.Frames()
		if len(frames) != 1 {
			t.Fatalf("flushes = %d, want 1", len(frames))
		}
		slots := frameBySlot(frames[0], true)

		if got := slots[1]; got != Scale(Green, 100) {
			t.Errorf("hour 9 = %v, want full green", got)
		}
		if got := slots[7]; got != Scale(Red, 20) {
			t.Errorf("hour 15 = %v, want red at 20%%", got)
		}
		if got := slots[14]; got != led.Off {
			t.Errorf("hour 22 = %v, want off", got)
		}
		if got, want := slots[0], Scale(Green, 20/float64(divisor)); got != want || got == led.Off {
			t.Errorf("hour 8 = %v, want dimmed green %v", got, want)
		}
		for i := 2; i < 14; i++ {
			if i == 7 {
				continue
			}
			if slots[i] != led.Off {
				t.Errorf("hour %d = %v, want off", 8+i, slots[i])
			}
		}

		// Reversed: slot 0 lands on the last physical pixel.
		if frames[0][14] != slots[0] {
			t.Error("slot 0 should be written to pixel 14")
		}
	}
}

func TestSlotBrightnessRecency(t *testing.T) {
	prev, _, _ := newTestEngine(Options{Brightness: 30, Recency: RecencyPrevious, RecencyDivisor: 3}, 5, false)
	earlier, _, _ := newTestEngine(Options{Brightness: 30, Recency: RecencyEarlier, RecencyDivisor: 3}, 5, false)

	tests := []struct {
		slot, current int
		prev, earlier float64
	}{
		{3, 3, 100, 100},
		{2, 3, 10, 10},
		{0, 3, 30, 10},
		{4, 3, 30, 30},
		{0, -1, 30, 30},
	}
	for _, tt := range tests {
		if got := prev.SlotBrightness(tt.slot, tt.current); got != tt.prev {
			t.Errorf("previous: SlotBrightness(%d, %d) = %v, want %v", tt.slot, tt.current, got, tt.prev)
		}
		if got := earlier.SlotBrightness(tt.slot, tt.current); got != tt.earlier {
			t.Errorf("earlier: SlotBrightness(%d, %d) = %v, want %v", tt.slot, tt.current, got, tt.earlier)
		}
	}
}

func TestForecastDryFallbackOnlyOnDimmedSlots(t *testing.T) {
	tests := []struct {
		recency string
		want    []bool // lit per slot 0..2; slot 3 is the current hour
	}{
		{RecencyPrevious, []bool{false, false, true}},
		{RecencyEarlier, []bool{true, true, true}},
	}
	for _, tt := range tests {
		e, mem, _ := newTestEngine(Options{
			Brightness:     30,
			Rain:           Threshold{Yellow: 30, Red: 55},
			Recency:        tt.recency,
			RecencyDivisor: 3,
		}, 5, false)

		w := forecast.BuildWindow(8, 5).Map(forecast.Forecast{})
		if err := e.Forecast(w, 11); err != nil {
			t.Fatalf("Forecast() error = %v", err)
		}
		frame := mem.Last()
		for i, lit := range tt.want {
			want := led.Off
			if lit {
				want = Scale(Green, 10)
			}
			if frame[i] != want {
				t.Errorf("%s: slot %d = %v, want %v", tt.recency, i, frame[i], want)
			}
		}
		if frame[3] != led.Off || frame[4] != led.Off {
			t.Errorf("%s: current and future slots without data = %v, %v, want off", tt.recency, frame[3], frame[4])
		}
	}
}

func TestForecastCurrentHourOutsideWindow(t *testing.T) {
	e, mem, _ := newTestEngine(Options{Brightness: 20, Rain: Threshold{Yellow: 30, Red: 55}}, 4, false)

	w := forecast.BuildWindow(8, 4).Map(forecast.Forecast{8: {Rain: forecast.Int(40)}})
	if err := e.Forecast(w, 20); err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	frame := mem.Last()
	if frame[0] != Scale(Yellow, 20) {
		t.Errorf("hour 8 = %v, want yellow at configured brightness", frame[0])
	}
	for i := 1; i < 4; i++ {
		if frame[i] != led.Off {
			t.Errorf("pixel %d = %v, want off", i, frame[i])
		}
	}
}

func TestForecastTemperatureStrip(t *testing.T) {
	e, rainMem, tempMem := newTestEngine(Options{Brightness: 50, Recency: RecencyPrevious, RecencyDivisor: 3}, 3, true)

	w := forecast.BuildWindow(12, 3).Map(forecast.Forecast{
		12: {Rain: forecast.Int(10), Temp: forecast.Float(71.6)},
		13: {Rain: forecast.Int(80), Temp: forecast.Float(12)},
	})
	if err := e.Forecast(w, 12); err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	if rainMem.Last() == nil || tempMem.Last() == nil {
		t.Fatal("both strips should be flushed")
	}
	temp := tempMem.Last()
	if temp[0] != Scale(TemperaturePalette[70], 100) {
		t.Errorf("temp slot 0 = %v, want 70F shade at full brightness", temp[0])
	}
	if temp[1] != led.Off {
		t.Errorf("temp slot 1 = %v, want off (out of table)", temp[1])
	}
	if temp[2] != led.Off {
		t.Errorf("temp slot 2 = %v, want off (no data)", temp[2])
	}
}

func TestLoadingAnimation(t *testing.T) {
	e, mem, _ := newTestEngine(Options{Brightness: 20}, 3, false)

	step := 0
	var err error
	for i := 0; i < 3; i++ {
		step, err = e.Loading(step)
		if err != nil {
			t.Fatalf("Loading() error = %v", err)
		}
		if step != i+1 {
			t.Errorf("step = %d, want %d", step, i+1)
		}
		if got := mem.Last()[i]; got != Scale(Cyan, LoadingBrightness) {
			t.Errorf("pixel %d = %v, want loading cyan", i, got)
		}
	}

	step, err = e.Loading(step)
	if err != nil || step != 0 {
		t.Fatalf("Loading() at end = %d, %v, want 0, nil", step, err)
	}
	for i, c := range mem.Last() {
		if c != led.Off {
			t.Errorf("pixel %d = %v, want cleared", i, c)
		}
	}
}

func TestFillAndOff(t *testing.T) {
	e, rainMem, tempMem := newTestEngine(Options{Brightness: 20}, 2, true)

	if err := e.FillNamed("cyan", 20); err != nil {
		t.Fatalf("FillNamed() error = %v", err)
	}
	if rainMem.Last()[0] != Scale(Cyan, 20) || tempMem.Last()[1] != Scale(Cyan, 20) {
		t.Error("FillNamed should paint both strips")
	}

	if err := e.FillNamed("magenta", 20); err == nil {
		t.Error("FillNamed(magenta) should fail")
	}

	if err := e.Off(); err != nil {
		t.Fatalf("Off() error = %v", err)
	}
	if rainMem.Last()[0] != led.Off || tempMem.Last()[0] != led.Off {
		t.Error("Off should clear both strips")
	}

	if err := e.Connected(); err != nil {
		t.Fatalf("Connected() error = %v", err)
	}
	if rainMem.Last()[1] != Scale(White, ConnectedBrightness) {
		t.Errorf("Connected() pixel = %v, want dim white", rainMem.Last()[1])
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().LED
	opts := OptionsFromConfig(cfg)
	if _, ok := opts.Rain.(Threshold); !ok {
		t.Errorf("Rain = %T, want Threshold", opts.Rain)
	}
	if !opts.Reversed || opts.Brightness != 20 || opts.RecencyDivisor != 3 {
		t.Errorf("opts = %+v", opts)
	}

	cfg.RainGradient = "palette"
	if _, ok := OptionsFromConfig(cfg).Rain.(Palette); !ok {
		t.Error("palette gradient not selected")
	}
}
