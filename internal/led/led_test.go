package led

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failingDriver struct{}

func (failingDriver) Show([]Color) error { return errors.New("bus error") }
func (failingDriver) Close() error       { return nil }

func TestStripBuffersUntilFlush(t *testing.T) {
	mem := NewMemoryDriver(4)
	s := NewStrip("rain", 3, mem)

	if err := s.Set(1, Color{R: 10}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if mem.Last() != nil {
		t.Error("driver should see nothing before Flush")
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	want := []Color{Off, {R: 10}, Off}
	got := mem.Last()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStripSetOutOfRange(t *testing.T) {
	s := NewStrip("rain", 3, NewMemoryDriver(1))
	if err := s.Set(3, Color{R: 1}); err == nil {
		t.Error("Set(3) on a 3 pixel strip should fail")
	}
	if err := s.Set(-1, Color{R: 1}); err == nil {
		t.Error("Set(-1) should fail")
	}
	if s.Get(7) != Off {
		t.Error("Get() out of range should return Off")
	}
}

func TestStripFillAndObservers(t *testing.T) {
	mem := NewMemoryDriver(1)
	s := NewStrip("temperature", 4, mem)

	var seen []Color
	var seenName string
	s.OnFlush(func(name string, frame []Color) {
		seenName = name
		seen = frame
	})

	s.Fill(Color{G: 5})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if seenName != "temperature" || len(seen) != 4 || seen[3] != (Color{G: 5}) {
		t.Errorf("observer saw %s %v", seenName, seen)
	}

	// Observers get a copy.
	seen[0] = Color{R: 99}
	if s.Get(0) != (Color{G: 5}) {
		t.Error("observer mutation leaked into the strip buffer")
	}
}

func TestStripFlushError(t *testing.T) {
	s := NewStrip("rain", 2, failingDriver{})
	called := false
	s.OnFlush(func(string, []Color) { called = true })

	err := s.Flush()
	if err == nil || !strings.Contains(err.Error(), "rain") {
		t.Errorf("Flush() error = %v, want wrapped driver error", err)
	}
	if called {
		t.Error("observers should not run when the driver fails")
	}
}

func TestMemoryDriverKeep(t *testing.T) {
	mem := NewMemoryDriver(2)
	for i := 0; i < 5; i++ {
		_ = mem.Show([]Color{{R: uint8(i)}})
	}
	frames := mem.Frames()
	if len(frames) != 2 || frames[0][0].R != 3 || frames[1][0].R != 4 {
		t.Errorf("Frames() = %v, want the last two", frames)
	}
	_ = mem.Close()
	if !mem.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{R: 255, G: 8, B: 0}).Hex(); got != "#ff0800" {
		t.Errorf("Hex() = %s, want #ff0800", got)
	}
}

func TestPackRGB(t *testing.T) {
	buf := packRGB(nil, []Color{{1, 2, 3}, {4, 5, 6}})
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(buf, want) {
		t.Errorf("packRGB() = %v, want %v", buf, want)
	}
}

func TestTerminalDriver(t *testing.T) {
	var out bytes.Buffer
	d := NewTerminalDriver(&out, "rain")

	if err := d.Show([]Color{{R: 51}, Off, {G: 51}}); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	line := out.String()
	if !strings.HasPrefix(line, "rain") || !strings.HasSuffix(line, "\n") {
		t.Errorf("line = %q, want a labelled line", line)
	}
	if strings.Count(line, "██") != 2 || strings.Count(line, "··") != 1 {
		t.Errorf("line = %q, want 2 lit and 1 unlit pixel", line)
	}
}

func TestOpen(t *testing.T) {
	d, err := Open(Target{Name: "rain", Driver: DriverNone, Count: 3}, nil)
	if err != nil {
		t.Fatalf("Open(none) error = %v", err)
	}
	if _, ok := d.(*MemoryDriver); !ok {
		t.Errorf("Open(none) = %T, want *MemoryDriver", d)
	}

	if _, err := Open(Target{Driver: "dmx"}, nil); err == nil {
		t.Error("Open(dmx) should fail")
	}

	s, err := OpenStrip(Target{Name: "rain", Driver: DriverTerminal, Count: 5}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("OpenStrip(terminal) error = %v", err)
	}
	if s.Len() != 5 || s.Name() != "rain" {
		t.Errorf("strip = %s/%d, want rain/5", s.Name(), s.Len())
	}
}
