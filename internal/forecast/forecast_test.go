package forecast

import (
	"reflect"
	"sort"
	"testing"
)

func TestPutKeepsFirstValue(t *testing.T) {
	f := Forecast{}
	if !f.Put(9, Entry{Rain: Int(20)}) {
		t.Fatal("Put(9) = false, want true")
	}
	if f.Put(9, Entry{Rain: Int(80)}) {
		t.Error("second Put(9) should be rejected")
	}
	if *f[9].Rain != 20 {
		t.Errorf("f[9].Rain = %d, want 20", *f[9].Rain)
	}
}

func TestPutRejectsOutOfRange(t *testing.T) {
	f := Forecast{}
	for _, h := range []int{-1, 24, 100} {
		if f.Put(h, Entry{}) {
			t.Errorf("Put(%d) = true, want false", h)
		}
	}
	if len(f) != 0 {
		t.Errorf("len = %d, want 0", len(f))
	}
}

func TestForecastString(t *testing.T) {
	f := Forecast{15: {Rain: Int(60), Temp: Float(71.6)}, 9: {Rain: Int(20)}, 22: {}}
	want := "{9:20%, 15:60%/72°, 22:-}"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBuildWindow(t *testing.T) {
	w := BuildWindow(8, 15)
	if len(w) != 15 {
		t.Fatalf("len = %d, want 15", len(w))
	}
	for i, s := range w {
		if s.Index != i || s.Hour != 8+i {
			t.Errorf("slot %d = {%d, %d}, want {%d, %d}", i, s.Index, s.Hour, i, 8+i)
		}
		if s.Present || !s.Entry.Empty() {
			t.Errorf("slot %d should start empty", i)
		}
	}
}

func TestBuildWindow_WrapsPastMidnight(t *testing.T) {
	w := BuildWindow(20, 8)
	want := []int{20, 21, 22, 23, 0, 1, 2, 3}
	if got := w.Hours(); !reflect.DeepEqual(got, want) {
		t.Errorf("Hours() = %v, want %v", got, want)
	}
}

func TestMapIsTotal(t *testing.T) {
	w := BuildWindow(8, 15)
	f := Forecast{9: {Rain: Int(20)}, 15: {Rain: Int(60)}, 22: {}, 3: {Rain: Int(99)}}

	mapped := w.Map(f)
	if len(mapped) != len(w) {
		t.Fatalf("len = %d, want %d", len(mapped), len(w))
	}

	for _, s := range mapped {
		switch s.Hour {
		case 9:
			if !s.Present || *s.Entry.Rain != 20 {
				t.Errorf("hour 9 = %+v, want 20%%", s)
			}
		case 15:
			if !s.Present || *s.Entry.Rain != 60 {
				t.Errorf("hour 15 = %+v, want 60%%", s)
			}
		case 22:
			if !s.Present || s.Entry.Rain != nil {
				t.Errorf("hour 22 = %+v, want present with nil rain", s)
			}
		default:
			if s.Present || !s.Entry.Empty() {
				t.Errorf("hour %d = %+v, want absent", s.Hour, s)
			}
		}
	}

	// The source window is not modified.
	if w[1].Present {
		t.Error("Map() modified its receiver")
	}

	if empty := w.Map(nil); len(empty) != len(w) {
		t.Errorf("Map(nil) len = %d, want %d", len(empty), len(w))
	}
}

func TestSlotOf(t *testing.T) {
	w := BuildWindow(22, 4)
	if i, ok := w.SlotOf(1); !ok || i != 3 {
		t.Errorf("SlotOf(1) = %d, %v, want 3, true", i, ok)
	}
	if _, ok := w.SlotOf(12); ok {
		t.Error("SlotOf(12) should be absent")
	}
}

func TestPixelOrderIsBijection(t *testing.T) {
	for _, n := range []int{1, 2, 15, 24} {
		fwd := PixelOrder(n, false)
		rev := PixelOrder(n, true)

		for _, order := range [][]int{fwd, rev} {
			seen := append([]int(nil), order...)
			sort.Ints(seen)
			for i, p := range seen {
				if p != i {
					t.Fatalf("n=%d order %v is not a permutation of [0,%d)", n, order, n)
				}
			}
		}

		for i := range fwd {
			if rev[i] != fwd[n-1-i] {
				t.Errorf("n=%d reversed order %v is not the reverse of %v", n, rev, fwd)
				break
			}
		}
	}
}
