package forecast

// Slot is one position of the display window.
type Slot struct {
	Index   int   `json:"index"`
	Hour    int   `json:"hour"`
	Entry   Entry `json:"entry"`
	Present bool  `json:"present"` // the forecast had a key for Hour
}

// Window is the ordered sequence of hour slots shown on a strip.
type Window []Slot

// BuildWindow returns count slots starting at firstHour, wrapping modulo 24.
// Every slot starts with no data.
func BuildWindow(firstHour, count int) Window {
	if count < 0 {
		count = 0
	}
	w := make(Window, count)
	for i := range w {
		w[i] = Slot{Index: i, Hour: ((firstHour+i)%24 + 24) % 24}
	}
	return w
}

// Map returns a copy of w with each slot filled from f. It never fails:
// hours missing from f end up explicitly absent.
func (w Window) Map(f Forecast) Window {
	out := make(Window, len(w))
	for i, s := range w {
		e, ok := f[s.Hour]
		out[i] = Slot{Index: s.Index, Hour: s.Hour, Entry: e, Present: ok}
	}
	return out
}

// SlotOf returns the slot index showing hour.
func (w Window) SlotOf(hour int) (int, bool) {
	for i, s := range w {
		if s.Hour == hour {
			return i, true
		}
	}
	return 0, false
}

// Hours lists the slot hours in order.
func (w Window) Hours() []int {
	hours := make([]int, len(w))
	for i, s := range w {
		hours[i] = s.Hour
	}
	return hours
}

// PixelIndex maps a slot to its physical pixel on a strip of count pixels.
func PixelIndex(slot, count int, reversed bool) int {
	if reversed {
		return count - 1 - slot
	}
	return slot
}

// PixelOrder returns the pixel of every slot, in slot order.
func PixelOrder(count int, reversed bool) []int {
	order := make([]int, count)
	for i := range order {
		order[i] = PixelIndex(i, count, reversed)
	}
	return order
}
