package forecast

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Entry is the forecast for one hour. Nil fields mean "no data".
type Entry struct {
	Rain *int     `json:"rain,omitempty"` // chance of precipitation, percent
	Temp *float64 `json:"temp,omitempty"` // temperature in the provider's unit
}

// Empty reports whether the entry carries no data at all.
func (e Entry) Empty() bool {
	return e.Rain == nil && e.Temp == nil
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Forecast maps hour of day to its entry.
type Forecast map[int]Entry

// Put stores e for hour unless the hour is out of range or already set.
// The first value seen for an hour wins.
func (f Forecast) Put(hour int, e Entry) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	if _, exists := f[hour]; exists {
		return false
	}
	f[hour] = e
	return true
}

// Hours returns the keys in ascending order.
func (f Forecast) Hours() []int {
	hours := make([]int, 0, len(f))
	for h := range f {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// String renders the forecast compactly for logs.
func (f Forecast) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, h := range f.Hours() {
		if i > 0 {
			b.WriteString(", ")
		}
		e := f[h]
		fmt.Fprintf(&b, "%d:", h)
		if e.Rain != nil {
			fmt.Fprintf(&b, "%d%%", *e.Rain)
		} else {
			b.WriteString("-")
		}
		if e.Temp != nil {
			fmt.Fprintf(&b, "/%.0f°", *e.Temp)
		}
	}
	b.WriteByte('}')
	return b.String()
}

// LocalTime is the display's resolved local hour and day of month.
type LocalTime struct {
	Hour int `json:"hour"`
	Day  int `json:"day"`
}

// Provider is a weather backend producing an hour-keyed forecast.
type Provider interface {
	Name() string
	// Fetch returns the forecast around now. It fails only when the
	// underlying requests do.
	Fetch(ctx context.Context, now LocalTime) (Forecast, error)
}
