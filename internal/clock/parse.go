package clock

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted by Parse, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse reads a remote timestamp. Zone-less values are returned in UTC so
// that Hour and Day still report the wall time as written.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseHourDay returns the wall-clock hour (0-23) and day of month of s.
func ParseHourDay(s string) (hour, day int, err error) {
	t, err := Parse(s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Day(), nil
}
