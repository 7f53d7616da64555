package monitor

import (
	"math"
	"time"
)

// DriftFactor shortens the overnight sleep.
const DriftFactor = 0.95

// SecondsToNextHour returns the seconds left until the next wall-clock hour.
func SecondsToNextHour(t time.Time) int {
	return 3600 - (t.Minute()*60 + t.Second())
}

// UntilNextHour is SecondsToNextHour as a Duration.
func UntilNextHour(t time.Time) time.Duration {
	return time.Duration(SecondsToNextHour(t)) * time.Second
}

// SecondsToOnTime is the length of the dark range starting at offHour.
func SecondsToOnTime(offHour, onHour int) int {
	return ((onHour - offHour + 24) % 24) * 3600
}

// OvernightSleep is the drift-compensated sleep taken at the off hour.
func OvernightSleep(offHour, onHour int) time.Duration {
	secs := math.Round(float64(SecondsToOnTime(offHour, onHour)) * DriftFactor)
	return time.Duration(secs) * time.Second
}

// Dark reports whether hour falls in the display's off range. The range
// may cross midnight; equal bounds mean the display never goes dark.
func Dark(hour, onHour, offHour int) bool {
	switch {
	case offHour == onHour:
		return false
	case offHour > onHour:
		return hour >= offHour || hour < onHour
	default:
		return hour >= offHour && hour < onHour
	}
}
