package clock

import (
	"context"
	"sync"
	"time"
)

// Clock is the time source of the control loop.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d. It returns ctx.Err() if ctx ends first.
	Sleep(ctx context.Context, d time.Duration) error
}

// System is the host clock corrected by the last NTP offset.
type System struct {
	mu       sync.RWMutex
	offset   time.Duration
	location *time.Location
}

// NewSystem returns a System clock reporting times in loc (nil means time.Local).
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{location: loc}
}

// Now returns the corrected current time.
func (s *System) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Now().Add(s.offset).In(s.location)
}

// SetOffset records the difference between the host clock and true time.
func (s *System) SetOffset(offset time.Duration) {
	s.mu.Lock()
	s.offset = offset
	s.mu.Unlock()
}

// Offset returns the current correction.
func (s *System) Offset() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// Sleep blocks for d or until ctx is done.
func (s *System) Sleep(ctx context.Context, d time.Duration) error {
	return SleepContext(ctx, d)
}

// SleepContext is a context-aware time.Sleep.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
