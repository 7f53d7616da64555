package led

import "sync"

// MemoryDriver keeps the frames it is shown. It backs the "none" driver and tests.
type MemoryDriver struct {
	mu     sync.Mutex
	frames [][]Color
	closed bool
	// Keep bounds the retained history; 0 keeps only the latest frame.
	Keep int
}

// NewMemoryDriver returns a driver retaining the last keep frames.
func NewMemoryDriver(keep int) *MemoryDriver {
	return &MemoryDriver{Keep: keep}
}

// Show records a frame.
func (m *MemoryDriver) Show(pixels []Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, append([]Color(nil), pixels...))
	limit := m.Keep
	if limit < 1 {
		limit = 1
	}
	if len(m.frames) > limit {
		m.frames = m.frames[len(m.frames)-limit:]
	}
	return nil
}

// Close marks the driver closed.
func (m *MemoryDriver) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Last returns the most recent frame, or nil.
func (m *MemoryDriver) Last() []Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

// Frames returns the retained frames, oldest first.
func (m *MemoryDriver) Frames() [][]Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]Color(nil), m.frames...)
}

// Closed reports whether Close was called.
func (m *MemoryDriver) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
